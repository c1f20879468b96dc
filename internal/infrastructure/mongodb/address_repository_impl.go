package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	"github.com/greenkart/greenkart-api/internal/domain/repository"
)

type AddressRepository struct {
	col *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) *AddressRepository {
	return &AddressRepository{col: db.Collection(ColAddresses)}
}

func (r *AddressRepository) Create(ctx context.Context, a *entity.Address) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, user primitive.ObjectID) ([]entity.Address, error) {
	cur, err := r.col.Find(ctx, bson.M{"user": user})
	if err != nil {
		return nil, err
	}
	addrs := []entity.Address{}
	if err := cur.All(ctx, &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *AddressRepository) UpdateByUserAndID(ctx context.Context, user, id primitive.ObjectID, a *entity.Address) (*entity.Address, error) {
	updated := &entity.Address{}
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "user": user},
		bson.M{"$set": bson.M{
			"fullName":    a.FullName,
			"phoneNumber": a.PhoneNumber,
			"address":     a.Address,
			"landmarks":   a.Landmarks,
			"village":     a.Village,
			"pincode":     a.Pincode,
			"latitude":    a.Latitude,
			"longitude":   a.Longitude,
			"isDefault":   a.IsDefault,
			"updatedAt":   time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *AddressRepository) DeleteByUserAndID(ctx context.Context, user, id primitive.ObjectID) (*entity.Address, error) {
	deleted := &entity.Address{}
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id, "user": user}).Decode(deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return deleted, nil
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
