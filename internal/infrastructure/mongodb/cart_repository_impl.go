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

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(ColCarts)}
}

func (r *CartRepository) GetByUser(ctx context.Context, user primitive.ObjectID) (*entity.Cart, error) {
	c := &entity.Cart{}
	if err := r.col.FindOne(ctx, bson.M{"user": user}).Decode(c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Upsert replaces the user's cart document, creating it on first write.
// Read-modify-write across concurrent requests is last-writer-wins.
func (r *CartRepository) Upsert(ctx context.Context, c *entity.Cart) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	_, err := r.col.ReplaceOne(ctx, bson.M{"user": c.User}, c, options.Replace().SetUpsert(true))
	return err
}

func (r *CartRepository) DeleteByUser(ctx context.Context, user primitive.ObjectID) (*entity.Cart, error) {
	c := &entity.Cart{}
	err := r.col.FindOneAndDelete(ctx, bson.M{"user": user}).Decode(c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
