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

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(ColCategories)}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		if isDup(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	c := &entity.Category{}
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	c := &entity.Category{}
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	cats := []entity.Category{}
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	c.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		if isDup(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(ColProducts)}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.VarietyIDs == nil {
		p.VarietyIDs = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		if isDup(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	p := &entity.Product{}
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List resolves the category document and varieties for each product in one
// aggregation, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]entity.ProductWithRefs, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         ColCategories,
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryDoc",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$categoryDoc", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         ColVarieties,
			"localField":   "varietyIds",
			"foreignField": "_id",
			"as":           "varieties",
		}}},
	})
	if err != nil {
		return nil, err
	}
	products := []entity.ProductWithRefs{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		if isDup(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) PushVariety(ctx context.Context, productID, varietyID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{
		"$push": bson.M{"varietyIds": varietyID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) PullVariety(ctx context.Context, productID, varietyID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{
		"$pull": bson.M{"varietyIds": varietyID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	return err
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

type VarietyRepository struct {
	col *mongo.Collection
}

func NewVarietyRepository(db *mongo.Database) *VarietyRepository {
	return &VarietyRepository{col: db.Collection(ColVarieties)}
}

func (r *VarietyRepository) Create(ctx context.Context, v *entity.Variety) error {
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, v)
	if err != nil {
		return err
	}
	v.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *VarietyRepository) CreateMany(ctx context.Context, vs []entity.Variety) ([]primitive.ObjectID, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	now := time.Now()
	docs := make([]interface{}, len(vs))
	for i := range vs {
		vs[i].CreatedAt = now
		vs[i].UpdatedAt = now
		docs[i] = vs[i]
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(res.InsertedIDs))
	for i, id := range res.InsertedIDs {
		ids[i] = id.(primitive.ObjectID)
	}
	return ids, nil
}

func (r *VarietyRepository) GetByProductAndID(ctx context.Context, productID, id primitive.ObjectID) (*entity.Variety, error) {
	v := &entity.Variety{}
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "product": productID}).Decode(v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *VarietyRepository) Update(ctx context.Context, v *entity.Variety) error {
	v.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VarietyRepository) DeleteByProductAndID(ctx context.Context, productID, id primitive.ObjectID) (*entity.Variety, error) {
	v := &entity.Variety{}
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id, "product": productID}).Decode(v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *VarietyRepository) DeleteByProduct(ctx context.Context, productID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"product": productID})
	return err
}

var _ repository.VarietyRepository = (*VarietyRepository)(nil)
