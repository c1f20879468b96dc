package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	List(ctx context.Context) ([]entity.ProductWithRefs, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushVariety(ctx context.Context, productID, varietyID primitive.ObjectID) error
	PullVariety(ctx context.Context, productID, varietyID primitive.ObjectID) error
}

type VarietyRepository interface {
	Create(ctx context.Context, v *entity.Variety) error
	CreateMany(ctx context.Context, vs []entity.Variety) ([]primitive.ObjectID, error)
	GetByProductAndID(ctx context.Context, productID, id primitive.ObjectID) (*entity.Variety, error)
	Update(ctx context.Context, v *entity.Variety) error
	DeleteByProductAndID(ctx context.Context, productID, id primitive.ObjectID) (*entity.Variety, error)
	DeleteByProduct(ctx context.Context, productID primitive.ObjectID) error
}
