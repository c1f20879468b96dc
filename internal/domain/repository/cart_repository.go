package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
)

type CartRepository interface {
	GetByUser(ctx context.Context, user primitive.ObjectID) (*entity.Cart, error)
	Upsert(ctx context.Context, c *entity.Cart) error
	DeleteByUser(ctx context.Context, user primitive.ObjectID) (*entity.Cart, error)
}
