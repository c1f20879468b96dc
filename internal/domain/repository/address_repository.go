package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
)

// AddressRepository is owner-scoped: updates and deletes match both the
// address id and the owning user.
type AddressRepository interface {
	Create(ctx context.Context, a *entity.Address) error
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]entity.Address, error)
	UpdateByUserAndID(ctx context.Context, user, id primitive.ObjectID, a *entity.Address) (*entity.Address, error)
	DeleteByUserAndID(ctx context.Context, user, id primitive.ObjectID) (*entity.Address, error)
}
