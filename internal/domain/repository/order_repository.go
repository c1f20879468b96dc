package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
)

// OrderStats is the admin aggregation view.
type OrderStats struct {
	Stats        []entity.OrderStatusStat `json:"stats"`
	TotalOrders  int64                    `json:"totalOrders"`
	TotalRevenue float64                  `json:"totalRevenue"`
}

// OrderRepository owns order persistence.
//
// Transition applies a guarded status change: the write matches only while
// the order still has one of the expected statuses, so two racing writers
// cannot both move the same order. The returned bool reports whether the
// guard matched. Timestamp and reason fields are derived from the target
// status (cancelled -> canceledAt/canceledReason, shipped -> shippedAt,
// delivered -> deliveredAt).
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
	GetByUserAndID(ctx context.Context, user, id primitive.ObjectID) (*entity.Order, error)
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]entity.Order, error)
	ListPage(ctx context.Context, status, sortField string, page, limit int64) ([]entity.Order, int64, error)
	Update(ctx context.Context, o *entity.Order) error
	Transition(ctx context.Context, id primitive.ObjectID, expect []string, to, reason string, at time.Time) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Stats(ctx context.Context) (*OrderStats, error)
}
