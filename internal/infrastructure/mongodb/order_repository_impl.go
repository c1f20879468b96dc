package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	"github.com/greenkart/greenkart-api/internal/domain/repository"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(ColOrders)}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *OrderRepository) GetByUserAndID(ctx context.Context, user, id primitive.ObjectID) (*entity.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user": user})
}

func (r *OrderRepository) findOne(ctx context.Context, filter bson.M) (*entity.Order, error) {
	o := &entity.Order{}
	if err := r.col.FindOne(ctx, filter).Decode(o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, user primitive.ObjectID) ([]entity.Order, error) {
	cur, err := r.col.Find(ctx, bson.M{"user": user},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	orders := []entity.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListPage fetches one page and the total count concurrently.
func (r *OrderRepository) ListPage(ctx context.Context, status, sortField string, page, limit int64) ([]entity.Order, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if sortField == "" {
		sortField = "createdAt"
	}
	skip := (page - 1) * limit

	var (
		orders = []entity.Order{}
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := r.col.Find(gctx, filter, options.Find().
			SetSort(bson.D{{Key: sortField, Value: -1}}).
			SetSkip(skip).
			SetLimit(limit))
		if err != nil {
			return err
		}
		return cur.All(gctx, &orders)
	})
	g.Go(func() error {
		n, err := r.col.CountDocuments(gctx, filter)
		total = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *entity.Order) error {
	o.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Transition performs a conditional status change keyed on the expected
// prior status, so a racing writer cannot apply the same transition twice.
func (r *OrderRepository) Transition(ctx context.Context, id primitive.ObjectID, expect []string, to, reason string, at time.Time) (bool, error) {
	filter := bson.M{"_id": id}
	if len(expect) == 1 {
		filter["status"] = expect[0]
	} else if len(expect) > 1 {
		filter["status"] = bson.M{"$in": expect}
	}

	set := bson.M{"status": to, "updatedAt": at}
	switch to {
	case entity.OrderStatusCancelled:
		set["canceledReason"] = reason
		set["canceledAt"] = at
	case entity.OrderStatusShipped:
		set["shippedAt"] = at
	case entity.OrderStatusDelivered:
		set["deliveredAt"] = at
	}

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) Stats(ctx context.Context) (*repository.OrderStats, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         "$status",
			"count":       bson.M{"$sum": 1},
			"totalAmount": bson.M{"$sum": "$totalAmount"},
		}}},
	})
	if err != nil {
		return nil, err
	}
	stats := []entity.OrderStatusStat{}
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	// Revenue counts orders that reached the shipped or delivered state.
	revCur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$in": bson.A{
			entity.OrderStatusDelivered, entity.OrderStatusShipped,
		}}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalAmount"},
		}}},
	})
	if err != nil {
		return nil, err
	}
	var rev []struct {
		Total float64 `bson:"total"`
	}
	if err := revCur.All(ctx, &rev); err != nil {
		return nil, err
	}
	revenue := 0.0
	if len(rev) > 0 {
		revenue = rev[0].Total
	}

	return &repository.OrderStats{Stats: stats, TotalOrders: total, TotalRevenue: revenue}, nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
