package application_test

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/pkg/apperr"
)

type memoryOrderRepo struct {
	byID map[primitive.ObjectID]*entity.Order
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{byID: map[primitive.ObjectID]*entity.Order{}}
}

func (m *memoryOrderRepo) Create(_ context.Context, o *entity.Order) error {
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	m.byID[o.ID] = &cp
	return nil
}

func (m *memoryOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memoryOrderRepo) GetByUserAndID(_ context.Context, user, id primitive.ObjectID) (*entity.Order, error) {
	o, ok := m.byID[id]
	if !ok || o.User != user {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memoryOrderRepo) ListByUser(_ context.Context, user primitive.ObjectID) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range m.byID {
		if o.User == user {
			out = append(out, *o)
		}
	}
	return out, nil
}

func sortTime(o entity.Order, field string) time.Time {
	switch field {
	case "shippedAt":
		if o.ShippedAt != nil {
			return *o.ShippedAt
		}
		return time.Time{}
	case "deliveredAt":
		if o.DeliveredAt != nil {
			return *o.DeliveredAt
		}
		return time.Time{}
	default:
		return o.CreatedAt
	}
}

func (m *memoryOrderRepo) ListPage(_ context.Context, status, sortField string, page, limit int64) ([]entity.Order, int64, error) {
	var all []entity.Order
	for _, o := range m.byID {
		if status == "" || o.Status == status {
			all = append(all, *o)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return sortTime(all[i], sortField).After(sortTime(all[j], sortField))
	})
	total := int64(len(all))
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *memoryOrderRepo) Update(_ context.Context, o *entity.Order) error {
	if _, ok := m.byID[o.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *o
	m.byID[o.ID] = &cp
	return nil
}

func (m *memoryOrderRepo) Transition(_ context.Context, id primitive.ObjectID, expect []string, to, reason string, at time.Time) (bool, error) {
	o, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, s := range expect {
		if o.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	o.Status = to
	switch to {
	case entity.OrderStatusCancelled:
		o.CanceledReason = reason
		o.CanceledAt = &at
	case entity.OrderStatusShipped:
		o.ShippedAt = &at
	case entity.OrderStatusDelivered:
		o.DeliveredAt = &at
	}
	return true, nil
}

func (m *memoryOrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryOrderRepo) Stats(_ context.Context) (*repo.OrderStats, error) {
	stats := &repo.OrderStats{}
	for _, o := range m.byID {
		stats.TotalOrders++
		if o.Status != entity.OrderStatusCancelled {
			stats.TotalRevenue += o.TotalAmount
		}
	}
	return stats, nil
}

func orderInput() app.CreateOrderInput {
	return app.CreateOrderInput{
		Items: []app.OrderItemInput{{
			ProductID:    primitive.NewObjectID().Hex(),
			VarietyID:    primitive.NewObjectID().Hex(),
			ProductTitle: "Organic Spinach",
			Quantity:     2,
			Price:        30,
		}},
		TotalAmount: 60,
		AddressID:   primitive.NewObjectID().Hex(),
	}
}

func newOrderService() (*app.OrderService, *memoryOrderRepo) {
	orders := newMemoryOrderRepo()
	return app.NewOrderService(orders, logrus.New()), orders
}

func TestCreateOrderDefaults(t *testing.T) {
	svc, _ := newOrderService()
	user := primitive.NewObjectID()

	o, err := svc.Create(context.Background(), user, orderInput())
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusPending, o.Status)
	require.Equal(t, "cod", o.PaymentMethod)
	require.Len(t, o.OTP, 6)
	require.Equal(t, "Organic Spinach", o.Items[0].ProductTitle)
	require.Equal(t, float64(60), o.TotalAmount)
}

func TestCreateOrderRejectsBadIDs(t *testing.T) {
	svc, _ := newOrderService()
	in := orderInput()
	in.AddressID = "not-a-hex-id"

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), in)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, apperr.From(err).Status)
	require.Equal(t, "Invalid input data", apperr.From(err).Message)
}

func TestCancelOwnOrder(t *testing.T) {
	svc, _ := newOrderService()
	ctx := context.Background()
	user := primitive.NewObjectID()

	o, err := svc.Create(ctx, user, orderInput())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, user, o.ID, "changed my mind")
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	require.Equal(t, "changed my mind", cancelled.CanceledReason)
	require.NotNil(t, cancelled.CanceledAt)

	_, err = svc.Cancel(ctx, user, o.ID, "again")
	require.Error(t, err)
	require.Equal(t, "Order is already cancelled", apperr.From(err).Message)

	_, err = svc.Cancel(ctx, primitive.NewObjectID(), o.ID, "not mine")
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, apperr.From(err).Status)
}

func TestAdminSetStatusStampsOnce(t *testing.T) {
	svc, _ := newOrderService()
	ctx := context.Background()

	o, err := svc.Create(ctx, primitive.NewObjectID(), orderInput())
	require.NoError(t, err)

	shipped, err := svc.AdminSetStatus(ctx, o.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	require.NotNil(t, shipped.ShippedAt)
	firstShipped := *shipped.ShippedAt

	// Bouncing the status does not move the original timestamp.
	_, err = svc.AdminSetStatus(ctx, o.ID, entity.OrderStatusConfirmed)
	require.NoError(t, err)
	again, err := svc.AdminSetStatus(ctx, o.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	require.Equal(t, firstShipped, *again.ShippedAt)

	_, err = svc.AdminSetStatus(ctx, o.ID, "teleported")
	require.Error(t, err)
	require.Equal(t, "Invalid input data", apperr.From(err).Message)
}

func TestDeliveryFlow(t *testing.T) {
	svc, _ := newOrderService()
	ctx := context.Background()

	o, err := svc.Create(ctx, primitive.NewObjectID(), orderInput())
	require.NoError(t, err)

	_, err = svc.DeliveryDetails(ctx, o.ID)
	require.Error(t, err)
	require.Equal(t, "Only shipped orders can be viewed for delivery", apperr.From(err).Message)

	_, err = svc.VerifyOTPAndDeliver(ctx, o.ID, o.OTP)
	require.Error(t, err)
	require.Equal(t, "Only shipped orders can be delivered", apperr.From(err).Message)

	_, err = svc.AdminSetStatus(ctx, o.ID, entity.OrderStatusShipped)
	require.NoError(t, err)

	details, err := svc.DeliveryDetails(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, o.OTP, details.OTP)

	_, err = svc.VerifyOTPAndDeliver(ctx, o.ID, "000000")
	require.Error(t, err)
	require.Equal(t, "Invalid OTP", apperr.From(err).Message)

	delivered, err := svc.VerifyOTPAndDeliver(ctx, o.ID, o.OTP)
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)

	_, err = svc.VerifyOTPAndDeliver(ctx, o.ID, o.OTP)
	require.Error(t, err)
	require.Equal(t, "Only shipped orders can be delivered", apperr.From(err).Message)
}

func TestCancelDeliveryRequiresShipped(t *testing.T) {
	svc, _ := newOrderService()
	ctx := context.Background()

	o, err := svc.Create(ctx, primitive.NewObjectID(), orderInput())
	require.NoError(t, err)

	_, err = svc.CancelDelivery(ctx, o.ID, "address unreachable")
	require.Error(t, err)
	require.Equal(t, "Only shipped orders can be cancelled", apperr.From(err).Message)

	_, err = svc.AdminSetStatus(ctx, o.ID, entity.OrderStatusShipped)
	require.NoError(t, err)

	cancelled, err := svc.CancelDelivery(ctx, o.ID, "address unreachable")
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	require.Equal(t, "address unreachable", cancelled.CanceledReason)
}

func TestAdminListValidatesStatus(t *testing.T) {
	svc, _ := newOrderService()
	ctx := context.Background()

	_, err := svc.Create(ctx, primitive.NewObjectID(), orderInput())
	require.NoError(t, err)

	page, err := svc.AdminList(ctx, "", 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Pagination.Total)
	require.Equal(t, int64(1), page.Pagination.Pages)

	_, err = svc.AdminList(ctx, "bogus", 1, 20)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, apperr.From(err).Status)
}

func TestCreateOrderTwiceYieldsDistinctOrders(t *testing.T) {
	svc, _ := newOrderService()
	ctx := context.Background()
	user := primitive.NewObjectID()
	in := orderInput()

	first, err := svc.Create(ctx, user, in)
	require.NoError(t, err)
	second, err := svc.Create(ctx, user, in)
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, first.OTP, second.OTP)
	require.Len(t, second.OTP, 6)
}

func TestAdminListPaginationWindow(t *testing.T) {
	svc, orders := newOrderService()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// 25 orders, amount i created at base+i minutes; newest has amount 25.
	for i := 1; i <= 25; i++ {
		in := orderInput()
		in.TotalAmount = float64(i)
		o, err := svc.Create(ctx, primitive.NewObjectID(), in)
		require.NoError(t, err)
		orders.byID[o.ID].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}

	page, err := svc.AdminList(ctx, "", 2, 10)
	require.NoError(t, err)
	require.Equal(t, int64(25), page.Pagination.Total)
	require.Equal(t, int64(3), page.Pagination.Pages)
	require.Len(t, page.Orders, 10)

	// Page 2 of a descending sort holds the 11th through 20th newest.
	for i, o := range page.Orders {
		require.Equal(t, float64(15-i), o.TotalAmount)
	}

	last, err := svc.AdminList(ctx, "", 3, 10)
	require.NoError(t, err)
	require.Len(t, last.Orders, 5)
	require.Equal(t, float64(5), last.Orders[0].TotalAmount)
	require.Equal(t, float64(1), last.Orders[4].TotalAmount)

	empty, err := svc.AdminList(ctx, "", 4, 10)
	require.NoError(t, err)
	require.Empty(t, empty.Orders)
}

func TestListShippedSortedByShippedAt(t *testing.T) {
	svc, orders := newOrderService()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		in := orderInput()
		in.TotalAmount = float64(i)
		o, err := svc.Create(ctx, primitive.NewObjectID(), in)
		require.NoError(t, err)
		shipped := base.Add(time.Duration(i) * time.Hour)
		stored := orders.byID[o.ID]
		stored.Status = entity.OrderStatusShipped
		stored.ShippedAt = &shipped
	}
	// A pending order stays out of the shipped view.
	_, err := svc.Create(ctx, primitive.NewObjectID(), orderInput())
	require.NoError(t, err)

	page, err := svc.ListShipped(ctx, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Pagination.Total)
	require.Len(t, page.Orders, 3)
	require.Equal(t, float64(3), page.Orders[0].TotalAmount)
	require.Equal(t, float64(2), page.Orders[1].TotalAmount)
	require.Equal(t, float64(1), page.Orders[2].TotalAmount)
}

func TestAdminDeleteMissingOrder(t *testing.T) {
	svc, _ := newOrderService()

	err := svc.AdminDelete(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	require.Equal(t, "Order not found", apperr.From(err).Message)
}
