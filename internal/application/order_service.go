package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/pkg/apperr"
	"github.com/greenkart/greenkart-api/pkg/helpers"
)

// OrderItemInput is one checkout line as submitted by the client.
type OrderItemInput struct {
	ProductID    string  `json:"productId" binding:"required"`
	VarietyID    string  `json:"varietyId" binding:"required"`
	ProductTitle string  `json:"productTitle" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	Price        float64 `json:"price" binding:"required,gte=0"`
}

type CreateOrderInput struct {
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	TotalAmount   float64          `json:"totalAmount" binding:"required,gte=0"`
	AddressID     string           `json:"addressId" binding:"required"`
	PaymentMethod string           `json:"paymentMethod"`
}

// OrderPage pairs a page of orders with its pagination block.
type OrderPage struct {
	Orders     []entity.Order    `json:"orders"`
	Pagination entity.Pagination `json:"pagination"`
}

type OrderService struct {
	Orders repo.OrderRepository
	Logger *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Logger: logger}
}

func parseObjectID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("Invalid input data")
	}
	return id, nil
}

func (s *OrderService) getOrder(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	return o, nil
}

// Create places an order in pending status with a fresh delivery OTP. Line
// fields are snapshots supplied at checkout; later catalog edits leave the
// order untouched.
func (s *OrderService) Create(ctx context.Context, user primitive.ObjectID, in CreateOrderInput) (*entity.Order, error) {
	addressID, err := parseObjectID(in.AddressID)
	if err != nil {
		return nil, err
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		productID, err := parseObjectID(it.ProductID)
		if err != nil {
			return nil, err
		}
		varietyID, err := parseObjectID(it.VarietyID)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.OrderItem{
			Product:      productID,
			Variety:      varietyID,
			ProductTitle: it.ProductTitle,
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}
	otp, err := helpers.GenOTPCode()
	if err != nil {
		return nil, apperr.Internal("Failed to generate OTP")
	}
	method := in.PaymentMethod
	if method == "" {
		method = "cod"
	}
	o := &entity.Order{
		User:          user,
		Items:         items,
		AddressID:     addressID,
		PaymentMethod: method,
		TotalAmount:   in.TotalAmount,
		Status:        entity.OrderStatusPending,
		OTP:           otp,
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) ListByUser(ctx context.Context, user primitive.ObjectID) ([]entity.Order, error) {
	return s.Orders.ListByUser(ctx, user)
}

func (s *OrderService) GetForUser(ctx context.Context, user, id primitive.ObjectID) (*entity.Order, error) {
	o, err := s.Orders.GetByUserAndID(ctx, user, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	return o, nil
}

// Cancel cancels the caller's own order. The guarded write keeps two racing
// cancellations from both succeeding.
func (s *OrderService) Cancel(ctx context.Context, user, id primitive.ObjectID, reason string) (*entity.Order, error) {
	o, err := s.GetForUser(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if o.Status == entity.OrderStatusCancelled {
		return nil, apperr.BadRequest("Order is already cancelled")
	}
	expect := []string{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusShipped,
		entity.OrderStatusDelivered,
	}
	ok, err := s.Orders.Transition(ctx, id, expect, entity.OrderStatusCancelled, reason, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BadRequest("Order is already cancelled")
	}
	return s.getOrder(ctx, id)
}

// AdminList returns one page of orders, optionally filtered by status,
// newest first.
func (s *OrderService) AdminList(ctx context.Context, status string, page, limit int64) (*OrderPage, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, apperr.BadRequest("Invalid input data")
	}
	orders, total, err := s.Orders.ListPage(ctx, status, "createdAt", page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Pagination: entity.NewPagination(page, limit, total)}, nil
}

func (s *OrderService) AdminGet(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	return s.getOrder(ctx, id)
}

// AdminSetStatus moves an order to any valid status regardless of its
// current one. Lifecycle timestamps are stamped once, on the transition
// that first produces them.
func (s *OrderService) AdminSetStatus(ctx context.Context, id primitive.ObjectID, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, apperr.BadRequest("Invalid input data")
	}
	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	o.Status = status
	switch status {
	case entity.OrderStatusShipped:
		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
	case entity.OrderStatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
	case entity.OrderStatusCancelled:
		if o.CanceledAt == nil {
			o.CanceledAt = &now
		}
	}
	if err := s.Orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) AdminDelete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.Orders.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("Order not found")
		}
		return err
	}
	return nil
}

func (s *OrderService) AdminStats(ctx context.Context) (*repo.OrderStats, error) {
	return s.Orders.Stats(ctx)
}

// ListShipped and ListDelivered feed the delivery views, sorted by the
// matching lifecycle timestamp.
func (s *OrderService) ListShipped(ctx context.Context, page, limit int64) (*OrderPage, error) {
	orders, total, err := s.Orders.ListPage(ctx, entity.OrderStatusShipped, "shippedAt", page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Pagination: entity.NewPagination(page, limit, total)}, nil
}

func (s *OrderService) ListDelivered(ctx context.Context, page, limit int64) (*OrderPage, error) {
	orders, total, err := s.Orders.ListPage(ctx, entity.OrderStatusDelivered, "deliveredAt", page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Pagination: entity.NewPagination(page, limit, total)}, nil
}

// DeliveryDetails returns an order for the handoff screen; only shipped
// orders are visible there.
func (s *OrderService) DeliveryDetails(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.OrderStatusShipped {
		return nil, apperr.BadRequest("Only shipped orders can be viewed for delivery")
	}
	return o, nil
}

// VerifyOTPAndDeliver completes the handoff. The OTP must match the code
// printed on the order and the order must still be shipped when the guarded
// write lands.
func (s *OrderService) VerifyOTPAndDeliver(ctx context.Context, id primitive.ObjectID, otp string) (*entity.Order, error) {
	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.OrderStatusShipped {
		return nil, apperr.BadRequest("Only shipped orders can be delivered")
	}
	if o.OTP != otp {
		return nil, apperr.BadRequest("Invalid OTP")
	}
	ok, err := s.Orders.Transition(ctx, id, []string{entity.OrderStatusShipped}, entity.OrderStatusDelivered, "", time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BadRequest("Only shipped orders can be delivered")
	}
	return s.getOrder(ctx, id)
}

// CancelDelivery is the delivery-side cancellation; only shipped orders
// qualify.
func (s *OrderService) CancelDelivery(ctx context.Context, id primitive.ObjectID, reason string) (*entity.Order, error) {
	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.OrderStatusShipped {
		return nil, apperr.BadRequest("Only shipped orders can be cancelled")
	}
	ok, err := s.Orders.Transition(ctx, id, []string{entity.OrderStatusShipped}, entity.OrderStatusCancelled, reason, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BadRequest("Only shipped orders can be cancelled")
	}
	return s.getOrder(ctx, id)
}
