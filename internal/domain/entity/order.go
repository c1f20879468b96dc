package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Transitions move forward only; cancelled is reachable from
// any non-terminal state; delivered and cancelled are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func TerminalOrderStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

// OrderItem snapshots a line at checkout time. Catalog edits after creation
// do not change the order.
type OrderItem struct {
	Product      primitive.ObjectID `bson:"product" json:"product"`
	Variety      primitive.ObjectID `bson:"variety" json:"variety"`
	ProductTitle string             `bson:"productTitle" json:"productTitle"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Price        float64            `bson:"price" json:"price"`
}

// Order belongs to one user. OTP is generated at creation and is only used
// to confirm the physical handoff on delivery; it never changes afterwards.
// The *At timestamps are set exactly once, at the transition producing them.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Items          []OrderItem        `bson:"items" json:"items"`
	AddressID      primitive.ObjectID `bson:"addressId" json:"addressId"`
	PaymentMethod  string             `bson:"paymentMethod" json:"paymentMethod"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	Status         string             `bson:"status" json:"status"`
	OTP            string             `bson:"otp,omitempty" json:"otp,omitempty"`
	CanceledReason string             `bson:"canceledReason,omitempty" json:"canceledReason,omitempty"`
	CanceledAt     *time.Time         `bson:"canceledAt,omitempty" json:"canceledAt,omitempty"`
	ShippedAt      *time.Time         `bson:"shippedAt,omitempty" json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderStatusStat is one aggregation bucket of the admin stats view.
type OrderStatusStat struct {
	Status      string  `bson:"_id" json:"status"`
	Count       int64   `bson:"count" json:"count"`
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
}

// Pagination describes a page of a listing.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func NewPagination(page, limit, total int64) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
