package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("unknown order status")
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

type ShippingInfo struct {
	RecipientName string
	Phone         string
	AddressLine1  string
	AddressLine2  *string
}

type Order struct {
	ID          uuid.UUID
	BuyerID     uuid.UUID
	OrderDate   time.Time
	Status      OrderStatus
	TotalAmount decimal.Decimal
	Shipping    ShippingInfo
}

// SoldItem records one product line of a committed order. SellerID is a
// point-in-time snapshot of the product's seller at the moment of sale.
type SoldItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	SellerID  uuid.UUID
	BuyerID   uuid.UUID
	Quantity  int
	SoldAt    time.Time
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, order *Order) error
	Find(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	AddSoldItems(ctx context.Context, items []SoldItem) error
	ListSoldItems(ctx context.Context, orderID uuid.UUID) ([]SoldItem, error)
}
