package model

import "github.com/google/uuid"

type UserRegistered struct {
	UserID   uuid.UUID
	Username string
}

func (e UserRegistered) Type() string { return "UserRegistered" }

type ProductCreated struct {
	ProductID uuid.UUID
	SellerID  uuid.UUID
	Name      string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type OrderPlaced struct {
	OrderID     uuid.UUID
	BuyerID     uuid.UUID
	TotalAmount string
	LineCount   int
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type OrderStatusChanged struct {
	OrderID   uuid.UUID
	OldStatus OrderStatus
	NewStatus OrderStatus
}

func (e OrderStatusChanged) Type() string { return "OrderStatusChanged" }

type ReviewPosted struct {
	ReviewID  uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
}

func (e ReviewPosted) Type() string { return "ReviewPosted" }
