package model

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductNotFoundError identifies the offending product so callers can
// render a meaningful message.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError is returned when a requested quantity exceeds the
// available stock of a product at validation time.
type InsufficientStockError struct {
	ProductID uuid.UUID
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	SellerID    uuid.UUID
	CategoryID  uuid.UUID
}

type ProductImage struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	ImageURL  string
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Find(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindForUpdate behaves like Find but, when executed inside a
	// transaction, takes a row-level exclusive lock held until commit
	// or rollback.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	// DecrementStock subtracts quantity from the product's stock as a
	// single conditional write. Stock never goes negative: if the
	// remaining stock is smaller than quantity the write does not apply
	// and InsufficientStockError is returned.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	AddImages(ctx context.Context, images []ProductImage) error
	ListImages(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)
}
