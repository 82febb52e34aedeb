package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	UserID     uuid.UUID
	Rating     int
	Comment    string
	ReviewDate time.Time
}

type ReviewRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, review *Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Review, error)
}
