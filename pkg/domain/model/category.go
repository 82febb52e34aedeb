package model

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrCategoryNotFound = errors.New("category not found")

type Category struct {
	ID   uuid.UUID
	Name string
}

type CategoryRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, category *Category) error
	Find(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
}
