package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"marketplace/pkg/domain/model"
)

type categoryRepository struct {
	db database
}

type categoryRow struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

func (r *categoryRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	const query = "INSERT INTO categories (id, name) VALUES (?, ?)"
	if _, err := r.db.ExecContext(ctx, query, category.ID, category.Name); err != nil {
		return wrapStorageErr(err, "insert category")
	}
	return nil
}

func (r *categoryRepository) Find(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var row categoryRow
	const query = "SELECT id, name FROM categories WHERE id = ?"
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, wrapStorageErr(err, "find category")
	}
	return &model.Category{ID: row.ID, Name: row.Name}, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var rows []categoryRow
	const query = "SELECT id, name FROM categories ORDER BY name"
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, wrapStorageErr(err, "list categories")
	}
	categories := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, model.Category{ID: row.ID, Name: row.Name})
	}
	return categories, nil
}
