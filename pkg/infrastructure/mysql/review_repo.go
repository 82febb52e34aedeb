package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"marketplace/pkg/domain/model"
)

type reviewRepository struct {
	db database
}

type reviewRow struct {
	ID         uuid.UUID      `db:"id"`
	ProductID  uuid.UUID      `db:"product_id"`
	UserID     uuid.UUID      `db:"user_id"`
	Rating     int            `db:"rating"`
	Comment    sql.NullString `db:"comment"`
	ReviewDate time.Time      `db:"review_date"`
}

func (r reviewRow) toModel() model.Review {
	return model.Review{
		ID:         r.ID,
		ProductID:  r.ProductID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		Comment:    r.Comment.String,
		ReviewDate: r.ReviewDate.UTC(),
	}
}

func (r *reviewRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	const query = "INSERT INTO reviews (id, product_id, user_id, rating, comment, review_date) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.ProductID, review.UserID, review.Rating, nullString(review.Comment), review.ReviewDate)
	if err != nil {
		return wrapStorageErr(err, "insert review")
	}
	return nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	const query = "SELECT id, product_id, user_id, rating, comment, review_date FROM reviews WHERE product_id = ? ORDER BY review_date DESC"
	return r.list(ctx, query, productID)
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Review, error) {
	const query = "SELECT id, product_id, user_id, rating, comment, review_date FROM reviews WHERE user_id = ? ORDER BY review_date DESC"
	return r.list(ctx, query, userID)
}

func (r *reviewRepository) list(ctx context.Context, query string, arg interface{}) ([]model.Review, error) {
	var rows []reviewRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, wrapStorageErr(err, "list reviews")
	}
	reviews := make([]model.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, row.toModel())
	}
	return reviews, nil
}
