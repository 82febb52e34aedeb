package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"marketplace/pkg/domain/model"
)

const productColumns = "id, name, description, price, stock, seller_id, category_id"

type productRepository struct {
	db database
}

type productRow struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Description sql.NullString  `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	SellerID    uuid.UUID       `db:"seller_id"`
	CategoryID  uuid.UUID       `db:"category_id"`
}

func (r productRow) toModel() model.Product {
	return model.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		Price:       r.Price,
		Stock:       r.Stock,
		SellerID:    r.SellerID,
		CategoryID:  r.CategoryID,
	}
}

func (r *productRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	const query = "INSERT INTO products (" + productColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, nullString(product.Description), product.Price,
		product.Stock, product.SellerID, product.CategoryID)
	if err != nil {
		return wrapStorageErr(err, "insert product")
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	const query = "UPDATE products SET name = ?, description = ?, price = ?, stock = ?, seller_id = ?, category_id = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query,
		product.Name, nullString(product.Description), product.Price, product.Stock,
		product.SellerID, product.CategoryID, product.ID)
	if err != nil {
		return wrapStorageErr(err, "update product")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapStorageErr(err, "update product")
	}
	if affected == 0 {
		if _, err := r.Find(ctx, product.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) Find(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.find(ctx, id, "")
}

// FindForUpdate takes a row-level exclusive lock; the lock is held until the
// surrounding transaction commits or rolls back.
func (r *productRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.find(ctx, id, " FOR UPDATE")
}

func (r *productRepository) find(ctx context.Context, id uuid.UUID, suffix string) (*model.Product, error) {
	var row productRow
	query := "SELECT " + productColumns + " FROM products WHERE id = ?" + suffix
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ProductNotFoundError{ProductID: id}
		}
		return nil, wrapStorageErr(err, "find product")
	}
	product := row.toModel()
	return &product, nil
}

// DecrementStock re-validates the stock condition in the WHERE clause, so it
// can never drive stock negative even without a prior lock.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	const query = "UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?"
	res, err := r.db.ExecContext(ctx, query, quantity, id, quantity)
	if err != nil {
		return wrapStorageErr(err, "decrement stock")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapStorageErr(err, "decrement stock")
	}
	if affected == 0 {
		if _, err := r.Find(ctx, id); err != nil {
			return err
		}
		return model.InsufficientStockError{ProductID: id}
	}
	return nil
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.Product, error) {
	const query = "SELECT " + productColumns + " FROM products WHERE seller_id = ?"
	return r.list(ctx, query, sellerID)
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	const query = "SELECT " + productColumns + " FROM products WHERE category_id = ?"
	return r.list(ctx, query, categoryID)
}

func (r *productRepository) list(ctx context.Context, query string, arg interface{}) ([]model.Product, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, wrapStorageErr(err, "list products")
	}
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products, nil
}

func (r *productRepository) AddImages(ctx context.Context, images []model.ProductImage) error {
	const query = "INSERT INTO product_images (id, product_id, image_url) VALUES (?, ?, ?)"
	for _, image := range images {
		if _, err := r.db.ExecContext(ctx, query, image.ID, image.ProductID, image.ImageURL); err != nil {
			return wrapStorageErr(err, "insert product image")
		}
	}
	return nil
}

func (r *productRepository) ListImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	type imageRow struct {
		ID        uuid.UUID `db:"id"`
		ProductID uuid.UUID `db:"product_id"`
		ImageURL  string    `db:"image_url"`
	}
	var rows []imageRow
	const query = "SELECT id, product_id, image_url FROM product_images WHERE product_id = ?"
	if err := r.db.SelectContext(ctx, &rows, query, productID); err != nil {
		return nil, wrapStorageErr(err, "list product images")
	}
	images := make([]model.ProductImage, 0, len(rows))
	for _, row := range rows {
		images = append(images, model.ProductImage{ID: row.ID, ProductID: row.ProductID, ImageURL: row.ImageURL})
	}
	return images, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
