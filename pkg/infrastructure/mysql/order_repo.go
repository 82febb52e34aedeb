package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"marketplace/pkg/domain/model"
)

const orderColumns = "id, buyer_id, order_date, status, total_amount, recipient_name, phone, address_line1, address_line2"

type orderRepository struct {
	db database
}

type orderRow struct {
	ID            uuid.UUID       `db:"id"`
	BuyerID       uuid.UUID       `db:"buyer_id"`
	OrderDate     time.Time       `db:"order_date"`
	Status        string          `db:"status"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	RecipientName string          `db:"recipient_name"`
	Phone         string          `db:"phone"`
	AddressLine1  string          `db:"address_line1"`
	AddressLine2  sql.NullString  `db:"address_line2"`
}

func (r orderRow) toModel() model.Order {
	order := model.Order{
		ID:          r.ID,
		BuyerID:     r.BuyerID,
		OrderDate:   r.OrderDate.UTC(),
		Status:      model.OrderStatus(r.Status),
		TotalAmount: r.TotalAmount,
		Shipping: model.ShippingInfo{
			RecipientName: r.RecipientName,
			Phone:         r.Phone,
			AddressLine1:  r.AddressLine1,
		},
	}
	if r.AddressLine2.Valid {
		line2 := r.AddressLine2.String
		order.Shipping.AddressLine2 = &line2
	}
	return order
}

func (r *orderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const query = "INSERT INTO orders (" + orderColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	var line2 sql.NullString
	if order.Shipping.AddressLine2 != nil {
		line2 = sql.NullString{String: *order.Shipping.AddressLine2, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.BuyerID, order.OrderDate, string(order.Status), order.TotalAmount,
		order.Shipping.RecipientName, order.Shipping.Phone, order.Shipping.AddressLine1, line2)
	if err != nil {
		return wrapStorageErr(err, "insert order")
	}
	return nil
}

func (r *orderRepository) Find(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var row orderRow
	const query = "SELECT " + orderColumns + " FROM orders WHERE id = ?"
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, wrapStorageErr(err, "find order")
	}
	order := row.toModel()
	return &order, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.Order, error) {
	var rows []orderRow
	const query = "SELECT " + orderColumns + " FROM orders WHERE buyer_id = ? ORDER BY order_date DESC"
	if err := r.db.SelectContext(ctx, &rows, query, buyerID); err != nil {
		return nil, wrapStorageErr(err, "list orders by buyer")
	}
	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toModel())
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	const query = "UPDATE orders SET status = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return wrapStorageErr(err, "update order status")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapStorageErr(err, "update order status")
	}
	// MySQL reports zero affected rows for a no-op status write, so a
	// missing order has to be told apart by lookup.
	if affected == 0 {
		if _, err := r.Find(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) AddSoldItems(ctx context.Context, items []model.SoldItem) error {
	const query = "INSERT INTO sold_products (id, order_id, product_id, seller_id, buyer_id, quantity, sold_date) VALUES (?, ?, ?, ?, ?, ?, ?)"
	for _, item := range items {
		_, err := r.db.ExecContext(ctx, query,
			item.ID, item.OrderID, item.ProductID, item.SellerID, item.BuyerID, item.Quantity, item.SoldAt)
		if err != nil {
			return wrapStorageErr(err, "insert sold product")
		}
	}
	return nil
}

func (r *orderRepository) ListSoldItems(ctx context.Context, orderID uuid.UUID) ([]model.SoldItem, error) {
	type soldItemRow struct {
		ID        uuid.UUID `db:"id"`
		OrderID   uuid.UUID `db:"order_id"`
		ProductID uuid.UUID `db:"product_id"`
		SellerID  uuid.UUID `db:"seller_id"`
		BuyerID   uuid.UUID `db:"buyer_id"`
		Quantity  int       `db:"quantity"`
		SoldAt    time.Time `db:"sold_date"`
	}
	var rows []soldItemRow
	const query = "SELECT id, order_id, product_id, seller_id, buyer_id, quantity, sold_date FROM sold_products WHERE order_id = ?"
	if err := r.db.SelectContext(ctx, &rows, query, orderID); err != nil {
		return nil, wrapStorageErr(err, "list sold products")
	}
	items := make([]model.SoldItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.SoldItem{
			ID:        row.ID,
			OrderID:   row.OrderID,
			ProductID: row.ProductID,
			SellerID:  row.SellerID,
			BuyerID:   row.BuyerID,
			Quantity:  row.Quantity,
			SoldAt:    row.SoldAt.UTC(),
		})
	}
	return items, nil
}
