package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/pkg/domain/model"
)

var (
	ErrOrderIsEmpty       = errors.New("cannot process an empty order")
	ErrInvalidQuantity    = errors.New("quantity must be a positive number")
	ErrDuplicateProduct   = errors.New("order lines must reference distinct products")
	ErrIncompleteShipping = errors.New("recipient name, phone and address line 1 are required")
)

// OrderLine is one (product, quantity) entry of an incoming order request.
type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlacedOrder is the durable result of a committed order: the header plus
// the sold line items created with it.
type PlacedOrder struct {
	Order model.Order
	Items []model.SoldItem
}

type OrderService interface {
	// PlaceOrder converts an order request into a committed Order and its
	// SoldItems, decrementing product stock on the way, or fails without
	// any partial effect.
	PlaceOrder(ctx context.Context, buyerID uuid.UUID, lines []OrderLine, shipping model.ShippingInfo) (*PlacedOrder, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*PlacedOrder, error)
	ListOrdersByBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.Order, error)
	ChangeOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error
}

func NewOrderService(uow model.UnitOfWork, dispatcher EventDispatcher) OrderService {
	return &orderService{uow: uow, dispatcher: dispatcher}
}

type orderService struct {
	uow        model.UnitOfWork
	dispatcher EventDispatcher
}

func (s *orderService) PlaceOrder(ctx context.Context, buyerID uuid.UUID, lines []OrderLine, shipping model.ShippingInfo) (*PlacedOrder, error) {
	if len(lines) == 0 {
		return nil, ErrOrderIsEmpty
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		// One sold line item per distinct product; a quantity above one
		// belongs on the line, not in a repeated line.
		if _, ok := seen[line.ProductID]; ok {
			return nil, ErrDuplicateProduct
		}
		seen[line.ProductID] = struct{}{}
	}
	if shipping.RecipientName == "" || shipping.Phone == "" || shipping.AddressLine1 == "" {
		return nil, ErrIncompleteShipping
	}

	var placed *PlacedOrder
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		now := time.Now().UTC()

		// Products are locked in request order; a concurrent request for
		// the same products either waits on the first lock or loses the
		// conditional decrement below.
		products := make([]*model.Product, 0, len(lines))
		total := decimal.Zero
		for _, line := range lines {
			product, err := r.Products().FindForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product.Stock < line.Quantity {
				return model.InsufficientStockError{ProductID: product.ID}
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			products = append(products, product)
		}

		for i, line := range lines {
			if err := r.Products().DecrementStock(ctx, products[i].ID, line.Quantity); err != nil {
				return err
			}
		}

		orderID, err := r.Orders().NextID()
		if err != nil {
			return err
		}
		order := &model.Order{
			ID:          orderID,
			BuyerID:     buyerID,
			OrderDate:   now,
			Status:      model.OrderStatusPending,
			TotalAmount: total,
			Shipping:    shipping,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return err
		}

		items := make([]model.SoldItem, 0, len(lines))
		for i, line := range lines {
			itemID, err := r.Orders().NextID()
			if err != nil {
				return err
			}
			items = append(items, model.SoldItem{
				ID:        itemID,
				OrderID:   orderID,
				ProductID: products[i].ID,
				SellerID:  products[i].SellerID,
				BuyerID:   buyerID,
				Quantity:  line.Quantity,
				SoldAt:    now,
			})
		}
		if err := r.Orders().AddSoldItems(ctx, items); err != nil {
			return err
		}

		placed = &PlacedOrder{Order: *order, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:     placed.Order.ID,
		BuyerID:     buyerID,
		TotalAmount: placed.Order.TotalAmount.StringFixed(2),
		LineCount:   len(placed.Items),
	})
	return placed, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*PlacedOrder, error) {
	var placed *PlacedOrder
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		order, err := r.Orders().Find(ctx, orderID)
		if err != nil {
			return err
		}
		items, err := r.Orders().ListSoldItems(ctx, orderID)
		if err != nil {
			return err
		}
		placed = &PlacedOrder{Order: *order, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *orderService) ListOrdersByBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		var err error
		orders, err = r.Orders().ListByBuyer(ctx, buyerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ChangeOrderStatus is a separate writer from PlaceOrder and touches only
// the status field; it is intentionally not guarded against races with the
// order-creation transaction.
func (s *orderService) ChangeOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error {
	if !status.Valid() {
		return model.ErrInvalidOrderStatus
	}

	var oldStatus model.OrderStatus
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		order, err := r.Orders().Find(ctx, orderID)
		if err != nil {
			return err
		}
		oldStatus = order.Status
		return r.Orders().UpdateStatus(ctx, orderID, status)
	})
	if err != nil {
		return err
	}

	if oldStatus != status {
		_ = s.dispatcher.Dispatch(model.OrderStatusChanged{
			OrderID:   orderID,
			OldStatus: oldStatus,
			NewStatus: status,
		})
	}
	return nil
}
