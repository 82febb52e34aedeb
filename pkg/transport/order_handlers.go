package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"marketplace/pkg/domain/model"
	"marketplace/pkg/domain/service"
)

type orderLineBody struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type shippingBody struct {
	RecipientName string  `json:"recipient_name"`
	Phone         string  `json:"phone"`
	AddressLine1  string  `json:"address_line1"`
	AddressLine2  *string `json:"address_line2,omitempty"`
}

type createOrderRequest struct {
	BuyerID  uuid.UUID       `json:"buyer_id"`
	Lines    []orderLineBody `json:"lines"`
	Shipping shippingBody    `json:"shipping"`
}

type orderResponse struct {
	ID          uuid.UUID       `json:"id"`
	BuyerID     uuid.UUID       `json:"buyer_id"`
	OrderDate   string          `json:"order_date"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Lines       []orderLineBody `json:"lines"`
	Shipping    shippingBody    `json:"shipping"`
}

func toOrderResponse(placed *service.PlacedOrder) orderResponse {
	lines := make([]orderLineBody, 0, len(placed.Items))
	for _, item := range placed.Items {
		lines = append(lines, orderLineBody{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return orderResponse{
		ID:          placed.Order.ID,
		BuyerID:     placed.Order.BuyerID,
		OrderDate:   placed.Order.OrderDate.Format(time.RFC3339),
		Status:      string(placed.Order.Status),
		TotalAmount: placed.Order.TotalAmount,
		Lines:       lines,
		Shipping: shippingBody{
			RecipientName: placed.Order.Shipping.RecipientName,
			Phone:         placed.Order.Shipping.Phone,
			AddressLine1:  placed.Order.Shipping.AddressLine1,
			AddressLine2:  placed.Order.Shipping.AddressLine2,
		},
	}
}

func (h *Handler) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var body createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	lines := make([]service.OrderLine, 0, len(body.Lines))
	for _, line := range body.Lines {
		lines = append(lines, service.OrderLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	shipping := model.ShippingInfo{
		RecipientName: body.Shipping.RecipientName,
		Phone:         body.Shipping.Phone,
		AddressLine1:  body.Shipping.AddressLine1,
		AddressLine2:  body.Shipping.AddressLine2,
	}

	placed, err := h.orders.PlaceOrder(r.Context(), body.BuyerID, lines, shipping)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(placed))
}

func (h *Handler) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderId")
	if !ok {
		return
	}

	placed, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(placed))
}

// orderSummaryResponse is the list-view shape: order headers only, no line
// items. Line items are served by the single-order endpoint.
type orderSummaryResponse struct {
	ID          uuid.UUID       `json:"id"`
	BuyerID     uuid.UUID       `json:"buyer_id"`
	OrderDate   string          `json:"order_date"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (h *Handler) listOrdersByBuyerHandler(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	orders, err := h.orders.ListOrdersByBuyer(r.Context(), buyerID)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]orderSummaryResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, orderSummaryResponse{
			ID:          order.ID,
			BuyerID:     order.BuyerID,
			OrderDate:   order.OrderDate.Format(time.RFC3339),
			Status:      string(order.Status),
			TotalAmount: order.TotalAmount,
		})
	}
	writeJSON(w, http.StatusOK, responses)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderId")
	if !ok {
		return
	}

	var body updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := h.orders.ChangeOrderStatus(r.Context(), orderID, model.OrderStatus(body.Status)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
