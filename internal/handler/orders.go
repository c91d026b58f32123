package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/elysian-cafe/api/internal/cart"
	"github.com/elysian-cafe/api/internal/database"
	"github.com/elysian-cafe/api/internal/enum"
	"github.com/elysian-cafe/api/internal/service"
	"github.com/elysian-cafe/api/internal/ws"
)

// OrderStore defines the database methods needed by order handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
}

// OrderHandler handles order submission and the staff lifecycle endpoints.
type OrderHandler struct {
	store   OrderStore
	service *service.OrderService
	hub     *ws.Hub
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, svc *service.OrderService, hub *ws.Hub) *OrderHandler {
	return &OrderHandler{store: store, service: svc, hub: hub}
}

// RegisterPublicRoutes registers the storefront submission endpoint.
func (h *OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/orders", h.Submit)
}

// RegisterStaffRoutes registers order management endpoints.
// Expected to be mounted inside an authenticated subrouter: /orders
func (h *OrderHandler) RegisterStaffRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Cancel)
}

// --- Request / Response types ---

type submitOrderRequest struct {
	Items       []itemLineRequest `json:"items"`
	PaymentMode string            `json:"paymentMode"`
}

type itemLineRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	VegType  string `json:"vegType"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   *int64              `json:"order_number,omitempty"`
	Items         []database.ItemLine `json:"items"`
	TotalPrice    string              `json:"total_price"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	CreatedAt     time.Time           `json:"created_at"`
}

type submitOrderResponse struct {
	orderResponse
	PaymentURI string `json:"payment_uri,omitempty"`
}

func toOrderResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:            o.ID,
		Items:         o.Items,
		TotalPrice:    numericToString(o.TotalPrice),
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
	}
	if o.Items == nil {
		resp.Items = []database.ItemLine{}
	}
	if o.OrderNumber.Valid {
		n := o.OrderNumber.Int64
		resp.OrderNumber = &n
	}
	return resp
}

// --- Handlers ---

// Submit places a storefront order. The request carries the cart's
// denormalized item snapshots; totals are computed from those, not from the
// live catalog.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	lines := make([]cart.Line, 0, len(req.Items))
	for _, line := range req.Items {
		price, err := decimal.NewFromString(line.Price)
		if err != nil || price.IsNegative() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item price"})
			return
		}
		if line.ID == "" || line.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item id and name are required"})
			return
		}
		lines = append(lines, cart.Line{
			ID:       line.ID,
			Name:     line.Name,
			Price:    price,
			Category: line.Category,
			VegType:  line.VegType,
		})
	}
	c := cart.FromLines(lines)

	result, err := h.service.Submit(r.Context(), c, req.PaymentMode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cart is empty"})
		case errors.Is(err, service.ErrInvalidPaymentMode):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "paymentMode must be CASH or UPI"})
		case errors.Is(err, service.ErrOrdersClosed):
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "ordering is currently closed"})
		case errors.Is(err, service.ErrConfigUnavailable):
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "service temporarily unavailable"})
		default:
			log.Printf("ERROR: submit order: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	h.broadcastOrderEvent("order.created", result.Order)

	writeJSON(w, http.StatusCreated, submitOrderResponse{
		orderResponse: toOrderResponse(result.Order),
		PaymentURI:    result.PaymentURI,
	})
}

// List returns orders newest first, with optional status and date-range
// filters: ?status=pending&start_date=2026-08-01&end_date=2026-08-31&limit=50
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	params := database.ListOrdersParams{Limit: 50}

	if s := r.URL.Query().Get("status"); s != "" {
		if !service.IsValidOrderStatus(s) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status filter"})
			return
		}
		params.Status = pgtype.Text{String: s, Valid: true}
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date, use YYYY-MM-DD"})
			return
		}
		params.StartDate = pgtype.Timestamptz{Time: t, Valid: true}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date, use YYYY-MM-DD"})
			return
		}
		// End date is inclusive: advance to the next day's midnight.
		params.EndDate = pgtype.Timestamptz{Time: t.AddDate(0, 0, 1), Valid: true}
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 200 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be between 1 and 200"})
			return
		}
		params.Limit = int32(n)
	}

	if s := r.URL.Query().Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid offset"})
			return
		}
		params.Offset = int32(n)
	}

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateStatus moves an order through its lifecycle. The write is
// conditional on the status the caller observed, so two staff racing over
// the same order produce exactly one transition; the loser gets a 409.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if !service.IsValidOrderStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order for status update: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := service.ValidateStatusTransition(order.Status, req.Status); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), database.UpdateOrderStatusParams{
		ID:         id,
		Status:     req.Status,
		PrevStatus: order.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Someone else transitioned the order between our read and write.
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order status changed concurrently"})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastOrderEvent("order.updated", updated)
	writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

// Cancel moves a pending order to cancelled. The guard lives in the query:
// a terminal order makes the conditional update miss, and we re-read to
// tell not-found apart from already-terminal.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.CancelOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, getErr := h.store.GetOrder(r.Context(), id)
			if getErr == nil {
				writeJSON(w, http.StatusConflict, map[string]string{
					"error": "order is already " + existing.Status,
				})
				return
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: cancel order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastOrderEvent("order.updated", order)
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// --- Helpers ---

func (h *OrderHandler) broadcastOrderEvent(eventType string, order database.Order) {
	payload, err := json.Marshal(toOrderResponse(order))
	if err != nil {
		log.Printf("ERROR: marshal order event: %v", err)
		return
	}
	h.hub.Broadcast(ws.TopicOrders, ws.Event{Type: eventType, Payload: payload})
}

// OrdersSnapshot builds the initial feed state for a new orders subscriber.
func OrdersSnapshot(store OrderStore) ws.SnapshotFunc {
	return func(ctx context.Context) (ws.Event, error) {
		orders, err := store.ListOrders(ctx, database.ListOrdersParams{
			Status: pgtype.Text{String: enum.OrderStatusPending, Valid: true},
			Limit:  50,
		})
		if err != nil {
			return ws.Event{}, err
		}
		resp := make([]orderResponse, len(orders))
		for i, o := range orders {
			resp[i] = toOrderResponse(o)
		}
		payload, err := json.Marshal(resp)
		if err != nil {
			return ws.Event{}, err
		}
		return ws.Event{Type: "orders.snapshot", Payload: payload}, nil
	}
}
