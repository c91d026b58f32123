package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/elysian-cafe/api/internal/database"
	"github.com/elysian-cafe/api/internal/enum"
)

// StatsStore defines the database methods needed by analytics handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type StatsStore interface {
	GetSalesSummary(ctx context.Context, since pgtype.Timestamptz) (database.GetSalesSummaryRow, error)
	GetDailySales(ctx context.Context, since pgtype.Timestamptz) ([]database.GetDailySalesRow, error)
	GetHourlySales(ctx context.Context, since pgtype.Timestamptz) ([]database.GetHourlySalesRow, error)
	GetCategorySales(ctx context.Context, since pgtype.Timestamptz) ([]database.GetCategorySalesRow, error)
	GetBestSellers(ctx context.Context, arg database.GetBestSellersParams) ([]database.GetBestSellersRow, error)
	GetPaymentSummary(ctx context.Context, since pgtype.Timestamptz) ([]database.GetPaymentSummaryRow, error)
	GetStatusSummary(ctx context.Context) ([]database.GetStatusSummaryRow, error)
}

// StatsHandler handles revenue analytics over served orders.
type StatsHandler struct {
	store StatsStore
	now   func() time.Time
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(store StatsStore) *StatsHandler {
	return &StatsHandler{store: store, now: time.Now}
}

// RegisterRoutes registers analytics endpoints on the given Chi router.
// Expected to be mounted inside an admin-scoped subrouter: /admin/stats
func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
	r.Get("/daily", h.Daily)
	r.Get("/hourly", h.Hourly)
	r.Get("/categories", h.Categories)
	r.Get("/best-sellers", h.BestSellers)
	r.Get("/payment-methods", h.PaymentMethods)
	r.Get("/status", h.StatusBreakdown)
}

// --- Response types ---

type salesSummaryResponse struct {
	OrderCount   int64  `json:"order_count"`
	TotalRevenue string `json:"total_revenue"`
	AverageOrder string `json:"average_order"`
	HighestOrder string `json:"highest_order"`
}

type dailySalesResponse struct {
	Date         string `json:"date"`
	OrderCount   int64  `json:"order_count"`
	TotalRevenue string `json:"total_revenue"`
}

type hourlySalesResponse struct {
	Hour         int32  `json:"hour"`
	OrderCount   int64  `json:"order_count"`
	TotalRevenue string `json:"total_revenue"`
}

type categorySalesResponse struct {
	Category     string `json:"category"`
	ItemCount    int64  `json:"item_count"`
	TotalRevenue string `json:"total_revenue"`
}

type bestSellerResponse struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	QuantitySold int64  `json:"quantity_sold"`
	TotalRevenue string `json:"total_revenue"`
}

type paymentMethodResponse struct {
	Method      string `json:"method"`
	OrderCount  int64  `json:"order_count"`
	TotalAmount string `json:"total_amount"`
}

type statusBreakdownResponse struct {
	Status     string `json:"status"`
	OrderCount int64  `json:"order_count"`
}

// --- Helpers ---

// sinceFromPeriod maps ?period=all|today|week|month to a lower time bound.
// The zero value (all) matches every order.
func (h *StatsHandler) sinceFromPeriod(r *http.Request, w http.ResponseWriter) (pgtype.Timestamptz, bool) {
	now := h.now()
	switch r.URL.Query().Get("period") {
	case "", "all":
		return pgtype.Timestamptz{}, true
	case "today":
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return pgtype.Timestamptz{Time: midnight, Valid: true}, true
	case "week":
		return pgtype.Timestamptz{Time: now.AddDate(0, 0, -7), Valid: true}, true
	case "month":
		return pgtype.Timestamptz{Time: now.AddDate(0, -1, 0), Valid: true}, true
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "period must be all, today, week or month"})
		return pgtype.Timestamptz{}, false
	}
}

// --- Handlers ---

// Summary returns headline revenue figures for the requested period.
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	since, ok := h.sinceFromPeriod(r, w)
	if !ok {
		return
	}

	row, err := h.store.GetSalesSummary(r.Context(), since)
	if err != nil {
		log.Printf("ERROR: sales summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, salesSummaryResponse{
		OrderCount:   row.OrderCount,
		TotalRevenue: numericToString(row.TotalRevenue),
		AverageOrder: numericToString(row.AverageOrder),
		HighestOrder: numericToString(row.HighestOrder),
	})
}

// Daily returns per-day revenue for the requested period.
func (h *StatsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	since, ok := h.sinceFromPeriod(r, w)
	if !ok {
		return
	}

	rows, err := h.store.GetDailySales(r.Context(), since)
	if err != nil {
		log.Printf("ERROR: daily sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]dailySalesResponse, len(rows))
	for i, row := range rows {
		resp[i] = dailySalesResponse{
			Date:         row.SaleDate.Time.Format("2006-01-02"),
			OrderCount:   row.OrderCount,
			TotalRevenue: numericToString(row.TotalRevenue),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Hourly returns revenue by hour of day, for spotting peak service windows.
func (h *StatsHandler) Hourly(w http.ResponseWriter, r *http.Request) {
	since, ok := h.sinceFromPeriod(r, w)
	if !ok {
		return
	}

	rows, err := h.store.GetHourlySales(r.Context(), since)
	if err != nil {
		log.Printf("ERROR: hourly sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]hourlySalesResponse, len(rows))
	for i, row := range rows {
		resp[i] = hourlySalesResponse{
			Hour:         row.Hour,
			OrderCount:   row.OrderCount,
			TotalRevenue: numericToString(row.TotalRevenue),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Categories returns revenue grouped by the category captured in each
// order's item snapshots.
func (h *StatsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	since, ok := h.sinceFromPeriod(r, w)
	if !ok {
		return
	}

	rows, err := h.store.GetCategorySales(r.Context(), since)
	if err != nil {
		log.Printf("ERROR: category sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]categorySalesResponse, len(rows))
	for i, row := range rows {
		resp[i] = categorySalesResponse{
			Category:     row.Category,
			ItemCount:    row.ItemCount,
			TotalRevenue: numericToString(row.TotalRevenue),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// BestSellers returns the top items by quantity sold: ?limit=10
func (h *StatsHandler) BestSellers(w http.ResponseWriter, r *http.Request) {
	since, ok := h.sinceFromPeriod(r, w)
	if !ok {
		return
	}

	limit := int32(10)
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be between 1 and 100"})
			return
		}
		limit = int32(n)
	}

	rows, err := h.store.GetBestSellers(r.Context(), database.GetBestSellersParams{
		Since: since,
		Limit: limit,
	})
	if err != nil {
		log.Printf("ERROR: best sellers: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]bestSellerResponse, len(rows))
	for i, row := range rows {
		resp[i] = bestSellerResponse{
			Name:         row.Name,
			Category:     row.Category,
			QuantitySold: row.QuantitySold,
			TotalRevenue: numericToString(row.TotalRevenue),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// PaymentMethods returns revenue split by payment method. Orders tagged
// cash count as Cash; everything else, unknown labels included, counts as
// UPI since awaiting_verification was the only other tag ever written.
func (h *StatsHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	since, ok := h.sinceFromPeriod(r, w)
	if !ok {
		return
	}

	rows, err := h.store.GetPaymentSummary(r.Context(), since)
	if err != nil {
		log.Printf("ERROR: payment summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	type bucket struct {
		count  int64
		amount decimal.Decimal
	}
	buckets := map[string]*bucket{
		"Cash": {},
		"UPI":  {},
	}
	for _, row := range rows {
		method := "UPI"
		if row.PaymentStatus == enum.PaymentStatusCash {
			method = "Cash"
		}
		b := buckets[method]
		b.count += row.OrderCount
		b.amount = b.amount.Add(numericToDecimal(row.TotalAmount))
	}

	resp := []paymentMethodResponse{
		{Method: "Cash", OrderCount: buckets["Cash"].count, TotalAmount: buckets["Cash"].amount.StringFixed(2)},
		{Method: "UPI", OrderCount: buckets["UPI"].count, TotalAmount: buckets["UPI"].amount.StringFixed(2)},
	}
	writeJSON(w, http.StatusOK, resp)
}

// StatusBreakdown returns order counts per lifecycle status, all time.
func (h *StatsHandler) StatusBreakdown(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.GetStatusSummary(r.Context())
	if err != nil {
		log.Printf("ERROR: status summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]statusBreakdownResponse, len(rows))
	for i, row := range rows {
		resp[i] = statusBreakdownResponse{Status: row.Status, OrderCount: row.OrderCount}
	}
	writeJSON(w, http.StatusOK, resp)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}
