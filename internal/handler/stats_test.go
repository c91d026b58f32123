package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/elysian-cafe/api/internal/database"
	"github.com/elysian-cafe/api/internal/enum"
	"github.com/elysian-cafe/api/internal/handler"
)

// --- Mock store ---

type mockStatsStore struct {
	summary     database.GetSalesSummaryRow
	daily       []database.GetDailySalesRow
	hourly      []database.GetHourlySalesRow
	categories  []database.GetCategorySalesRow
	bestSellers []database.GetBestSellersRow
	payments    []database.GetPaymentSummaryRow
	statuses    []database.GetStatusSummaryRow
	lastSince   pgtype.Timestamptz
	lastLimit   int32
}

func (m *mockStatsStore) GetSalesSummary(_ context.Context, since pgtype.Timestamptz) (database.GetSalesSummaryRow, error) {
	m.lastSince = since
	return m.summary, nil
}

func (m *mockStatsStore) GetDailySales(_ context.Context, since pgtype.Timestamptz) ([]database.GetDailySalesRow, error) {
	m.lastSince = since
	return m.daily, nil
}

func (m *mockStatsStore) GetHourlySales(_ context.Context, since pgtype.Timestamptz) ([]database.GetHourlySalesRow, error) {
	m.lastSince = since
	return m.hourly, nil
}

func (m *mockStatsStore) GetCategorySales(_ context.Context, since pgtype.Timestamptz) ([]database.GetCategorySalesRow, error) {
	m.lastSince = since
	return m.categories, nil
}

func (m *mockStatsStore) GetBestSellers(_ context.Context, arg database.GetBestSellersParams) ([]database.GetBestSellersRow, error) {
	m.lastSince = arg.Since
	m.lastLimit = arg.Limit
	return m.bestSellers, nil
}

func (m *mockStatsStore) GetPaymentSummary(_ context.Context, since pgtype.Timestamptz) ([]database.GetPaymentSummaryRow, error) {
	m.lastSince = since
	return m.payments, nil
}

func (m *mockStatsStore) GetStatusSummary(_ context.Context) ([]database.GetStatusSummaryRow, error) {
	return m.statuses, nil
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func setupStatsRouter(store *mockStatsStore) *chi.Mux {
	h := handler.NewStatsHandler(store)
	r := chi.NewRouter()
	r.Route("/admin/stats", h.RegisterRoutes)
	return r
}

// --- Tests ---

func TestStatsSummary(t *testing.T) {
	store := &mockStatsStore{
		summary: database.GetSalesSummaryRow{
			OrderCount:   12,
			TotalRevenue: testNumeric("1560"),
			AverageOrder: testNumeric("130"),
			HighestOrder: testNumeric("450"),
		},
	}
	router := setupStatsRouter(store)

	rr := doRequest(t, router, "GET", "/admin/stats/summary", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rr)
	if resp["order_count"] != float64(12) {
		t.Errorf("order_count: got %v", resp["order_count"])
	}
	if resp["total_revenue"] != "1560.00" {
		t.Errorf("total_revenue: got %v", resp["total_revenue"])
	}
	if resp["average_order"] != "130.00" {
		t.Errorf("average_order: got %v", resp["average_order"])
	}
	// Default period is all time: since must be NULL.
	if store.lastSince.Valid {
		t.Error("default period should pass a NULL since")
	}
}

func TestStatsPeriodBounds(t *testing.T) {
	store := &mockStatsStore{}
	router := setupStatsRouter(store)

	for _, period := range []string{"today", "week", "month"} {
		rr := doRequest(t, router, "GET", "/admin/stats/summary?period="+period, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("period %s: got %d", period, rr.Code)
		}
		if !store.lastSince.Valid {
			t.Errorf("period %s should pass a time bound", period)
		}
	}

	rr := doRequest(t, router, "GET", "/admin/stats/summary?period=decade", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad period: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestStatsBestSellers_Limit(t *testing.T) {
	store := &mockStatsStore{
		bestSellers: []database.GetBestSellersRow{
			{Name: "Strawberry Dip", Category: "Dips", QuantitySold: 40, TotalRevenue: testNumeric("2000")},
		},
	}
	router := setupStatsRouter(store)

	rr := doRequest(t, router, "GET", "/admin/stats/best-sellers?limit=5", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if store.lastLimit != 5 {
		t.Errorf("limit: got %d, want 5", store.lastLimit)
	}

	// Default limit.
	doRequest(t, router, "GET", "/admin/stats/best-sellers", nil)
	if store.lastLimit != 10 {
		t.Errorf("default limit: got %d, want 10", store.lastLimit)
	}

	rr = doRequest(t, router, "GET", "/admin/stats/best-sellers?limit=500", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("oversized limit: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// Unknown payment labels count as UPI, since cash was always tagged
// explicitly and everything else came from the UPI flow.
func TestStatsPaymentMethods_Classification(t *testing.T) {
	store := &mockStatsStore{
		payments: []database.GetPaymentSummaryRow{
			{PaymentStatus: enum.PaymentStatusCash, OrderCount: 3, TotalAmount: testNumeric("300")},
			{PaymentStatus: enum.PaymentStatusAwaiting, OrderCount: 2, TotalAmount: testNumeric("250")},
			{PaymentStatus: "legacy-label", OrderCount: 1, TotalAmount: testNumeric("50")},
		},
	}
	router := setupStatsRouter(store)

	rr := doRequest(t, router, "GET", "/admin/stats/payment-methods", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}

	resp := decodeListResponse(t, rr)
	if len(resp) != 2 {
		t.Fatalf("methods: got %d, want 2", len(resp))
	}
	byMethod := map[string]map[string]interface{}{}
	for _, row := range resp {
		byMethod[row["method"].(string)] = row
	}
	if byMethod["Cash"]["order_count"] != float64(3) {
		t.Errorf("cash count: got %v", byMethod["Cash"]["order_count"])
	}
	if byMethod["UPI"]["order_count"] != float64(3) {
		t.Errorf("upi count: got %v, want 3 (awaiting + unknown)", byMethod["UPI"]["order_count"])
	}
	if byMethod["UPI"]["total_amount"] != "300.00" {
		t.Errorf("upi amount: got %v, want 300.00", byMethod["UPI"]["total_amount"])
	}
}

func TestStatsDaily(t *testing.T) {
	store := &mockStatsStore{
		daily: []database.GetDailySalesRow{
			{
				SaleDate:     pgtype.Date{Time: mustDate(t, "2026-08-28"), Valid: true},
				OrderCount:   5,
				TotalRevenue: testNumeric("640"),
			},
		},
	}
	router := setupStatsRouter(store)

	rr := doRequest(t, router, "GET", "/admin/stats/daily", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	resp := decodeListResponse(t, rr)
	if len(resp) != 1 {
		t.Fatalf("rows: got %d", len(resp))
	}
	if resp[0]["date"] != "2026-08-28" {
		t.Errorf("date: got %v", resp[0]["date"])
	}
}

func TestStatsStatusBreakdown(t *testing.T) {
	store := &mockStatsStore{
		statuses: []database.GetStatusSummaryRow{
			{Status: enum.OrderStatusPending, OrderCount: 2},
			{Status: enum.OrderStatusServed, OrderCount: 10},
			{Status: enum.OrderStatusCancelled, OrderCount: 1},
		},
	}
	router := setupStatsRouter(store)

	rr := doRequest(t, router, "GET", "/admin/stats/status", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if resp := decodeListResponse(t, rr); len(resp) != 3 {
		t.Errorf("rows: got %d, want 3", len(resp))
	}
}
