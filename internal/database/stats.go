package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Revenue analytics run over served orders only: pending orders are not
// revenue yet and cancelled orders never were. A NULL since matches all time.

type GetSalesSummaryRow struct {
	OrderCount   int64
	TotalRevenue pgtype.Numeric
	AverageOrder pgtype.Numeric
	HighestOrder pgtype.Numeric
}

func (q *Queries) GetSalesSummary(ctx context.Context, since pgtype.Timestamptz) (GetSalesSummaryRow, error) {
	var r GetSalesSummaryRow
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_price), 0),
		       COALESCE(AVG(total_price), 0),
		       COALESCE(MAX(total_price), 0)
		FROM orders
		WHERE status = 'served'
		  AND ($1::timestamptz IS NULL OR created_at >= $1)`,
		since,
	).Scan(&r.OrderCount, &r.TotalRevenue, &r.AverageOrder, &r.HighestOrder)
	return r, err
}

type GetDailySalesRow struct {
	SaleDate     pgtype.Date
	OrderCount   int64
	TotalRevenue pgtype.Numeric
}

func (q *Queries) GetDailySales(ctx context.Context, since pgtype.Timestamptz) ([]GetDailySalesRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT created_at::date AS sale_date,
		       COUNT(*),
		       COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE status = 'served'
		  AND ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY sale_date
		ORDER BY sale_date`,
		since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GetDailySalesRow
	for rows.Next() {
		var r GetDailySalesRow
		if err := rows.Scan(&r.SaleDate, &r.OrderCount, &r.TotalRevenue); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

type GetHourlySalesRow struct {
	Hour         int32
	OrderCount   int64
	TotalRevenue pgtype.Numeric
}

func (q *Queries) GetHourlySales(ctx context.Context, since pgtype.Timestamptz) ([]GetHourlySalesRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour,
		       COUNT(*),
		       COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE status = 'served'
		  AND ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY hour
		ORDER BY hour`,
		since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GetHourlySalesRow
	for rows.Next() {
		var r GetHourlySalesRow
		if err := rows.Scan(&r.Hour, &r.OrderCount, &r.TotalRevenue); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

type GetCategorySalesRow struct {
	Category     string
	ItemCount    int64
	TotalRevenue pgtype.Numeric
}

// GetCategorySales unnests the denormalized item lines, so revenue is
// attributed to the category captured at order time, not the current catalog.
func (q *Queries) GetCategorySales(ctx context.Context, since pgtype.Timestamptz) ([]GetCategorySalesRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT COALESCE(NULLIF(line->>'category', ''), 'Other') AS category,
		       COUNT(*),
		       COALESCE(SUM((line->>'price')::numeric), 0)
		FROM orders, jsonb_array_elements(items) AS line
		WHERE status = 'served'
		  AND ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY category
		ORDER BY 3 DESC`,
		since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GetCategorySalesRow
	for rows.Next() {
		var r GetCategorySalesRow
		if err := rows.Scan(&r.Category, &r.ItemCount, &r.TotalRevenue); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

type GetBestSellersParams struct {
	Since pgtype.Timestamptz
	Limit int32
}

type GetBestSellersRow struct {
	Name         string
	Category     string
	QuantitySold int64
	TotalRevenue pgtype.Numeric
}

func (q *Queries) GetBestSellers(ctx context.Context, arg GetBestSellersParams) ([]GetBestSellersRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT COALESCE(NULLIF(line->>'name', ''), 'Unknown') AS name,
		       MIN(COALESCE(NULLIF(line->>'category', ''), 'Other')),
		       COUNT(*),
		       COALESCE(SUM((line->>'price')::numeric), 0)
		FROM orders, jsonb_array_elements(items) AS line
		WHERE status = 'served'
		  AND ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY name
		ORDER BY 3 DESC, 4 DESC
		LIMIT $2`,
		arg.Since, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GetBestSellersRow
	for rows.Next() {
		var r GetBestSellersRow
		if err := rows.Scan(&r.Name, &r.Category, &r.QuantitySold, &r.TotalRevenue); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

type GetPaymentSummaryRow struct {
	PaymentStatus string
	OrderCount    int64
	TotalAmount   pgtype.Numeric
}

func (q *Queries) GetPaymentSummary(ctx context.Context, since pgtype.Timestamptz) ([]GetPaymentSummaryRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT payment_status,
		       COUNT(*),
		       COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE status = 'served'
		  AND ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY payment_status`,
		since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GetPaymentSummaryRow
	for rows.Next() {
		var r GetPaymentSummaryRow
		if err := rows.Scan(&r.PaymentStatus, &r.OrderCount, &r.TotalAmount); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

type GetStatusSummaryRow struct {
	Status     string
	OrderCount int64
}

// GetStatusSummary covers all orders regardless of status, since the
// breakdown itself is the point.
func (q *Queries) GetStatusSummary(ctx context.Context) ([]GetStatusSummaryRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GetStatusSummaryRow
	for rows.Next() {
		var r GetStatusSummaryRow
		if err := rows.Scan(&r.Status, &r.OrderCount); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
