package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, order_number, items, total_price, status, payment_status, created_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Items, &o.TotalPrice,
		&o.Status, &o.PaymentStatus, &o.CreatedAt,
	)
	return o, err
}

// NextOrderNumber bumps the singleton counter and returns the new value.
// A missing counter row counts as zero, so the first allocation returns 1.
// The single statement read-modify-writes under the row lock: concurrent
// callers serialize and each sees a distinct value.
func (q *Queries) NextOrderNumber(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO order_counter (id, order_number)
		VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE
		SET order_number = order_counter.order_number + 1
		RETURNING order_number`).Scan(&n)
	return n, err
}

type CreateOrderParams struct {
	OrderNumber   pgtype.Int8
	Items         []ItemLine
	TotalPrice    pgtype.Numeric
	Status        string
	PaymentStatus string
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO orders (order_number, items, total_price, status, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderColumns,
		arg.OrderNumber, arg.Items, arg.TotalPrice, arg.Status, arg.PaymentStatus)
	return scanOrder(row)
}

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1`, id)
	return scanOrder(row)
}

type ListOrdersParams struct {
	Status    pgtype.Text
	StartDate pgtype.Timestamptz
	EndDate   pgtype.Timestamptz
	Limit     int32
	Offset    int32
}

// ListOrders returns orders newest first, with optional status and date
// filters. NULL filter values match everything.
func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`,
		arg.Status, arg.StartDate, arg.EndDate, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type UpdateOrderStatusParams struct {
	ID         uuid.UUID
	Status     string
	PrevStatus string
}

// UpdateOrderStatus writes the new status only if the order is still in the
// status the caller observed. A concurrent transition makes the WHERE miss
// and surfaces as pgx.ErrNoRows.
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $2
		WHERE id = $1 AND status = $3
		RETURNING `+orderColumns,
		arg.ID, arg.Status, arg.PrevStatus)
	return scanOrder(row)
}

// CancelOrder enforces the lifecycle precondition atomically: only a
// non-terminal order can be cancelled. Terminal orders make the WHERE miss
// and surface as pgx.ErrNoRows.
func (q *Queries) CancelOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE orders
		SET status = 'cancelled'
		WHERE id = $1 AND status NOT IN ('served', 'cancelled')
		RETURNING `+orderColumns, id)
	return scanOrder(row)
}
