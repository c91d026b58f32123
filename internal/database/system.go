package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// GetSystemConfig reads the singleton config row. A missing row is not an
// error: it returns the zero config, whose null accepting_orders means
// ordering defaults to open.
func (q *Queries) GetSystemConfig(ctx context.Context) (SystemConfig, error) {
	var c SystemConfig
	err := q.db.QueryRow(ctx, `
		SELECT accepting_orders, upi_id, payee_name, updated_at
		FROM system_config
		WHERE id = 1`).Scan(&c.AcceptingOrders, &c.UpiID, &c.PayeeName, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return SystemConfig{}, nil
	}
	return c, err
}

type UpdateSystemConfigParams struct {
	AcceptingOrders pgtype.Bool
	UpiID           pgtype.Text
	PayeeName       pgtype.Text
}

// UpdateSystemConfig merges the non-null fields into the singleton row,
// creating it on first write. Null params leave the stored value untouched.
func (q *Queries) UpdateSystemConfig(ctx context.Context, arg UpdateSystemConfigParams) (SystemConfig, error) {
	var c SystemConfig
	err := q.db.QueryRow(ctx, `
		INSERT INTO system_config (id, accepting_orders, upi_id, payee_name)
		VALUES (1, $1, COALESCE($2, ''), COALESCE($3, ''))
		ON CONFLICT (id) DO UPDATE
		SET accepting_orders = COALESCE($1, system_config.accepting_orders),
		    upi_id = COALESCE($2, system_config.upi_id),
		    payee_name = COALESCE($3, system_config.payee_name),
		    updated_at = now()
		RETURNING accepting_orders, upi_id, payee_name, updated_at`,
		arg.AcceptingOrders, arg.UpiID, arg.PayeeName,
	).Scan(&c.AcceptingOrders, &c.UpiID, &c.PayeeName, &c.UpdatedAt)
	return c, err
}
