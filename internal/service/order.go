package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/elysian-cafe/api/internal/cart"
	"github.com/elysian-cafe/api/internal/database"
	"github.com/elysian-cafe/api/internal/enum"
	"github.com/elysian-cafe/api/internal/payment"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrdersClosed       = errors.New("ordering is currently closed")
	ErrConfigUnavailable  = errors.New("system configuration unavailable")
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
)

// ConfigStore is satisfied by *database.Queries. Narrow interface for
// testability.
type ConfigStore interface {
	GetSystemConfig(ctx context.Context) (database.SystemConfig, error)
}

// OrderWriter is satisfied by *database.Queries. Narrow interface for
// testability.
type OrderWriter interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
}

// OrderService owns order submission: the acceptance gate, numbering,
// payment tagging and persistence.
type OrderService struct {
	config    ConfigStore
	orders    OrderWriter
	sequencer *OrderSequencer
}

func NewOrderService(config ConfigStore, orders OrderWriter, sequencer *OrderSequencer) *OrderService {
	return &OrderService{config: config, orders: orders, sequencer: sequencer}
}

// SubmissionResult is what a successful Submit hands back: the persisted
// order and, for UPI payments with a configured payee, a ready payment URI.
type SubmissionResult struct {
	Order      database.Order
	PaymentURI string
}

// CanSubmit re-reads the acceptance gate. The config is fetched fresh on
// every call: a toggle flipped mid-session applies to the next submission.
// A failed read closes the gate rather than letting orders through blind.
func (s *OrderService) CanSubmit(ctx context.Context) error {
	cfg, err := s.config.GetSystemConfig(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}
	return checkGate(cfg)
}

// checkGate closes ordering only on an explicit false. An unset
// accepting_orders means the gate was never configured and ordering is open.
func checkGate(cfg database.SystemConfig) error {
	if cfg.AcceptingOrders.Valid && !cfg.AcceptingOrders.Bool {
		return ErrOrdersClosed
	}
	return nil
}

// Submit places an order from the cart's current lines.
//
// The gate is re-checked against a fresh config read before anything is
// written. Numbering is best effort: a counter failure produces an
// unnumbered order, never a rejected one. The cart is cleared only after
// the order persists, so a failed write leaves it intact for retry.
func (s *OrderService) Submit(ctx context.Context, c *cart.Cart, mode string) (SubmissionResult, error) {
	if mode != enum.PaymentModeCash && mode != enum.PaymentModeUPI {
		return SubmissionResult{}, fmt.Errorf("%w: %q", ErrInvalidPaymentMode, mode)
	}
	if c.Len() == 0 {
		return SubmissionResult{}, ErrEmptyCart
	}

	cfg, err := s.config.GetSystemConfig(ctx)
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}
	if err := checkGate(cfg); err != nil {
		return SubmissionResult{}, err
	}

	total := c.Total()

	var orderNumber pgtype.Int8
	if n, ok := s.sequencer.Allocate(ctx); ok {
		orderNumber = pgtype.Int8{Int64: n, Valid: true}
	}

	paymentStatus := enum.PaymentStatusCash
	if mode == enum.PaymentModeUPI {
		paymentStatus = enum.PaymentStatusAwaiting
	}

	order, err := s.orders.CreateOrder(ctx, database.CreateOrderParams{
		OrderNumber:   orderNumber,
		Items:         itemLines(c),
		TotalPrice:    decimalToNumeric(total),
		Status:        enum.OrderStatusPending,
		PaymentStatus: paymentStatus,
	})
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("create order: %w", err)
	}

	c.Clear()

	result := SubmissionResult{Order: order}
	if mode == enum.PaymentModeUPI && cfg.UpiID != "" {
		note := "Cafe order"
		if order.OrderNumber.Valid {
			note = fmt.Sprintf("Cafe order #%d", order.OrderNumber.Int64)
		}
		result.PaymentURI = payment.IntentURI(cfg.UpiID, cfg.PayeeName, total, note, order.ID.String())
	}
	return result, nil
}

func itemLines(c *cart.Cart) []database.ItemLine {
	lines := c.Lines()
	out := make([]database.ItemLine, len(lines))
	for i, l := range lines {
		out[i] = database.ItemLine{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price.String(),
			Category: l.Category,
			VegType:  l.VegType,
		}
	}
	return out
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return pgtype.Numeric{}
	}
	return n
}
