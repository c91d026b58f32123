package service

import (
	"context"
	"log"
)

// CounterStore is satisfied by *database.Queries. Narrow interface for
// testability.
type CounterStore interface {
	NextOrderNumber(ctx context.Context) (int64, error)
}

// OrderSequencer hands out sequential order numbers. Allocation is best
// effort: if the counter cannot be bumped the order still goes through,
// just without a number.
type OrderSequencer struct {
	store CounterStore
}

func NewOrderSequencer(store CounterStore) *OrderSequencer {
	return &OrderSequencer{store: store}
}

// Allocate returns the next order number and true, or 0 and false when the
// counter is unavailable. Failures are logged, never propagated.
func (s *OrderSequencer) Allocate(ctx context.Context) (int64, bool) {
	n, err := s.store.NextOrderNumber(ctx)
	if err != nil {
		log.Printf("ERROR: allocate order number: %v", err)
		return 0, false
	}
	return n, true
}
