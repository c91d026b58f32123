package service

import (
	"fmt"

	"github.com/elysian-cafe/api/internal/enum"
)

// allowedTransitions maps each order status to the statuses it may move to.
// Served and cancelled are terminal.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPending:   {enum.OrderStatusServed, enum.OrderStatusCancelled},
	enum.OrderStatusServed:    {},
	enum.OrderStatusCancelled: {},
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// ValidateStatusTransition checks that moving an order from current to next
// is allowed. Self transitions are rejected along with everything else not
// in the allowed set.
func ValidateStatusTransition(current, next string) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("unknown order status %q", current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("cannot transition order from %q to %q", current, next)
}
