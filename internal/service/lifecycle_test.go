package service

import (
	"testing"

	"github.com/elysian-cafe/api/internal/enum"
)

func TestValidateStatusTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		wantErr bool
	}{
		{"pending to served", enum.OrderStatusPending, enum.OrderStatusServed, false},
		{"pending to cancelled", enum.OrderStatusPending, enum.OrderStatusCancelled, false},
		{"served is terminal", enum.OrderStatusServed, enum.OrderStatusCancelled, true},
		{"cancelled is terminal", enum.OrderStatusCancelled, enum.OrderStatusServed, true},
		{"no self transition", enum.OrderStatusPending, enum.OrderStatusPending, true},
		{"no resurrection", enum.OrderStatusCancelled, enum.OrderStatusPending, true},
		{"unknown current", "preparing", enum.OrderStatusServed, true},
		{"unknown next", enum.OrderStatusPending, "archived", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatusTransition(tt.current, tt.next)
			if (err != nil) != tt.wantErr {
				t.Errorf("got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range []string{enum.OrderStatusPending, enum.OrderStatusServed, enum.OrderStatusCancelled} {
		if !IsValidOrderStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []string{"", "PENDING", "preparing", "done"} {
		if IsValidOrderStatus(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}
