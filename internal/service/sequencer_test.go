package service

import (
	"context"
	"errors"
	"testing"
)

type mockCounterStore struct {
	nextFn func(ctx context.Context) (int64, error)
}

func (m *mockCounterStore) NextOrderNumber(ctx context.Context) (int64, error) {
	return m.nextFn(ctx)
}

func TestAllocateSequential(t *testing.T) {
	var counter int64
	seq := NewOrderSequencer(&mockCounterStore{
		nextFn: func(ctx context.Context) (int64, error) {
			counter++
			return counter, nil
		},
	})

	n, ok := seq.Allocate(context.Background())
	if !ok || n != 1 {
		t.Errorf("first allocation: got %d, %v, want 1, true", n, ok)
	}
	n, ok = seq.Allocate(context.Background())
	if !ok || n != 2 {
		t.Errorf("second allocation: got %d, %v, want 2, true", n, ok)
	}
}

func TestAllocateCounterFailure(t *testing.T) {
	seq := NewOrderSequencer(&mockCounterStore{
		nextFn: func(ctx context.Context) (int64, error) {
			return 0, errors.New("connection refused")
		},
	})

	n, ok := seq.Allocate(context.Background())
	if ok {
		t.Error("allocation should report failure")
	}
	if n != 0 {
		t.Errorf("failed allocation number: got %d, want 0", n)
	}
}
