package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	domainagg "github.com/yungbote/cart-backend/internal/domain/aggregates"
)

func TestFromAggregateStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"cart", domainagg.CartNotFound("op", "T1", "U1"), http.StatusNotFound, "Cart not found for tenant: T1 and user: U1"},
		{"item", domainagg.ItemNotFound("op", "P1"), http.StatusNotFound, "Item not found in cart with productId: P1"},
		{"conflict", domainagg.NewError(domainagg.CodeConflict, "op", "in progress", nil), http.StatusConflict, "in progress"},
		{"retryable", domainagg.Wrap(domainagg.CodeRetryable, "op", context.DeadlineExceeded), http.StatusServiceUnavailable, "The cart is busy, retry the request"},
		{"internal", domainagg.Wrap(domainagg.CodeInternal, "op", errors.New("pq: secret detail")), http.StatusInternalServerError, "An unexpected error occurred"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "An unexpected error occurred"},
	}
	for _, tc := range cases {
		got := FromAggregate(tc.err)
		if got.Status != tc.status {
			t.Fatalf("%s status: want=%d got=%d", tc.name, tc.status, got.Status)
		}
		if got.Message != tc.msg {
			t.Fatalf("%s message: want=%q got=%q", tc.name, tc.msg, got.Message)
		}
	}
}

func TestFromAggregateValidationKeepsFields(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", domainagg.FieldError("op", map[string]string{"quantity": "quantity cannot exceed 1000"}))
	got := FromAggregate(err)
	if got.Status != http.StatusBadRequest || got.Message != "Validation failed" {
		t.Fatalf("validation: status=%d message=%q", got.Status, got.Message)
	}
	if got.Fields["quantity"] != "quantity cannot exceed 1000" {
		t.Fatalf("validation fields: %+v", got.Fields)
	}
	if !errors.Is(got, err) {
		t.Fatalf("validation should wrap the cause")
	}
}

func TestFromAggregatePassesAPIErrors(t *testing.T) {
	in := Validation(map[string]string{"name": "name is required"})
	if got := FromAggregate(fmt.Errorf("x: %w", in)); got != in {
		t.Fatalf("expected passthrough")
	}
	if FromAggregate(nil) != nil {
		t.Fatalf("nil should map to nil")
	}
}
