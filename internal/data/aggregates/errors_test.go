package aggregates

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/cart-backend/internal/domain/aggregates"
	"github.com/yungbote/cart-backend/internal/domain/cart"
)

func TestMapError_Validation(t *testing.T) {
	err := MapError("op", ValidationError("bad input"))
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_Conflict(t *testing.T) {
	err := MapError("op", ConflictError("stale"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_PassthroughAggregateError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeRetryable, "op", "retry", errors.New("boom"))
	out := MapError("other", in)
	if out != in {
		t.Fatalf("expected passthrough aggregate error")
	}
}

func TestMapError_QuantityExceededCarriesField(t *testing.T) {
	err := MapError("Commerce.Cart.AddItem", fmt.Errorf("merge: %w", cart.ErrQuantityExceeded))
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code, got %q (%v)", domainagg.CodeOf(err), err)
	}
	fields := domainagg.FieldsOf(err)
	if fields["quantity"] != "quantity cannot exceed 1000" {
		t.Fatalf("quantity field: got=%q", fields["quantity"])
	}
}

func TestMapError_PostgresCodes(t *testing.T) {
	cases := []struct {
		code string
		want domainagg.ErrorCode
	}{
		{"23505", domainagg.CodeConflict},
		{"23503", domainagg.CodePreconditionFailed},
		{"40001", domainagg.CodeRetryable},
		{"40P01", domainagg.CodeRetryable},
		{"55P03", domainagg.CodeRetryable},
		{"XX000", domainagg.CodeInternal},
	}
	for _, tc := range cases {
		err := MapError("op", &pgconn.PgError{Code: tc.code, Message: "pg"})
		if !domainagg.IsCode(err, tc.want) {
			t.Fatalf("code %s: want=%s got=%s", tc.code, tc.want, domainagg.CodeOf(err))
		}
	}
}

func TestMapError_SQLiteMessages(t *testing.T) {
	if err := MapError("op", errors.New("UNIQUE constraint failed: cart_item.cart_id, cart_item.product_id")); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("unique: got=%s", domainagg.CodeOf(err))
	}
	if err := MapError("op", errors.New("database is locked")); !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("locked: got=%s", domainagg.CodeOf(err))
	}
	if err := MapError("op", errors.New("disk I/O error")); !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("other: got=%s", domainagg.CodeOf(err))
	}
}

func TestMapError_WrappedAggregateErrorIsUnwrapped(t *testing.T) {
	in := domainagg.ItemNotFound("op", "P1")
	out := MapError("other", fmt.Errorf("context: %w", in))
	if out != in {
		t.Fatalf("expected inner aggregate error, got %v", out)
	}
}
