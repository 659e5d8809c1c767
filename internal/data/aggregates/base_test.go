package aggregates

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/cart-backend/internal/domain/aggregates"
	"github.com/yungbote/cart-backend/internal/platform/dbctx"
)

func TestExecuteWriteStatusesAndCounters(t *testing.T) {
	cases := []struct {
		name      string
		bodyErr   error
		wantCode  domainagg.ErrorCode
		status    string
		conflicts int
		retries   int
	}{
		{name: "success", status: "success"},
		{name: "validation", bodyErr: ValidationError("bad input"), wantCode: domainagg.CodeValidation, status: "validation"},
		{name: "not found", bodyErr: gorm.ErrRecordNotFound, wantCode: domainagg.CodeNotFound, status: "not_found"},
		{name: "cart not found", bodyErr: domainagg.CartNotFound("op", "T1", "U1"), wantCode: domainagg.CodeNotFound, status: "not_found"},
		{name: "conflict", bodyErr: ConflictError("duplicate"), wantCode: domainagg.CodeConflict, status: "conflict", conflicts: 1},
		{name: "retryable", bodyErr: RetryableError("lock timeout"), wantCode: domainagg.CodeRetryable, status: "retryable", retries: 1},
		{name: "deadline", bodyErr: context.DeadlineExceeded, wantCode: domainagg.CodeRetryable, status: "retryable", retries: 1},
		{name: "internal", bodyErr: errors.New("disk I/O error"), wantCode: domainagg.CodeInternal, status: "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hooks := &spyHooks{}
			err := executeWrite(context.Background(), BaseDeps{Runner: spyTxRunner{}, Hooks: hooks}, "cart.test", func(dbctx.Context) error {
				return tc.bodyErr
			})
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("executeWrite: %v", err)
				}
			} else if !domainagg.IsCode(err, tc.wantCode) {
				t.Fatalf("code: want=%s got=%v", tc.wantCode, err)
			}
			if len(hooks.Operations) != 1 || hooks.Operations[0].Name != "cart.test" {
				t.Fatalf("operations: %+v", hooks.Operations)
			}
			if got := hooks.Operations[0].Status; got != tc.status {
				t.Fatalf("status: want=%s got=%s", tc.status, got)
			}
			if len(hooks.Conflicts) != tc.conflicts {
				t.Fatalf("conflicts: want=%d got=%v", tc.conflicts, hooks.Conflicts)
			}
			if len(hooks.Retries) != tc.retries {
				t.Fatalf("retries: want=%d got=%v", tc.retries, hooks.Retries)
			}
		})
	}
}

func TestExecuteFallbackNames(t *testing.T) {
	hooks := &spyHooks{}
	deps := BaseDeps{Runner: spyTxRunner{}, Hooks: hooks}
	noop := func(dbctx.Context) error { return nil }
	if err := executeRead(context.Background(), deps, "  ", noop); err != nil {
		t.Fatalf("executeRead: %v", err)
	}
	if err := executeWrite(context.Background(), deps, "", noop); err != nil {
		t.Fatalf("executeWrite: %v", err)
	}
	if len(hooks.Operations) != 2 || hooks.Operations[0].Name != "aggregate.read" || hooks.Operations[1].Name != "aggregate.write" {
		t.Fatalf("names: %+v", hooks.Operations)
	}
}

func TestExecuteRecordsSpanStatus(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	deps := BaseDeps{Runner: spyTxRunner{}}
	_ = executeWrite(context.Background(), deps, domainagg.OpCartRemoveItem, func(dbctx.Context) error {
		return domainagg.ItemNotFound(domainagg.OpCartRemoveItem, "P1")
	})

	var found bool
	for _, s := range rec.Ended() {
		if s.Name() != domainagg.OpCartRemoveItem {
			continue
		}
		found = true
		if s.Status().Code != codes.Error || s.Status().Description != "not_found" {
			t.Fatalf("span status: %+v", s.Status())
		}
	}
	if !found {
		t.Fatalf("no span recorded for %s", domainagg.OpCartRemoveItem)
	}
}

func TestAggregateErrorStatus(t *testing.T) {
	if got := aggregateErrorStatus(nil); got != "success" {
		t.Fatalf("nil status: want=success got=%s", got)
	}
	if got := aggregateErrorStatus(errors.New("deadlock detected")); got != string(domainagg.CodeRetryable) {
		t.Fatalf("raw deadlock: want=retryable got=%s", got)
	}
}

type spyTxRunner struct{}

func (spyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(dbctx.Context{Ctx: ctx})
}

type spyHooks struct {
	Operations []spyOperation
	Conflicts  []string
	Retries    []string
	Actions    []string
}

type spyOperation struct {
	Name   string
	Status string
}

func (h *spyHooks) ObserveOperation(name, status string, _ time.Duration) {
	h.Operations = append(h.Operations, spyOperation{Name: name, Status: status})
}

func (h *spyHooks) IncConflict(name string) { h.Conflicts = append(h.Conflicts, name) }
func (h *spyHooks) IncRetry(name string)    { h.Retries = append(h.Retries, name) }

func (h *spyHooks) ObserveItemAction(op, action string) {
	h.Actions = append(h.Actions, op+":"+action)
}
