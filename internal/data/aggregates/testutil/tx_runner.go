package testutil

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/cart-backend/internal/data/aggregates"
	"github.com/yungbote/cart-backend/internal/platform/dbctx"
)

var errInjectedRollback = errors.New("injected rollback")

// InjectedTxRunner fails chosen phases of a transaction. With DB set the body
// runs in a real transaction, so an injected commit failure rolls back writes
// the body already made; without DB the body sees no Tx.
type InjectedTxRunner struct {
	DB *gorm.DB

	FailBegin  error
	FailCommit error

	mu            sync.Mutex
	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.count(&r.BeginCalls)
	if r.FailBegin != nil {
		return r.FailBegin
	}
	if fn == nil {
		r.count(&r.CommitCalls)
		return nil
	}

	if r.DB == nil {
		if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
			r.count(&r.RollbackCalls)
			return err
		}
		return r.finish()
	}

	var bodyErr error
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if bodyErr = fn(dbctx.Context{Ctx: ctx, Tx: tx}); bodyErr != nil {
			return bodyErr
		}
		if r.FailCommit != nil {
			return errInjectedRollback
		}
		return nil
	})
	switch {
	case bodyErr != nil:
		r.count(&r.RollbackCalls)
		return bodyErr
	case errors.Is(txErr, errInjectedRollback):
		r.count(&r.RollbackCalls)
		return r.FailCommit
	case txErr != nil:
		r.count(&r.RollbackCalls)
		return txErr
	}
	r.count(&r.CommitCalls)
	return nil
}

func (r *InjectedTxRunner) finish() error {
	if r.FailCommit != nil {
		r.count(&r.RollbackCalls)
		return r.FailCommit
	}
	r.count(&r.CommitCalls)
	return nil
}

func (r *InjectedTxRunner) count(n *int) {
	r.mu.Lock()
	*n++
	r.mu.Unlock()
}
