package services

import (
	"context"
	"encoding/json"
	"time"

	redisclient "github.com/yungbote/cart-backend/internal/clients/redis"
	domainagg "github.com/yungbote/cart-backend/internal/domain/aggregates"
	"github.com/yungbote/cart-backend/internal/domain/cart"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

const (
	DefaultIdempotencyTTL = 24 * time.Hour
	maxIdempotencyKeyLen  = 255
)

// Idempotency runs an add at most once per (owner, key) and replays its view.
type Idempotency interface {
	Do(ctx context.Context, owner domainagg.Owner, key string, fn func() (AddItemOutcome, error)) (AddItemOutcome, error)
}

type idempotency struct {
	log   *logger.Logger
	store redisclient.IdempotencyStore
	ttl   time.Duration
}

func NewIdempotency(baseLog *logger.Logger, store redisclient.IdempotencyStore, ttl time.Duration) Idempotency {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &idempotency{
		log:   baseLog.With("service", "Idempotency"),
		store: store,
		ttl:   ttl,
	}
}

func (i *idempotency) Do(ctx context.Context, owner domainagg.Owner, key string, fn func() (AddItemOutcome, error)) (AddItemOutcome, error) {
	const op = domainagg.OpCartAddItem
	if owner.TenantID == "" || owner.UserID == "" || i.store == nil {
		return fn()
	}
	if len(key) > maxIdempotencyKeyLen {
		return AddItemOutcome{}, domainagg.FieldError(op, map[string]string{
			"idempotencyKey": "Idempotency-Key must be at most 255 characters",
		})
	}

	rkey := redisclient.IdempotencyKey(owner.TenantID, owner.UserID, key)
	acquired, stored, err := i.store.Claim(ctx, rkey, i.ttl)
	if err != nil {
		i.log.Warn("idempotency store unavailable; running without it", "idempotency_key", key, "error", err)
		return fn()
	}
	if !acquired {
		if stored == nil {
			return AddItemOutcome{}, domainagg.NewError(domainagg.CodeConflict, op,
				"A request with this Idempotency-Key is already in progress", nil)
		}
		var view cart.View
		if err := json.Unmarshal(stored, &view); err != nil {
			return AddItemOutcome{}, domainagg.Wrap(domainagg.CodeInternal, op, err)
		}
		i.log.Debug("idempotent replay", "idempotency_key", key, "user_id", owner.UserID)
		return AddItemOutcome{View: view, Replayed: true}, nil
	}

	out, err := fn()
	bg := context.WithoutCancel(ctx)
	if err != nil {
		if relErr := i.store.Release(bg, rkey); relErr != nil {
			i.log.Warn("idempotency release failed", "idempotency_key", key, "error", relErr)
		}
		return out, err
	}
	raw, err := json.Marshal(out.View)
	if err == nil {
		err = i.store.Complete(bg, rkey, raw, i.ttl)
	}
	if err != nil {
		i.log.Warn("idempotency record not stored", "idempotency_key", key, "error", err)
		_ = i.store.Release(bg, rkey)
	}
	return out, nil
}
