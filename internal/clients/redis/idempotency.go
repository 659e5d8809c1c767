package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/cart-backend/internal/platform/logger"
)

const (
	pendingMarker = "pending"
	keyPrefix     = "idem:cart"
)

// IdempotencyStore records finished responses per idempotency key.
//
// Claim either acquires the key (acquired=true), or reports what is already
// there: the stored payload of a finished request, or nil while the first
// request is still in flight.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (acquired bool, stored []byte, err error)
	Complete(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

type idempotencyStore struct {
	log *logger.Logger
	rdb goredis.UniversalClient
}

func NewIdempotencyStore(log *logger.Logger, rdb goredis.UniversalClient) IdempotencyStore {
	if log == nil {
		log = logger.Nop()
	}
	return &idempotencyStore{log: log.With("client", "RedisIdempotencyStore"), rdb: rdb}
}

// IdempotencyKey scopes a client key to one cart owner.
func IdempotencyKey(tenantID, userID, key string) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, strings.TrimSpace(tenantID), strings.TrimSpace(userID), strings.TrimSpace(key))
}

func (s *idempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error) {
	if s == nil || s.rdb == nil {
		return false, nil, fmt.Errorf("redis idempotency store not initialized")
	}
	ok, err := s.rdb.SetNX(ctx, key, pendingMarker, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if ok {
		return true, nil, nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		// expired between SETNX and GET; treat as in flight and let the client retry
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	if string(raw) == pendingMarker {
		return false, nil, nil
	}
	return false, raw, nil
}

func (s *idempotencyStore) Complete(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis idempotency store not initialized")
	}
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

func (s *idempotencyStore) Release(ctx context.Context, key string) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis idempotency store not initialized")
	}
	return s.rdb.Del(ctx, key).Err()
}
