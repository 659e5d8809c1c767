package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/cart-backend/internal/platform/logger"
)

func TestIdempotencyKey(t *testing.T) {
	got := IdempotencyKey(" T1 ", "U1", "abc ")
	if got != "idem:cart:T1:U1:abc" {
		t.Fatalf("key: want=idem:cart:T1:U1:abc got=%s", got)
	}
}

func TestNewClientRequiresAddr(t *testing.T) {
	if _, err := NewClient(logger.Nop(), Config{}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
	if _, err := NewClient(nil, Config{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}

func TestIdempotencyStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	rdb, err := NewClient(logger.Nop(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewIdempotencyStore(logger.Nop(), rdb)
	ctx := context.Background()
	key := IdempotencyKey("T1", "U1", uuid.NewString())
	t.Cleanup(func() { _ = rdb.Del(ctx, key).Err() })

	acquired, stored, err := store.Claim(ctx, key, time.Minute)
	if err != nil || !acquired || stored != nil {
		t.Fatalf("first claim: acquired=%v stored=%s err=%v", acquired, stored, err)
	}
	acquired, stored, err = store.Claim(ctx, key, time.Minute)
	if err != nil || acquired || stored != nil {
		t.Fatalf("pending claim: acquired=%v stored=%s err=%v", acquired, stored, err)
	}
	if err := store.Complete(ctx, key, []byte(`{"ok":true}`), time.Minute); err != nil {
		t.Fatalf("complete: %v", err)
	}
	acquired, stored, err = store.Claim(ctx, key, time.Minute)
	if err != nil || acquired || string(stored) != `{"ok":true}` {
		t.Fatalf("replay claim: acquired=%v stored=%s err=%v", acquired, stored, err)
	}
	if err := store.Release(ctx, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := rdb.Get(ctx, key).Result(); err != goredis.Nil {
		t.Fatalf("release should delete the key, got err=%v", err)
	}
}
