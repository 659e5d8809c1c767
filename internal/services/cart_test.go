package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainagg "github.com/yungbote/cart-backend/internal/domain/aggregates"
	"github.com/yungbote/cart-backend/internal/domain/cart"
	"github.com/yungbote/cart-backend/internal/platform/ctxutil"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func ownerCtx(tenant, user string) context.Context {
	return ctxutil.WithOwner(context.Background(), &ctxutil.Owner{TenantID: tenant, UserID: user})
}

func TestCartServicePassesOwnerAndNormalizedInput(t *testing.T) {
	agg := &fakeCartAggregate{}
	svc := NewCartService(testLogger(t), agg, nil)

	out, err := svc.AddItem(ownerCtx(" T1 ", "U1"), AddItemRequest{
		ProductID: " P1 ",
		Name:      " Widget ",
		Price:     decimal.RequireFromString("10.005"),
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if out.Replayed {
		t.Fatalf("fresh add must not be a replay")
	}
	in := agg.lastAdd
	if in.Owner.TenantID != "T1" || in.Owner.UserID != "U1" {
		t.Fatalf("owner: %+v", in.Owner)
	}
	if in.ProductID != "P1" || in.Name != "Widget" {
		t.Fatalf("trimmed fields: %+v", in)
	}
	if in.Price.StringFixed(2) != "10.01" {
		t.Fatalf("price rounding: want=10.01 got=%s", in.Price.StringFixed(2))
	}
}

func TestCartServiceDelegatesReadsAndMutations(t *testing.T) {
	agg := &fakeCartAggregate{}
	svc := NewCartService(testLogger(t), agg, nil)
	ctx := ownerCtx("T1", "U1")

	if _, err := svc.GetCart(ctx); err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if _, err := svc.UpdateItemQuantity(ctx, "P1", 4); err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	if agg.lastUpdate.Quantity != 4 || agg.lastUpdate.ProductID != "P1" {
		t.Fatalf("update input: %+v", agg.lastUpdate)
	}
	if _, err := svc.RemoveItem(ctx, "P1"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := svc.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	want := []string{"get", "update", "remove", "clear"}
	if len(agg.calls) != len(want) {
		t.Fatalf("calls: want=%v got=%v", want, agg.calls)
	}
	for i := range want {
		if agg.calls[i] != want[i] {
			t.Fatalf("calls: want=%v got=%v", want, agg.calls)
		}
	}
}

func TestCartServiceWithoutOwnerLeavesValidationToAggregate(t *testing.T) {
	agg := &fakeCartAggregate{}
	svc := NewCartService(testLogger(t), agg, nil)
	if _, err := svc.GetCart(context.Background()); err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if agg.lastOwner != (domainagg.Owner{}) {
		t.Fatalf("owner should be empty, got %+v", agg.lastOwner)
	}
}

func TestIdempotentAddReplaysStoredView(t *testing.T) {
	agg := &fakeCartAggregate{}
	store := newMemoryStore()
	svc := NewCartService(testLogger(t), agg, NewIdempotency(testLogger(t), store, time.Minute))
	ctx := ownerCtx("T1", "U1")
	req := AddItemRequest{ProductID: "P1", Name: "Widget", Price: decimal.NewFromInt(10), Quantity: 2, IdempotencyKey: "k1"}

	first, err := svc.AddItem(ctx, req)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := svc.AddItem(ctx, req)
	if err != nil {
		t.Fatalf("replayed add: %v", err)
	}
	if !second.Replayed {
		t.Fatalf("second add should be a replay")
	}
	if agg.addCalls != 1 {
		t.Fatalf("aggregate add calls: want=1 got=%d", agg.addCalls)
	}
	if second.View.CartID != first.View.CartID || !second.View.TotalAmount.Equal(first.View.TotalAmount.Decimal) {
		t.Fatalf("replayed view differs: first=%+v second=%+v", first.View, second.View)
	}

	other := ownerCtx("T1", "U2")
	if _, err := svc.AddItem(other, req); err != nil {
		t.Fatalf("same key other user: %v", err)
	}
	if agg.addCalls != 2 {
		t.Fatalf("keys must be scoped per owner: add calls=%d", agg.addCalls)
	}
}

func TestIdempotentAddInFlightConflicts(t *testing.T) {
	store := newMemoryStore()
	idem := NewIdempotency(testLogger(t), store, time.Minute)
	owner := domainagg.Owner{TenantID: "T1", UserID: "U1"}

	release := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = idem.Do(context.Background(), owner, "k1", func() (AddItemOutcome, error) {
			close(started)
			<-release
			return AddItemOutcome{}, nil
		})
	}()
	<-started

	_, err := idem.Do(context.Background(), owner, "k1", func() (AddItemOutcome, error) {
		t.Fatalf("second call must not run while the first is in flight")
		return AddItemOutcome{}, nil
	})
	close(release)
	wg.Wait()
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("in-flight replay: want conflict got %v", err)
	}
}

func TestIdempotentAddReleasesKeyOnFailure(t *testing.T) {
	store := newMemoryStore()
	idem := NewIdempotency(testLogger(t), store, time.Minute)
	owner := domainagg.Owner{TenantID: "T1", UserID: "U1"}
	boom := errors.New("boom")

	if _, err := idem.Do(context.Background(), owner, "k1", func() (AddItemOutcome, error) {
		return AddItemOutcome{}, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("want boom got %v", err)
	}
	ran := false
	if _, err := idem.Do(context.Background(), owner, "k1", func() (AddItemOutcome, error) {
		ran = true
		return AddItemOutcome{}, nil
	}); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if !ran {
		t.Fatalf("a failed attempt must not be replayed")
	}
}

func TestIdempotencyFallsBackWhenStoreFails(t *testing.T) {
	store := newMemoryStore()
	store.claimErr = errors.New("connection refused")
	idem := NewIdempotency(testLogger(t), store, time.Minute)
	owner := domainagg.Owner{TenantID: "T1", UserID: "U1"}

	calls := 0
	for i := 0; i < 2; i++ {
		if _, err := idem.Do(context.Background(), owner, "k1", func() (AddItemOutcome, error) {
			calls++
			return AddItemOutcome{}, nil
		}); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("store failure should run every call: calls=%d", calls)
	}
}

func TestIdempotencyRejectsOversizedKey(t *testing.T) {
	idem := NewIdempotency(testLogger(t), newMemoryStore(), time.Minute)
	key := make([]byte, 256)
	for i := range key {
		key[i] = 'k'
	}
	_, err := idem.Do(context.Background(), domainagg.Owner{TenantID: "T1", UserID: "U1"}, string(key), func() (AddItemOutcome, error) {
		t.Fatalf("must not run")
		return AddItemOutcome{}, nil
	})
	if domainagg.FieldsOf(err)["idempotencyKey"] == "" {
		t.Fatalf("want idempotencyKey field error, got %v", err)
	}
}

type fakeCartAggregate struct {
	mu         sync.Mutex
	calls      []string
	addCalls   int
	lastOwner  domainagg.Owner
	lastAdd    domainagg.AddItemInput
	lastUpdate domainagg.UpdateItemQuantityInput
	cartID     uuid.UUID
}

func (f *fakeCartAggregate) record(call string, owner domainagg.Owner) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.lastOwner = owner
	if f.cartID == uuid.Nil {
		f.cartID = uuid.New()
	}
}

func (f *fakeCartAggregate) view(owner domainagg.Owner, total decimal.Decimal) cart.View {
	return cart.View{
		CartID:      f.cartID,
		TenantID:    owner.TenantID,
		UserID:      owner.UserID,
		Items:       []cart.ItemView{},
		TotalAmount: cart.NewAmount(total),
		Currency:    cart.DefaultCurrency,
	}
}

func (f *fakeCartAggregate) Contract() domainagg.Contract { return domainagg.CartAggregateContract }

func (f *fakeCartAggregate) Get(_ context.Context, owner domainagg.Owner) (cart.View, error) {
	f.record("get", owner)
	return f.view(owner, decimal.Zero), nil
}

func (f *fakeCartAggregate) AddItem(_ context.Context, in domainagg.AddItemInput) (domainagg.AddItemResult, error) {
	f.record("add", in.Owner)
	f.mu.Lock()
	f.addCalls++
	f.lastAdd = in
	f.mu.Unlock()
	total := in.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
	return domainagg.AddItemResult{View: f.view(in.Owner, total), Action: cart.ActionCreate, CartCreated: true}, nil
}

func (f *fakeCartAggregate) UpdateItemQuantity(_ context.Context, in domainagg.UpdateItemQuantityInput) (cart.View, error) {
	f.record("update", in.Owner)
	f.lastUpdate = in
	return f.view(in.Owner, decimal.Zero), nil
}

func (f *fakeCartAggregate) RemoveItem(_ context.Context, in domainagg.RemoveItemInput) (cart.View, error) {
	f.record("remove", in.Owner)
	return f.view(in.Owner, decimal.Zero), nil
}

func (f *fakeCartAggregate) Clear(_ context.Context, owner domainagg.Owner) (domainagg.ClearResult, error) {
	f.record("clear", owner)
	return domainagg.ClearResult{CartID: f.cartID.String(), ItemsCleared: 1}, nil
}

type memoryStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	claimErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}}
}

func (m *memoryStore) Claim(_ context.Context, key string, _ time.Duration) (bool, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimErr != nil {
		return false, nil, m.claimErr
	}
	v, ok := m.values[key]
	if !ok {
		m.values[key] = nil
		return true, nil, nil
	}
	return false, v, nil
}

func (m *memoryStore) Complete(_ context.Context, key string, payload []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = payload
	return nil
}

func (m *memoryStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
