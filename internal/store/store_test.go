package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory test doubles
// ---------------------------------------------------------------------------

// memBlobStore is an in-memory BlobStore.
type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (m *memBlobStore) Save(_ context.Context, partition string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[partition] = append([]byte(nil), blob...)
	return nil
}

func (m *memBlobStore) Load(_ context.Context, partition string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[partition]
	if !ok {
		return nil, ports.ErrBlobNotFound
	}
	return append([]byte(nil), b...), nil
}

// syncSink records every enqueued blob synchronously, keeping only the latest
// per partition like the real queue eventually would.
type syncSink struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newSyncSink() *syncSink {
	return &syncSink{blobs: make(map[string][]byte)}
}

func (s *syncSink) Enqueue(partition string, blob []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[partition] = append([]byte(nil), blob...)
}

func (s *syncSink) latest(partition string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobs[partition]
}

var testLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Dispatch semantics
// ---------------------------------------------------------------------------

func TestPartition_Dispatch_AppliesReducer(t *testing.T) {
	st := New(nil, testLogger)

	next, err := st.Cart.Dispatch(func(s domain.CartState) (domain.CartState, error) {
		s.Items = append(s.Items, domain.CartItem{ID: "x", UnitPrice: 9.99, Quantity: 1})
		return s, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(next.Items))
	}
	if got := st.Cart.Snapshot(); len(got.Items) != 1 {
		t.Errorf("snapshot must reflect the dispatch, got %+v", got)
	}
}

func TestPartition_Dispatch_ErrorLeavesStateUntouched(t *testing.T) {
	sink := newSyncSink()
	st := New(sink, testLogger)
	boom := errors.New("boom")

	_, _ = st.Cart.Dispatch(func(s domain.CartState) (domain.CartState, error) {
		s.Items = append(s.Items, domain.CartItem{ID: "x", Quantity: 1})
		return s, nil
	})
	before := sink.latest(PartitionCart)

	_, err := st.Cart.Dispatch(func(s domain.CartState) (domain.CartState, error) {
		s.Items = nil
		return s, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected reducer error, got %v", err)
	}
	if got := st.Cart.Snapshot(); len(got.Items) != 1 {
		t.Errorf("failed dispatch must not mutate state: %+v", got)
	}
	if string(sink.latest(PartitionCart)) != string(before) {
		t.Error("failed dispatch must not persist")
	}
}

func TestPartition_Subscribe_ObservesEveryWrite(t *testing.T) {
	st := New(nil, testLogger)

	var seen []int
	st.Cart.Subscribe(func(s domain.CartState) {
		seen = append(seen, len(s.Items))
	})

	for i := 0; i < 3; i++ {
		_, _ = st.Cart.Dispatch(func(s domain.CartState) (domain.CartState, error) {
			s.Items = append(s.Items, domain.CartItem{ID: "x", Quantity: 1})
			return s, nil
		})
	}

	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
	for i, n := range seen {
		if n != i+1 {
			t.Errorf("notification %d saw %d items, want %d", i, n, i+1)
		}
	}
}

// ---------------------------------------------------------------------------
// Allow-list projection
// ---------------------------------------------------------------------------

func TestStore_CartProjection_UsesStorageKeyNames(t *testing.T) {
	sink := newSyncSink()
	st := New(sink, testLogger)

	_, _ = st.Cart.Dispatch(func(s domain.CartState) (domain.CartState, error) {
		s.Items = []domain.CartItem{{ID: "x", UnitPrice: 10, Quantity: 2}}
		s.Promo = domain.PromoState{Code: "SAVE20", Discount: 4, Applied: true}
		return s, nil
	})

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(sink.latest(PartitionCart), &raw); err != nil {
		t.Fatalf("invalid projection json: %v", err)
	}
	for _, key := range []string{"items", "promoCode", "promoDiscount", "promoCodeApplied"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("projection missing key %q", key)
		}
	}
}

func TestStore_OnboardingProjection_ExcludesBackendAck(t *testing.T) {
	sink := newSyncSink()
	st := New(sink, testLogger)

	_, _ = st.Onboarding.Dispatch(func(s domain.OnboardingState) (domain.OnboardingState, error) {
		s.IsComplete = true
		s.IsSubmittedToBackend = true
		return s, nil
	})

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(sink.latest(PartitionOnboarding), &raw); err != nil {
		t.Fatalf("invalid projection json: %v", err)
	}
	if _, ok := raw["isComplete"]; !ok {
		t.Error("projection must carry isComplete")
	}
	for key := range raw {
		if key == "isSubmittedToBackend" || key == "is_submitted_to_backend" {
			t.Errorf("backend ack must not be persisted, found key %q", key)
		}
	}
}

// ---------------------------------------------------------------------------
// Rehydration
// ---------------------------------------------------------------------------

func TestStore_Rehydrate_RoundTrip(t *testing.T) {
	sink := newSyncSink()
	first := New(sink, testLogger)
	ctx := context.Background()

	_, _ = first.Auth.Dispatch(func(s domain.AuthState) (domain.AuthState, error) {
		s.IsAuthenticated = true
		s.HasCompletedOnboarding = true
		s.User = &domain.UserSummary{ID: "u1", Email: "ana@example.com"}
		return s, nil
	})
	_, _ = first.Cart.Dispatch(func(s domain.CartState) (domain.CartState, error) {
		s.Items = []domain.CartItem{{ID: "x", UnitPrice: 10, Quantity: 2}}
		s.Promo = domain.PromoState{Code: "SAVE20", Discount: 4, Applied: true}
		return s, nil
	})
	_, _ = first.Onboarding.Dispatch(func(s domain.OnboardingState) (domain.OnboardingState, error) {
		s.BasicInfo = domain.BasicInfo{Name: "Ana", Age: 31}
		s.HealthGoals = []string{"energy"}
		s.IsComplete = true
		s.IsSubmittedToBackend = true
		return s, nil
	})

	// Move the captured blobs into durable storage and boot a second store.
	blobs := newMemBlobStore()
	for _, name := range []string{PartitionAuth, PartitionCart, PartitionOnboarding} {
		if err := blobs.Save(ctx, name, sink.latest(name)); err != nil {
			t.Fatalf("save blob: %v", err)
		}
	}

	second := New(nil, testLogger)
	second.Rehydrate(ctx, blobs)

	auth := second.Auth.Snapshot()
	if !auth.IsAuthenticated || !auth.HasCompletedOnboarding {
		t.Errorf("auth flags lost: %+v", auth)
	}
	if auth.User == nil || auth.User.ID != "u1" {
		t.Errorf("auth user lost: %+v", auth.User)
	}

	cart := second.Cart.Snapshot()
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Errorf("cart items lost: %+v", cart.Items)
	}
	if cart.Promo.Code != "SAVE20" || cart.Promo.Discount != 4 || !cart.Promo.Applied {
		t.Errorf("promo state lost: %+v", cart.Promo)
	}

	onboarding := second.Onboarding.Snapshot()
	if !onboarding.IsComplete || onboarding.BasicInfo.Name != "Ana" {
		t.Errorf("onboarding state lost: %+v", onboarding)
	}
	if onboarding.IsSubmittedToBackend {
		t.Error("backend ack is transient and must reset to false on restore")
	}
}

func TestStore_Rehydrate_MissingBlobKeepsDefaults(t *testing.T) {
	st := New(nil, testLogger)
	st.Rehydrate(context.Background(), newMemBlobStore())

	if st.Auth.Snapshot().IsAuthenticated {
		t.Error("expected default auth state")
	}
	if len(st.Cart.Snapshot().Items) != 0 {
		t.Error("expected empty cart")
	}
}

func TestStore_Rehydrate_CorruptBlobFailsSoftPerPartition(t *testing.T) {
	ctx := context.Background()
	blobs := newMemBlobStore()

	// Cart blob is garbage; auth blob is fine.
	_ = blobs.Save(ctx, PartitionCart, []byte("{not json"))
	_ = blobs.Save(ctx, PartitionAuth, []byte(`{"isAuthenticated":true,"hasCompletedOnboarding":false,"user":null}`))

	st := New(nil, testLogger)
	st.Rehydrate(ctx, blobs)

	if len(st.Cart.Snapshot().Items) != 0 {
		t.Error("corrupt cart blob must fall back to defaults")
	}
	if !st.Auth.Snapshot().IsAuthenticated {
		t.Error("a corrupt neighbour must not block auth rehydration")
	}
}

// ---------------------------------------------------------------------------
// Persist queue
// ---------------------------------------------------------------------------

func TestPersistQueue_WritesThroughToBlobStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blobs := newMemBlobStore()
	q := NewPersistQueue(2, blobs, testLogger)
	q.Start(ctx)

	st := New(q, testLogger)
	_, _ = st.Cart.Dispatch(func(s domain.CartState) (domain.CartState, error) {
		s.Items = []domain.CartItem{{ID: "x", UnitPrice: 10, Quantity: 1}}
		return s, nil
	})

	deadline := time.After(2 * time.Second)
	for {
		if blob, err := blobs.Load(ctx, PartitionCart); err == nil {
			var v map[string]json.RawMessage
			if err := json.Unmarshal(blob, &v); err != nil {
				t.Fatalf("stored blob is not json: %v", err)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("blob never reached durable storage")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestPersistQueue_SamePartitionSameWorker(t *testing.T) {
	q := NewPersistQueue(4, newMemBlobStore(), testLogger)

	first := q.shardIndex(PartitionCart)
	for i := 0; i < 10; i++ {
		if q.shardIndex(PartitionCart) != first {
			t.Fatal("shard index must be deterministic per partition")
		}
	}
}
