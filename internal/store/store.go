// Package store implements the partitioned application state container.
//
// Each partition holds an independent state slice (auth, cart, onboarding)
// mutated only through pure reducers. After every successful write the
// partition's allow-listed projection is serialized and handed to the persist
// queue; at startup Rehydrate merges the stored blob back over the defaults.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/supfront/commerce-system/internal/core/ports"
)

// Partition names double as durable-storage keys.
const (
	PartitionAuth       = "auth"
	PartitionCart       = "cart"
	PartitionOnboarding = "onboarding"
)

// Reducer is a pure state transition. Returning an error leaves the partition
// untouched: nothing is persisted and no subscriber fires.
type Reducer[S any] func(S) (S, error)

// Sink receives allow-listed projections for durable storage. Enqueue must not
// block the dispatching caller beyond channel backpressure.
type Sink interface {
	Enqueue(partition string, blob []byte)
}

// Partition is one independently persisted state slice.
//
// Reducers must treat the state as immutable: copy slices and maps before
// changing them. Subscribers run synchronously on the dispatching goroutine
// and must not dispatch back into the store.
type Partition[S any] struct {
	name    string
	project func(S) any
	restore func(def S, blob []byte) (S, error)
	sink    Sink
	log     zerolog.Logger

	mu    sync.RWMutex
	state S
	def   S
	subs  []func(S)
}

// NewPartition builds a partition with its default state and allow-list
// projection/restore pair. sink may be nil for a purely in-memory partition.
func NewPartition[S any](name string, def S, project func(S) any, restore func(S, []byte) (S, error), sink Sink, log zerolog.Logger) *Partition[S] {
	return &Partition[S]{
		name:    name,
		project: project,
		restore: restore,
		sink:    sink,
		log:     log,
		state:   def,
		def:     def,
	}
}

// Name returns the partition's durable-storage key.
func (p *Partition[S]) Name() string { return p.name }

// Snapshot returns the current in-memory state. It never blocks on persistence.
func (p *Partition[S]) Snapshot() S {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Dispatch applies the reducer to the current state. On success the new
// snapshot replaces the old one, every subscriber observes it synchronously,
// and the allow-listed projection is enqueued for persistence. On error the
// state is unchanged and the error is returned as-is.
func (p *Partition[S]) Dispatch(r Reducer[S]) (S, error) {
	p.mu.Lock()
	next, err := r(p.state)
	if err != nil {
		p.mu.Unlock()
		return p.state, err
	}
	p.state = next
	subs := p.subs
	p.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}

	p.persist(next)
	return next, nil
}

// Subscribe registers fn to observe every successful write. No event is
// dropped once registered.
func (p *Partition[S]) Subscribe(fn func(S)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

// Rehydrate loads the partition's durable blob and merges it over the default
// state. It fails soft: a missing or unreadable blob leaves the defaults in
// place and never returns an error to the caller.
func (p *Partition[S]) Rehydrate(ctx context.Context, blobs ports.BlobStore) {
	raw, err := blobs.Load(ctx, p.name)
	if err != nil {
		if !errors.Is(err, ports.ErrBlobNotFound) {
			p.log.Warn().Err(err).Str("partition", p.name).Msg("rehydration load failed, using defaults")
		}
		return
	}

	restored, err := p.restore(p.def, raw)
	if err != nil {
		p.log.Warn().Err(err).Str("partition", p.name).Msg("corrupt partition blob, using defaults")
		return
	}

	p.mu.Lock()
	p.state = restored
	p.mu.Unlock()

	p.log.Debug().Str("partition", p.name).Msg("partition rehydrated")
}

func (p *Partition[S]) persist(state S) {
	if p.sink == nil {
		return
	}
	blob, err := json.Marshal(p.project(state))
	if err != nil {
		// Projections are plain structs; this only fires on programmer error.
		p.log.Error().Err(err).Str("partition", p.name).Msg("projection marshal failed")
		return
	}
	p.sink.Enqueue(p.name, blob)
}

// unmarshalView is shared by the restore functions: it decodes the blob over a
// pre-populated view so fields missing from storage keep their defaults.
func unmarshalView(blob []byte, view any) error {
	if err := json.Unmarshal(blob, view); err != nil {
		return fmt.Errorf("decode partition blob: %w", err)
	}
	return nil
}
