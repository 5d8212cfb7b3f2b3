// MIT License
//
// Copyright (c) 2025 vl1-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/core/registry/registry.go
package registry

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/vl1-core/go/src/core/l1"
	"github.com/vl1-core/go/src/events"
	"github.com/vl1-core/go/src/state"
)

// Registry is the Virtual L1 record store. It owns the global id counter
// and the id index; all access goes through the operations below, which
// preserve the invariants: ids are assigned sequentially starting at 1
// and never reused, records are never deleted, owner and launch time are
// fixed at creation, and the sovereign flag only ever goes false to true.
//
// A single mutex serializes mutations. Records are independent and each
// update touches one record, so no finer-grained locking is needed.
type Registry struct {
	mu      sync.RWMutex
	counter uint64
	records *orderedmap.OrderedMap[uint64, *l1.LaunchRecord]
	store   *state.Storage // nil means in-memory only (tests)
	hub     *events.Hub    // nil means no notifications
}

// New creates a registry backed by the given storage and event hub.
// Both may be nil. With storage, the counter and every record are
// restored before the registry serves its first call.
func New(store *state.Storage, hub *events.Hub) (*Registry, error) {
	r := &Registry{
		records: orderedmap.NewOrderedMap[uint64, *l1.LaunchRecord](),
		store:   store,
		hub:     hub,
	}

	if store != nil {
		counter, err := store.Counter()
		if err != nil {
			return nil, fmt.Errorf("failed to restore counter: %w", err)
		}
		r.counter = counter

		if err := store.Restore(func(rec *l1.LaunchRecord) error {
			r.records.Set(rec.ID, rec)
			return nil
		}); err != nil {
			return nil, fmt.Errorf("failed to restore records: %w", err)
		}

		if uint64(r.records.Len()) != r.counter {
			return nil, fmt.Errorf("restore mismatch: counter=%d, records=%d",
				r.counter, r.records.Len())
		}
	}

	log.Printf("Registry initialized: totalL1s=%d", r.counter)
	return r, nil
}

// Launch creates a new Virtual L1 record owned by caller and returns its
// id. The id is the incremented global counter; the record is persisted
// before any in-memory state changes, so a storage failure leaves the
// registry exactly as it was.
func (r *Registry) Launch(metadataURI, caller string) (uint64, error) {
	if metadataURI == "" {
		return 0, l1.ErrInvalidMetadata
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.counter + 1
	rec := &l1.LaunchRecord{
		ID:          id,
		Owner:       caller,
		MetadataURI: metadataURI,
		LaunchedAt:  time.Now().Unix(),
		Sovereign:   false,
	}

	if r.store != nil {
		if err := r.store.SaveRecord(rec, id); err != nil {
			return 0, fmt.Errorf("failed to persist launch record %d: %w", id, err)
		}
	}

	r.counter = id
	r.records.Set(id, rec)

	log.Printf("Launched Virtual L1: id=%d, owner=%s, metadataURI=%s", id, caller, metadataURI)
	r.publish(events.Event{
		Type:        events.EventLaunched,
		ID:          id,
		Owner:       caller,
		MetadataURI: metadataURI,
	})
	return id, nil
}

// GoSovereign flips the record's sovereign flag to true. Only the owner
// may do this. The call is idempotent: re-invoking on an already
// sovereign record changes nothing but still emits the notification, as
// the upgrade succeeded from the caller's point of view.
func (r *Registry) GoSovereign(id uint64, caller string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records.Get(id)
	if !ok {
		return l1.ErrL1NotFound
	}
	if rec.Owner != caller {
		return l1.ErrNotOwner
	}

	if !rec.Sovereign {
		updated := *rec
		updated.Sovereign = true
		if r.store != nil {
			if err := r.store.SaveRecord(&updated, r.counter); err != nil {
				return fmt.Errorf("failed to persist sovereign upgrade for %d: %w", id, err)
			}
		}
		rec.Sovereign = true
		log.Printf("Virtual L1 upgraded to sovereign: id=%d", id)
	}

	r.publish(events.Event{Type: events.EventUpgradedToSovereign, ID: id})
	return nil
}

// UpdateMetadata replaces the record's metadata URI. Only the owner may
// do this, and the new URI must be non-empty.
func (r *Registry) UpdateMetadata(id uint64, newURI, caller string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records.Get(id)
	if !ok {
		return l1.ErrL1NotFound
	}
	if rec.Owner != caller {
		return l1.ErrNotOwner
	}
	if newURI == "" {
		return l1.ErrInvalidMetadata
	}

	updated := *rec
	updated.MetadataURI = newURI
	if r.store != nil {
		if err := r.store.SaveRecord(&updated, r.counter); err != nil {
			return fmt.Errorf("failed to persist metadata update for %d: %w", id, err)
		}
	}
	rec.MetadataURI = newURI

	log.Printf("Virtual L1 metadata updated: id=%d, metadataURI=%s", id, newURI)
	r.publish(events.Event{Type: events.EventMetadataUpdated, ID: id, MetadataURI: newURI})
	return nil
}

// Get returns a read-only snapshot of a record.
func (r *Registry) Get(id uint64) (l1.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records.Get(id)
	if !ok {
		return l1.Snapshot{}, l1.ErrL1NotFound
	}
	return rec.Snapshot(), nil
}

// Total returns the number of records ever created, which is also the
// highest assigned id.
func (r *Registry) Total() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.counter
}

// List returns snapshots of every record in id order.
func (r *Registry) List() []l1.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]l1.Snapshot, 0, r.records.Len())
	for el := r.records.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.Snapshot())
	}
	return out
}

// publish emits an event if a hub is attached.
func (r *Registry) publish(ev events.Event) {
	if r.hub != nil {
		r.hub.Publish(ev)
	}
}
