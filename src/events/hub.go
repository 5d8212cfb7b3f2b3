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

// go/src/events/hub.go
package events

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventType identifies the kind of registry notification.
type EventType string

// Registry event types.
const (
	EventLaunched            EventType = "Launched"
	EventUpgradedToSovereign EventType = "UpgradedToSovereign"
	EventMetadataUpdated     EventType = "MetadataUpdated"
)

// Event is a registry notification addressed to external subscribers.
// Owner and MetadataURI are only set for the event types that carry them.
type Event struct {
	Type        EventType `json:"type"`
	ID          uint64    `json:"id"`
	Owner       string    `json:"owner,omitempty"`
	MetadataURI string    `json:"metadata_uri,omitempty"`
	Timestamp   int64     `json:"timestamp"`
}

// Hub fans registry events out to subscriber channels. Publishing never
// blocks the registry: a subscriber that cannot keep up has events
// dropped on its channel, with a warning logged.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan Event
	nextID uint64
	closed bool
	logger *zap.Logger
}

// NewHub creates an event hub. A nil logger is replaced with a no-op one.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[uint64]chan Event),
		logger: logger,
	}
}

// Subscribe registers a new subscriber with the given channel buffer and
// returns the event channel plus a cancel function. Cancelling closes the
// channel and removes the subscription.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber. Events are stamped with
// the current time if the caller left Timestamp zero.
func (h *Hub) Publish(ev Event) {
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}

	h.logger.Info("publishing registry event",
		zap.String("type", string(ev.Type)),
		zap.Uint64("id", ev.ID),
	)

	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.logger.Warn("subscriber channel full, dropping event",
				zap.Uint64("subscriber", id),
				zap.String("type", string(ev.Type)),
				zap.Uint64("id", ev.ID),
			)
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close shuts the hub down and closes every subscriber channel. Publish
// calls after Close are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
