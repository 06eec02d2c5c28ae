// Package bus provides the process-wide publish/subscribe channel for
// record lifecycle events.
//
// Publishing is a synchronous multicast: handlers run inline, in
// subscription order, on the publisher's goroutine. Each handler
// invocation is individually recovered, so a panicking subscriber can
// neither suppress the remaining subscribers nor unwind the publisher.
package bus

import (
	"log/slog"
	"sync"

	"github.com/recbook/recbook/internal/record"
)

// Kind identifies a record lifecycle event.
type Kind string

const (
	KindAdd    Kind = "add"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Event carries the normalized record affected by a mutation.
type Event struct {
	Kind   Kind
	Record record.Public
}

// Handler consumes a single event. Handlers must not assume they run on
// any particular goroutine; they run inline with the publisher.
type Handler func(Event)

// Bus is a synchronous multicast event bus.
//
// Thread-safety: Subscribe and Publish are safe for concurrent use,
// though the single-writer shell means publishes never overlap in
// practice.
type Bus struct {
	mu   sync.RWMutex
	subs map[Kind][]Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[Kind][]Handler)}
}

// Subscribe registers a handler for one event kind.
// Multiple independent handlers may register per kind.
func (b *Bus) Subscribe(k Kind, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[k] = append(b.subs[k], h)
}

// Publish delivers an event to every handler registered for its kind.
//
// Publish never fails and never blocks beyond the handlers' own run
// time. A handler panic is recovered and logged; delivery continues
// with the next handler.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := b.subs[e.Kind]
	b.mu.RUnlock()

	for _, h := range handlers {
		deliver(h, e)
	}
}

// deliver invokes one handler with panic isolation.
func deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("event subscriber panicked", "kind", string(e.Kind), "panic", r)
		}
	}()
	h(e)
}
