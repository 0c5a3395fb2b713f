// Package event provides a small listener registry with persistent and
// one-shot listeners, used for viewport notifications.
package event

import "sync"

type listener[T any] struct {
	id   uint64
	fn   func(T)
	once bool
}

// Hub fans an event out to its listeners synchronously, in registration order.
type Hub[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []*listener[T]
}

// AddListener registers fn for every emission. The returned func removes it.
func (h *Hub[T]) AddListener(fn func(T)) func() {
	return h.add(fn, false)
}

// AddOnce registers fn for the next emission only. The returned func removes
// it if it has not fired yet.
func (h *Hub[T]) AddOnce(fn func(T)) func() {
	return h.add(fn, true)
}

func (h *Hub[T]) add(fn func(T), once bool) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.listeners = append(h.listeners, &listener[T]{id: id, fn: fn, once: once})
	return func() { h.remove(id) }
}

func (h *Hub[T]) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, l := range h.listeners {
		if l.id == id {
			h.listeners = append(h.listeners[:i:i], h.listeners[i+1:]...)
			return
		}
	}
}

// Emit calls every listener with v. One-shot listeners are detached before
// any listener runs, so a re-entrant Emit never fires them twice.
func (h *Hub[T]) Emit(v T) {
	h.mu.Lock()
	fire := make([]*listener[T], len(h.listeners))
	copy(fire, h.listeners)
	kept := h.listeners[:0:0]
	for _, l := range h.listeners {
		if !l.once {
			kept = append(kept, l)
		}
	}
	h.listeners = kept
	h.mu.Unlock()

	for _, l := range fire {
		l.fn(v)
	}
}

// Len reports the number of registered listeners.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}
