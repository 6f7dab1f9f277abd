package state

import (
	"sync"

	"quimiview/internal/elements"
)

// Holder is the single shared slot for the most recently resolved
// element. The dispatcher writes it, the presentation layer reads it;
// last write wins and readers must tolerate an absent value.
type Holder struct {
	mu      sync.RWMutex
	current *elements.Record
}

// NewHolder returns an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Set replaces the current element.
func (h *Holder) Set(rec *elements.Record) {
	h.mu.Lock()
	h.current = rec
	h.mu.Unlock()
}

// Clear empties the slot.
func (h *Holder) Clear() {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()
}

// Get returns the current element, if any.
func (h *Holder) Get() (*elements.Record, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, h.current != nil
}
