package services

import (
	"sync"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

// DefaultHistorySize bounds the search history cache.
const DefaultHistorySize = 20

// SearchHistory is a bounded most-recent-first cache of past successful
// searches, keyed by exact title.
type SearchHistory struct {
	mu       sync.Mutex
	max      int
	entries  []domain.CatalogEntry
	onChange func([]domain.CatalogEntry)
}

func NewSearchHistory(max int) *SearchHistory {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &SearchHistory{max: max}
}

// OnChange registers a hook invoked with a copy of the entries after every
// mutation. The hook runs after the lock is released, so it may read other
// stores.
func (h *SearchHistory) OnChange(fn func([]domain.CatalogEntry)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = fn
}

// Record inserts the entry at the front. An existing entry with the same
// title moves to the front instead of duplicating; the oldest entries are
// evicted once the bound is exceeded.
func (h *SearchHistory) Record(entry domain.CatalogEntry) {
	h.mu.Lock()
	h.removeLocked(entry.Title)
	h.entries = append([]domain.CatalogEntry{entry}, h.entries...)
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
	fire := h.hookLocked()
	h.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// Remove deletes the first entry whose title matches. Absent titles are a
// no-op.
func (h *SearchHistory) Remove(title string) {
	h.mu.Lock()
	var fire func()
	if h.removeLocked(title) {
		fire = h.hookLocked()
	}
	h.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// List returns the entries most-recent-first.
func (h *SearchHistory) List() []domain.CatalogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]domain.CatalogEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Replace swaps in entries from a restored snapshot, trimming to the bound.
func (h *SearchHistory) Replace(entries []domain.CatalogEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = make([]domain.CatalogEntry, 0, len(entries))
	h.entries = append(h.entries, entries...)
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
}

func (h *SearchHistory) removeLocked(title string) bool {
	for i, e := range h.entries {
		if e.Title == title {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

// hookLocked captures the registered hook and an entries copy while the lock
// is held. The caller invokes the returned closure after unlocking, so a hook
// that reads another lock-guarded store cannot deadlock against it.
func (h *SearchHistory) hookLocked() func() {
	if h.onChange == nil {
		return nil
	}
	fn := h.onChange
	out := make([]domain.CatalogEntry, len(h.entries))
	copy(out, h.entries)
	return func() { fn(out) }
}
