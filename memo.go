package folio

import (
	"sync"
	"time"
)

// DefaultMemoTTL is how long a memoized result stays fresh.
const DefaultMemoTTL = 600 * time.Second

type memoEntry struct {
	value   any
	fetched time.Time
}

// Memo caches expensive computations (price history fetches, reconstructed
// wealth) under string keys for a bounded time. A zero TTL means entries
// never expire. Safe for concurrent use.
type Memo struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoEntry
}

// NewMemo creates a cache whose entries expire after ttl.
func NewMemo(ttl time.Duration) *Memo {
	return &Memo{ttl: ttl, now: time.Now, entries: make(map[string]memoEntry)}
}

// GetOrCompute returns the fresh cached value for key, or invokes compute,
// stores its result and returns it. A compute error is returned as-is and
// nothing is cached, so a transient failure does not poison the cache.
func (m *Memo) GetOrCompute(key string, compute func() (any, error)) (any, error) {
	m.mu.Lock()
	if e, ok := m.entries[key]; ok && (m.ttl == 0 || m.now().Sub(e.fetched) < m.ttl) {
		m.mu.Unlock()
		return e.value, nil
	}
	m.mu.Unlock()

	v, err := compute()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[key] = memoEntry{value: v, fetched: m.now()}
	m.mu.Unlock()
	return v, nil
}

// Invalidate drops the entry for key, forcing the next GetOrCompute to
// recompute.
func (m *Memo) Invalidate(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Flush drops every entry.
func (m *Memo) Flush() {
	m.mu.Lock()
	m.entries = make(map[string]memoEntry)
	m.mu.Unlock()
}

// Memoize is the typed wrapper around Memo.GetOrCompute.
func Memoize[T any](m *Memo, key string, compute func() (T, error)) (T, error) {
	if m == nil {
		return compute()
	}
	v, err := m.GetOrCompute(key, func() (any, error) { return compute() })
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
