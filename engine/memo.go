package engine

import (
	"sync"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"wpstyle/style"
)

type memoKey [32]byte

// Memo remembers results of wrapped generator for identical style objects.
// Identity includes key order since order affects produced CSS. Oldest
// entries are evicted first when capacity is reached.
type Memo struct {
	log      *zap.Logger
	next     Generator
	capacity int

	mu      sync.Mutex
	entries map[memoKey]*Result
	order   []memoKey
	hits    int
	misses  int
}

// NewMemo wraps generator. Capacity 0 or less disables memoization.
func NewMemo(next Generator, capacity int, log *zap.Logger) *Memo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Memo{
		log:      log.Named("memo"),
		next:     next,
		capacity: max(capacity, 0),
		entries:  make(map[memoKey]*Result, max(capacity, 0)),
	}
}

// Generate returns copy of remembered result or calls wrapped generator.
func (m *Memo) Generate(styles style.Value) *Result {
	if m.capacity == 0 {
		return m.next.Generate(styles)
	}

	key := memoKey(blake3.Sum256(styles.AppendCanonical(nil)))

	m.mu.Lock()
	if res, ok := m.entries[key]; ok {
		m.hits++
		m.mu.Unlock()
		return res.clone()
	}
	m.misses++
	m.mu.Unlock()

	res := m.next.Generate(styles)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		if len(m.order) >= m.capacity {
			delete(m.entries, m.order[0])
			m.order = m.order[1:]
		}
		m.entries[key] = res.clone()
		m.order = append(m.order, key)
	}
	return res
}

// Len returns number of remembered results.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// LogStats reports memo effectiveness.
func (m *Memo) LogStats() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.Debug("Memo statistics",
		zap.Int("capacity", m.capacity),
		zap.Int("entries", len(m.entries)),
		zap.Int("hits", m.hits),
		zap.Int("misses", m.misses))
}
