package diskpack

import (
	"maps"
	"strings"
	"sync"
)

// Stats holds the counters recorded during one compaction call. All
// standard keys are prefixed with [KeyPrefix].
//
// Counters are monotonically increasing. Strategies do not usually
// touch Stats directly: publishing a [MoveEvent] or [SkipEvent] on the
// [CompactionContext] updates the matching counters.
//
// All methods are safe for concurrent use, so hooks may read Stats
// while a strategy runs.
type Stats struct {
	mu       sync.RWMutex
	counters map[StatKey]int64
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{counters: make(map[StatKey]int64)}
}

// IncrCounter increments a counter by delta, creating it if needed.
// Panics if delta is negative (counters only go up).
func (s *Stats) IncrCounter(key StatKey, delta int64) {
	if delta < 0 {
		panic("diskpack: IncrCounter called with negative delta")
	}
	s.mu.Lock()
	s.counters[key] += delta
	s.mu.Unlock()
}

// GetCounter returns the value of a counter, or 0 if it was never set.
func (s *Stats) GetCounter(key StatKey) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// Counters returns a copy of all counters keyed by their string name.
func (s *Stats) Counters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		out[string(k)] = v
	}
	return out
}

// CountersWithPrefix returns a copy of the counters whose key starts
// with prefix.
func (s *Stats) CountersWithPrefix(prefix StatKey) map[string]int64 {
	all := s.Counters()
	maps.DeleteFunc(all, func(k string, _ int64) bool {
		return !strings.HasPrefix(k, string(prefix))
	})
	return all
}

// GetMoves returns the number of relocations.
func (s *Stats) GetMoves() int64 {
	return s.GetCounter(SCMoves)
}

// GetBlocksMoved returns the number of allocated blocks that moved.
func (s *Stats) GetBlocksMoved() int64 {
	return s.GetCounter(SCBlocksMoved)
}

// GetSkips returns the number of allocations that could not move.
func (s *Stats) GetSkips() int64 {
	return s.GetCounter(SCSkips)
}
