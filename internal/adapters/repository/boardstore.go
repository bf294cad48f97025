package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/pkg/metrics"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
)

// In-memory Store implementation: one sorted board per event.
//
// Ordering: time ASC (faster ranks earlier), then swimmerID ASC for a
// deterministic tie-break. Times are centisecond fixed-point, so ordering
// never touches floats.

// rankKey orders a board.
type rankKey struct {
	time      swimtime.Time
	swimmerID string
}

func (k rankKey) before(other rankKey) bool {
	if k.time != other.time {
		return k.time < other.time
	}
	return k.swimmerID < other.swimmerID
}

// board holds one event's ranking.
type board struct {
	best  map[string]swimtime.Time // swimmerID -> best time
	order []rankKey                // sorted ascending
}

// search returns the insertion index for key in the sorted order slice.
func (b *board) search(key rankKey) int {
	return sort.Search(len(b.order), func(i int) bool {
		return !b.order[i].before(key)
	})
}

func (b *board) insert(key rankKey) {
	i := b.search(key)
	b.order = append(b.order, rankKey{})
	copy(b.order[i+1:], b.order[i:])
	b.order[i] = key
}

func (b *board) remove(key rankKey) {
	i := b.search(key)
	if i < len(b.order) && b.order[i] == key {
		b.order = append(b.order[:i], b.order[i+1:]...)
	}
}

// BoardStore implements Store over per-event sorted boards.
type BoardStore struct {
	mu     sync.RWMutex
	boards map[course.Event]*board
	total  int
}

// NewBoardStore creates an empty ranking store.
func NewBoardStore(_ context.Context) *BoardStore {
	return &BoardStore{boards: make(map[course.Event]*board)}
}

// UpdateBest records t as the swimmer's best for the event when it improves
// on the stored one. A slower submission never overwrites a faster best.
func (s *BoardStore) UpdateBest(_ context.Context, event course.Event, swimmerID string, t swimtime.Time) (bool, error) {
	if swimmerID == "" || t <= 0 {
		return false, ErrInvalidEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[event]
	if !ok {
		b = &board{best: make(map[string]swimtime.Time)}
		s.boards[event] = b
	}

	existing, ranked := b.best[swimmerID]
	if ranked && existing <= t {
		return false, nil
	}
	if ranked {
		b.remove(rankKey{time: existing, swimmerID: swimmerID})
	} else {
		s.total++
	}
	b.best[swimmerID] = t
	b.insert(rankKey{time: t, swimmerID: swimmerID})

	metrics.RecordRankingUpdate()
	metrics.UpdateRankingSwimmers(s.total)
	metrics.UpdateRankingEvents(len(s.boards))
	return true, nil
}

// Rank returns the swimmer's current standing within the event.
func (s *BoardStore) Rank(_ context.Context, event course.Event, swimmerID string) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRankingQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[event]
	if !ok {
		return Entry{}, ErrNotFound
	}
	best, ok := b.best[swimmerID]
	if !ok {
		return Entry{}, ErrNotFound
	}

	i := b.search(rankKey{time: best, swimmerID: swimmerID})
	return Entry{
		Rank:      i + 1,
		SwimmerID: swimmerID,
		Event:     event,
		Time:      best,
	}, nil
}

// TopN returns the event's fastest n entries.
func (s *BoardStore) TopN(_ context.Context, event course.Event, n int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRankingQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[event]
	if !ok {
		return []Entry{}, nil
	}
	if n > len(b.order) {
		n = len(b.order)
	}

	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		key := b.order[i]
		entries[i] = Entry{
			Rank:      i + 1,
			SwimmerID: key.swimmerID,
			Event:     event,
			Time:      key.time,
		}
	}
	return entries, nil
}

// Count returns the total number of ranked entries across all events.
func (s *BoardStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// EventCount returns the number of events with at least one ranked time.
func (s *BoardStore) EventCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.boards)
}
