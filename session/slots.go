package session

import (
	"sync"

	"github.com/opd-ai/orion/limits"
)

// Slots is a fixed-size table of live sessions keyed by a stable index.
// An index is reused only after Release.
type Slots struct {
	mu    sync.RWMutex
	table [limits.MaxSessions]*Session
	count int
}

// NewSlots returns an empty table.
func NewSlots() *Slots {
	return &Slots{}
}

// Acquire stores the session built by create in the lowest free slot.
// create runs with the slot index while the table is locked and must not
// call back into Slots.
func (s *Slots) Acquire(create func(index int) *Session) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.table {
		if cur != nil {
			continue
		}
		sess := create(i)
		s.table[i] = sess
		s.count++
		return sess, nil
	}
	return nil, ErrSlotsFull
}

// Release frees the slot at index and reports whether it was taken.
func (s *Slots) Release(index int) bool {
	if index < 0 || index >= len(s.table) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table[index] == nil {
		return false
	}
	s.table[index] = nil
	s.count--
	return true
}

// Get returns the session at index.
func (s *Slots) Get(index int) (*Session, bool) {
	if index < 0 || index >= len(s.table) {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.table[index]
	return sess, sess != nil
}

// Len returns the number of taken slots.
func (s *Slots) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count
}

// Each calls fn for every live session in index order. fn runs on a snapshot
// and may call back into Slots.
func (s *Slots) Each(fn func(*Session)) {
	s.mu.RLock()
	live := make([]*Session, 0, s.count)
	for _, sess := range s.table {
		if sess != nil {
			live = append(live, sess)
		}
	}
	s.mu.RUnlock()

	for _, sess := range live {
		fn(sess)
	}
}
