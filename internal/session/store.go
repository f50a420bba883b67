// Package session holds the per-browser-session expense collections.
//
// State lives only in memory: a session is created empty, mutated by the
// dashboard handlers, and discarded on idle timeout or explicit clear. The
// caller serializes nothing; the store guards all access with its own mutex.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"financas/internal/core"
)

// ErrNoSession indicates an ID that is unknown or already evicted.
var ErrNoSession = errors.New("session not found")

// Snapshot is a read-only copy of one session's state.
type Snapshot struct {
	Income   core.Money
	Expenses []core.Expense
}

type session struct {
	income   core.Money
	expenses []core.Expense
	lastSeen time.Time
}

// Store owns every live session, keyed by an opaque random ID.
type Store struct {
	mu            sync.Mutex
	sessions      map[string]*session
	defaultIncome core.Money
	ttl           time.Duration

	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

// NewStore creates a store whose sessions start with the given monthly income
// and are evicted after sitting idle for ttl.
func NewStore(defaultIncome core.Money, ttl time.Duration) *Store {
	s := &Store{
		sessions:      make(map[string]*session),
		defaultIncome: defaultIncome,
		ttl:           ttl,
		stopCleanup:   make(chan struct{}),
	}
	go s.startCleanup()
	return s
}

// Ensure returns id when it names a live session, otherwise creates a fresh
// session and returns its new ID.
func (s *Store) Ensure(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = time.Now()
		return id
	}
	id = newSessionID()
	s.sessions[id] = &session{income: s.defaultIncome, lastSeen: time.Now()}
	return id
}

// Snapshot returns a copy of the session's state. The copy is safe to use
// after the store mutates, so handlers can render without holding the lock.
func (s *Store) Snapshot(id string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, false
	}
	sess.lastSeen = time.Now()
	out := Snapshot{Income: sess.income}
	out.Expenses = make([]core.Expense, len(sess.expenses))
	copy(out.Expenses, sess.expenses)
	return out, true
}

// Append adds one manually entered record and returns the collection size.
func (s *Store) Append(id string, e core.Expense) (int, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return 0, ErrNoSession
	}
	sess.expenses = append(sess.expenses, e)
	sess.lastSeen = time.Now()
	return len(sess.expenses), nil
}

// AppendAll merges normalized import results into the collection, preserving
// their order. Records are trusted as already normalized; no re-validation.
func (s *Store) AppendAll(id string, records []core.Expense) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return 0, ErrNoSession
	}
	sess.expenses = append(sess.expenses, records...)
	sess.lastSeen = time.Now()
	return len(sess.expenses), nil
}

// SetIncome updates the session's monthly income.
func (s *Store) SetIncome(id string, income core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNoSession
	}
	sess.income = income
	sess.lastSeen = time.Now()
	return nil
}

// Clear resets the session to an empty collection and the default income.
func (s *Store) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNoSession
	}
	sess.expenses = nil
	sess.income = s.defaultIncome
	sess.lastSeen = time.Now()
	return nil
}

// Len reports how many sessions are currently live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Stop shuts down the eviction goroutine.
func (s *Store) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.stopCleanup)
	})
}

// startCleanup periodically evicts sessions idle for longer than the TTL.
func (s *Store) startCleanup() {
	interval := s.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictStale(time.Now())
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Store) evictStale(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func newSessionID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("sess_%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
