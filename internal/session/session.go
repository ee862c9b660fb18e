// Package session scopes the interactive booking state that the original
// UI kept in page globals: the selected doctor and date, the dashboard
// editing row, and the booking id pinned to each submission intent.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 30 * time.Minute

// Session is one user interaction's mutable state. All methods are safe
// for concurrent use.
type Session struct {
	id string

	mu         sync.Mutex
	doctor     string
	date       string
	editingRow int
	intentIDs  map[string]string
	lastSeen   time.Time
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SetSelection records the doctor and date the user is working with.
func (s *Session) SetSelection(doctor, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctor = doctor
	s.date = date
}

// Selection returns the current doctor and date choice.
func (s *Session) Selection() (doctor, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doctor, s.date
}

// SetEditingRow marks which schedule row is being edited; -1 clears it.
func (s *Session) SetEditingRow(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingRow = row
}

// EditingRow returns the schedule row under edit, or -1.
func (s *Session) EditingRow() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingRow
}

// BookingID returns the booking id pinned to an intent key, minting one
// on first use. Retrying the same intent inside the session reuses the
// id, so a double-click or network retry cannot produce two bookings; a
// different intent key gets a fresh id.
func (s *Session) BookingID(intentKey string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.intentIDs == nil {
		s.intentIDs = make(map[string]string)
	}
	if id, ok := s.intentIDs[intentKey]; ok {
		return id
	}
	id := uuid.NewString()
	s.intentIDs[intentKey] = id
	return id
}

// Store hands out sessions and expires idle ones.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a session store. ttl <= 0 uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// New creates and registers a fresh session.
func (st *Store) New() *Session {
	s := &Session{
		id:         uuid.NewString(),
		editingRow: -1,
		lastSeen:   st.now(),
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.prune()
	st.sessions[s.id] = s
	return s
}

// Get returns a live session by id, refreshing its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.prune()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	s.lastSeen = st.now()
	s.mu.Unlock()
	return s, true
}

// prune removes expired sessions. Callers hold st.mu.
func (st *Store) prune() {
	cutoff := st.now().Add(-st.ttl)
	for id, s := range st.sessions {
		s.mu.Lock()
		expired := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if expired {
			delete(st.sessions, id)
		}
	}
}
