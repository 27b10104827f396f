// Package session keeps the per-user document state that the HTTP surface
// works against: the extracted text of the current upload and the list of
// recent searches.
package session

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxRecentSearches bounds Session.RecentSearches.
const MaxRecentSearches = 5

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session holds one uploaded document and its search history.
type Session struct {
	mu sync.Mutex

	ID          string
	Filename    string
	Text        string
	ContentHash string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	recent []string
}

// RecordSearch adds query to the front of the recent search list. A query
// already in the list is left where it is.
func (s *Session) RecordSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdatedAt = time.Now()
	if slices.Contains(s.recent, query) {
		return
	}
	s.recent = slices.Insert(s.recent, 0, query)
	if len(s.recent) > MaxRecentSearches {
		s.recent = s.recent[:MaxRecentSearches]
	}
}

// RecentSearches returns a copy of the recent queries, newest first.
func (s *Session) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.recent))
	copy(out, s.recent)
	return out
}

func (s *Session) touch() {
	s.mu.Lock()
	s.UpdatedAt = time.Now()
	s.mu.Unlock()
}

func (s *Session) lastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

// Snapshot is a read-only, JSON-safe copy of session state. The document
// text itself is omitted.
type Snapshot struct {
	ID             string    `json:"session_id"`
	Filename       string    `json:"filename"`
	ContentHash    string    `json:"content_hash"`
	RecentSearches []string  `json:"recent_searches"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	recent := s.RecentSearches()
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:             s.ID,
		Filename:       s.Filename,
		ContentHash:    s.ContentHash,
		RecentSearches: recent,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session for an extracted document. The previous
// session with the same id, if any, is replaced.
func (st *Store) Create(filename, text, contentHash string) *Session {
	now := time.Now()
	s := &Session{
		ID:          uuid.NewString(),
		Filename:    filename,
		Text:        text,
		ContentHash: contentHash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

// Get returns a live session and refreshes its TTL.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	if st.ttl > 0 && time.Since(s.lastUsed()) > st.ttl {
		st.Delete(id)
		return nil, ErrNotFound
	}
	s.touch()
	return s, nil
}

// Delete drops a session. It reports whether the session existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len returns the number of stored sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Cleanup removes expired sessions.
func (st *Store) Cleanup() {
	if st.ttl <= 0 {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	now := time.Now()
	for id, s := range st.sessions {
		if now.Sub(s.lastUsed()) > st.ttl {
			delete(st.sessions, id)
		}
	}
}
