package session

import (
	"sync"
	"time"

	"snake_webapp/internal/logger"
	"snake_webapp/internal/snake"

	"github.com/google/uuid"
)

const cleanupInterval = time.Minute

// Store owns the active game sessions: one engine instance per session id,
// evicted after sitting idle past the TTL. There are no ambient globals;
// the route layer reaches a game only through its session id.
type Store struct {
	mu    sync.RWMutex
	games map[string]*entry
	ttl   time.Duration
}

type entry struct {
	game     *snake.Game
	lastSeen time.Time
}

// NewStore creates a store and starts its background cleanup goroutine.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		games: make(map[string]*entry),
		ttl:   ttl,
	}
	go s.cleanupExpired()
	return s
}

// Create makes a fresh game under a new session id.
func (s *Store) Create() (string, *snake.Game) {
	id := uuid.New().String()
	g := snake.New()

	s.mu.Lock()
	s.games[id] = &entry{game: g, lastSeen: time.Now()}
	s.mu.Unlock()

	return id, g
}

// Get returns the session's game and refreshes its idle timer.
func (s *Store) Get(id string) (*snake.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.game, true
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.games, id)
	s.mu.Unlock()
}

// Len reports the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func (s *Store) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		if n := s.sweep(time.Now()); n > 0 {
			logger.Info("expired game sessions removed", "count", n)
		}
	}
}

// sweep evicts sessions idle longer than the TTL and reports how many.
func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.games {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.games, id)
			removed++
		}
	}
	return removed
}
