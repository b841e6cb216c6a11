// internal/store/memory.go
//
// In-memory session registry.
// Each session exclusively owns one *game.Game for the lifetime of the process.
//
// Characteristics:
//   - Sessions are keyed by a random UUID.
//   - The map is guarded by an RWMutex; each session serializes access to its
//     game with its own mutex, so calls into one game run one at a time.
//   - Nothing survives a restart. Expire drops sessions older than a TTL.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/VinEdw/mastermind-pvp/internal/game"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Session is one player's game.
type Session struct {
	ID        string
	Daily     string // date key for daily sessions, empty otherwise
	CreatedAt time.Time

	mu   sync.Mutex
	game *game.Game
}

// Do runs fn with exclusive access to the session's game.
func (s *Session) Do(fn func(g *game.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// Store defines the session registry.
type Store interface {
	// Create registers g under a new id.
	Create(ctx context.Context, g *game.Game, daily string) (*Session, error)

	// Get retrieves a session by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Len reports the number of live sessions.
	Len() int

	// Prune drops sessions created before cutoff and reports how many went.
	Prune(ctx context.Context, cutoff time.Time) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session), now: time.Now}
}

func (m *memory) Create(ctx context.Context, g *game.Game, daily string) (*Session, error) {
	if g == nil {
		return nil, errors.New("nil game")
	}
	s := &Session{
		ID:        uuid.NewString(),
		Daily:     daily,
		CreatedAt: m.now().UTC(),
		game:      g,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memory) Prune(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.CreatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Expire prunes sessions older than ttl every interval until ctx is done.
func Expire(ctx context.Context, st Store, ttl, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Prune(ctx, now.Add(-ttl)); n > 0 {
				log.Info().Int("expired", n).Int("live", st.Len()).Msg("sessions expired")
			}
		}
	}
}
