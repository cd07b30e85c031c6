// Package session keeps one orchestrator per browser session in memory. Idle
// sessions expire; nothing is persisted.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"infographic/internal/infra"
	"infographic/internal/orchestrator"
)

// CookieName carries the session identifier.
const CookieName = "infographic_session"

// Factory builds the orchestrator of a new session.
type Factory func() *orchestrator.Orchestrator

// Store maps session identifiers to orchestrators with a sliding TTL.
type Store struct {
	mu      sync.Mutex
	items   *cache.Cache
	ttl     time.Duration
	factory Factory
	logger  *infra.Logger
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
func NewStore(ttl time.Duration, factory Factory, logger *infra.Logger) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = infra.NopLogger()
	}
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	items := cache.New(ttl, cleanup)
	items.OnEvicted(func(id string, _ interface{}) {
		logger.Debug().Str("session", id).Msg("session: expired")
	})
	return &Store{items: items, ttl: ttl, factory: factory, logger: logger}
}

// Get returns the orchestrator of id and refreshes its expiry.
func (s *Store) Get(id string) (*orchestrator.Orchestrator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchLocked(id)
}

// GetOrCreate returns the orchestrator of id, creating a fresh session when
// id is unknown or malformed. The returned id is the one to hand back.
func (s *Store) GetOrCreate(id string) (string, *orchestrator.Orchestrator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := uuid.Parse(id); err == nil {
		if o, ok := s.touchLocked(id); ok {
			return id, o
		}
	}
	id = uuid.NewString()
	o := s.factory()
	s.items.Set(id, o, cache.DefaultExpiration)
	s.logger.Debug().Str("session", id).Msg("session: created")
	return id, o
}

// Resolve reads the session cookie, creating a session when needed, and
// (re)issues the cookie on the response.
func (s *Store) Resolve(w http.ResponseWriter, r *http.Request) *orchestrator.Orchestrator {
	var current string
	if c, err := r.Cookie(CookieName); err == nil {
		current = c.Value
	}
	id, o := s.GetOrCreate(current)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return o
}

// Lookup returns the orchestrator of the request's session without creating one.
func (s *Store) Lookup(r *http.Request) (*orchestrator.Orchestrator, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return s.Get(c.Value)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.items.ItemCount()
}

func (s *Store) touchLocked(id string) (*orchestrator.Orchestrator, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	o, ok := v.(*orchestrator.Orchestrator)
	if !ok {
		return nil, false
	}
	s.items.Set(id, o, cache.DefaultExpiration)
	return o, true
}
