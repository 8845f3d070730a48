package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/domain/roster"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Loader builds a fresh roster and payroll engine for a new session.
type Loader func(ctx context.Context) (*roster.Store, *payroll.Engine, error)

// Registry keeps one Session per client. Sessions never share roster or payroll
// state.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	load     Loader
	now      func() time.Time
}

func NewRegistry(ttl time.Duration, load Loader) *Registry {
	return &Registry{
		sessions: map[string]*Session{},
		ttl:      ttl,
		load:     load,
		now:      time.Now,
	}
}

func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Open loads a new roster and payroll engine and registers a session for them.
func (r *Registry) Open(ctx context.Context) (*Session, error) {
	store, engine, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	s := newSession(uuid.NewString(), r.now(), r.ttl, store, engine)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	slog.Info("session opened", "sessionId", s.ID, "expiresAt", s.ExpiresAt)
	return s, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !r.now().Before(s.ExpiresAt) {
		delete(r.sessions, id)
		return nil, ErrExpired
	}
	return s, nil
}

func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	slog.Info("session closed", "sessionId", id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
