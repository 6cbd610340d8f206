package game

import (
	"log/slog"
	"sync"
	"time"

	"wordspy/internal/words"
)

const sweepInterval = 10 * time.Minute

// Registry owns the mapping from session identifier to live session actor.
// Creation is idempotent: re-creating an existing identifier returns the
// session unchanged. Sessions are fully independent, so cross-session
// operations need no coordination beyond the map lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	settings Settings
	words    words.Source
	logger   *slog.Logger
	done     chan struct{}
}

// NewRegistry creates a registry and starts its housekeeping sweep
func NewRegistry(settings Settings, src words.Source, logger *slog.Logger) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		settings: settings,
		words:    src,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go r.sweepLoop()
	return r
}

// CreateOrGet returns the session for id, creating it if absent. Never fails
// and never resets an existing session.
func (r *Registry) CreateOrGet(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok {
		return session
	}

	session := NewSession(id, r.settings, r.words, r.logger)
	session.onEmpty = func() { r.Delete(id) }
	r.sessions[id] = session
	r.logger.Info("session created", "gameID", id)
	return session
}

// Get returns the session for id, or false if absent
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Delete removes and shuts down the session for id
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok {
		session.Close()
		delete(r.sessions, id)
		r.logger.Info("session deleted", "gameID", id)
	}
}

// Clear drops all sessions atomically. Testing and ops hook.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.sessions {
		session.Close()
	}
	r.sessions = make(map[string]*Session)
}

// SessionCount returns the number of live sessions
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// PlayerCount returns the total roster size across all sessions
func (r *Registry) PlayerCount() int {
	total := 0
	for _, session := range r.snapshot() {
		total += session.PlayerCount()
	}
	return total
}

// Close shuts down the registry and every session
func (r *Registry) Close() {
	close(r.done)
	r.Clear()
}

// snapshot copies the session list so per-session calls happen off the map
// lock; a session actor may itself call Delete.
func (r *Registry) snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

func (r *Registry) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.sweepIdle()
		}
	}
}

// sweepIdle removes sessions that have sat empty past the idle timeout
func (r *Registry) sweepIdle() {
	now := time.Now()
	for _, session := range r.snapshot() {
		if session.PlayerCount() == 0 && now.Sub(session.CreatedAt()) > r.settings.SessionIdleTimeout {
			r.Delete(session.ID())
		}
	}
}
