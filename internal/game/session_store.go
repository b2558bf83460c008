// internal/game/session_store.go
package game

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrPlayerBusy is returned by Bind when a player is already seated at a
// different live table.
var ErrPlayerBusy = errors.New("player is already seated at another table")

// SessionStore owns the active sessions in memory and the player-to-session
// index, replacing any ambient global registries. All access is guarded by
// the store mutex; per-session state is guarded by each session's own lock.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	byPlayer map[uuid.UUID]uuid.UUID
}

// NewSessionStore initializes and returns an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		byPlayer: make(map[uuid.UUID]uuid.UUID),
	}
}

// Create builds a new empty session owned by ownerID and registers it. The
// registry owns session lifetime: a finished match removes itself, releasing
// every player binding so participants can sit at a new table.
func (st *SessionStore) Create(ownerID uuid.UUID) *Session {
	s := NewSession(ownerID)
	s.OnMatchEnd = func(sessionID uuid.UUID, _ int) {
		st.Delete(sessionID)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

// Get retrieves a session by id.
func (st *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetByPlayer returns the session a player is currently bound to, if any.
func (st *SessionStore) GetByPlayer(playerID uuid.UUID) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sid, ok := st.byPlayer[playerID]
	if !ok {
		return nil, false
	}
	s, ok := st.sessions[sid]
	return s, ok
}

// Bind records that a player is seated at a session. A player may only sit
// at one live table at a time.
func (st *SessionStore) Bind(playerID, sessionID uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if bound, ok := st.byPlayer[playerID]; ok && bound != sessionID {
		if _, live := st.sessions[bound]; live {
			return ErrPlayerBusy
		}
	}
	st.byPlayer[playerID] = sessionID
	return nil
}

// Unbind releases a player's seat binding, typically after RemovePlayer.
func (st *SessionStore) Unbind(playerID uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.byPlayer, playerID)
}

// Delete tears down a session and every player binding that points at it.
// Used both for finished matches and for tables aborted by their owner.
func (st *SessionStore) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
	for pid, sid := range st.byPlayer {
		if sid == id {
			delete(st.byPlayer, pid)
		}
	}
}

// Sessions returns a copy of the active session map. Returning a copy keeps
// callers from iterating a map another goroutine may mutate.
func (st *SessionStore) Sessions() map[uuid.UUID]*Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make(map[uuid.UUID]*Session, len(st.sessions))
	for k, v := range st.sessions {
		out[k] = v
	}
	return out
}
