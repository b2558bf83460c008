// internal/handlers/session_server.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/masin009/hokm-asli/internal/game"
)

// SessionServer owns the session registry and the live WebSocket
// connections for every table. It is the glue between the engine's event
// callbacks and the connected clients.
type SessionServer struct {
	Store  *game.SessionStore
	Logger *log.Logger

	mu    sync.Mutex
	conns map[uuid.UUID]map[uuid.UUID]*websocket.Conn // session id -> player id -> conn
}

func NewSessionServer(logger *log.Logger) *SessionServer {
	if logger == nil {
		logger = log.New()
	}
	return &SessionServer{
		Store:  game.NewSessionStore(),
		Logger: logger,
		conns:  make(map[uuid.UUID]map[uuid.UUID]*websocket.Conn),
	}
}

// register records a player's connection for a session, replacing any
// previous connection for the same player.
func (srv *SessionServer) register(sessionID, playerID uuid.UUID, c *websocket.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.conns[sessionID] == nil {
		srv.conns[sessionID] = make(map[uuid.UUID]*websocket.Conn)
	}
	srv.conns[sessionID][playerID] = c
}

// unregister drops a player's connection. Only the exact connection is
// removed, so a reconnect that already replaced it is untouched.
func (srv *SessionServer) unregister(sessionID, playerID uuid.UUID, c *websocket.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if m, ok := srv.conns[sessionID]; ok && m[playerID] == c {
		delete(m, playerID)
		if len(m) == 0 {
			delete(srv.conns, sessionID)
		}
	}
}

// connsFor copies the current connection set for a session.
func (srv *SessionServer) connsFor(sessionID uuid.UUID) map[uuid.UUID]*websocket.Conn {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	out := make(map[uuid.UUID]*websocket.Conn, len(srv.conns[sessionID]))
	for pid, c := range srv.conns[sessionID] {
		out[pid] = c
	}
	return out
}

// closeFinished drops every connection for a table that no longer exists,
// telling clients why with the dedicated close code.
func (srv *SessionServer) closeFinished(sessionID uuid.UUID, reason string) {
	srv.mu.Lock()
	conns := srv.conns[sessionID]
	delete(srv.conns, sessionID)
	srv.mu.Unlock()
	for pid, c := range conns {
		if err := c.Close(SessionFinishedError, reason); err != nil {
			srv.Logger.Debugf("close for player %s in finished session %s: %v", pid, sessionID, err)
		}
	}
}

// attachBroadcasters wires the engine's event callbacks to this server's
// connection registry. The callbacks are invoked while the session lock is
// held, so the actual writes happen asynchronously.
func (srv *SessionServer) attachBroadcasters(s *game.Session) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.BroadcastFn == nil {
		s.BroadcastFn = srv.makeBroadcastFunc(s.ID)
	}
	if s.BroadcastToPlayerFn == nil {
		s.BroadcastToPlayerFn = srv.makeBroadcastToPlayerFunc(s.ID)
	}
}

func (srv *SessionServer) makeBroadcastFunc(sessionID uuid.UUID) func(ev game.SessionEvent) {
	return func(ev game.SessionEvent) {
		data, err := json.Marshal(ev)
		if err != nil {
			srv.Logger.Errorf("failed to marshal event %s for session %s: %v", ev.Type, sessionID, err)
			return
		}
		conns := srv.connsFor(sessionID)
		go func() {
			for pid, c := range conns {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				err := c.Write(ctx, websocket.MessageText, data)
				cancel()
				if err != nil {
					srv.Logger.Warnf("failed to write event %s to player %s in session %s: %v", ev.Type, pid, sessionID, err)
				}
			}
			// The registry already removed a finished match; the connections
			// have nothing left to act on once they hear the result.
			if ev.Type == game.EventMatchCompleted {
				srv.closeFinished(sessionID, "match complete")
			}
		}()
	}
}

func (srv *SessionServer) makeBroadcastToPlayerFunc(sessionID uuid.UUID) func(playerID uuid.UUID, ev game.SessionEvent) {
	return func(playerID uuid.UUID, ev game.SessionEvent) {
		srv.mu.Lock()
		c := srv.conns[sessionID][playerID]
		srv.mu.Unlock()
		if c == nil {
			return
		}
		data, err := json.Marshal(ev)
		if err != nil {
			srv.Logger.Errorf("failed to marshal private event %s for player %s: %v", ev.Type, playerID, err)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := c.Write(ctx, websocket.MessageText, data); err != nil {
				srv.Logger.Warnf("failed to write private event %s to player %s: %v", ev.Type, playerID, err)
			}
		}()
	}
}

// createSessionRequest is the optional JSON body for /session/create.
type createSessionRequest struct {
	Name string `json:"name"`
}

// createSessionResponse is returned by /session/create.
type createSessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	Seat      int       `json:"seat"`
}

// CreateSessionHandler builds a new table, seats its owner at seat 0, and
// returns the session id.
func CreateSessionHandler(srv *SessionServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ownerID, err := EnsureGuestPlayer(w, r)
		if err != nil {
			srv.Logger.Warnf("guest auth failed on session create: %v", err)
			http.Error(w, "authentication failed", http.StatusUnauthorized)
			return
		}

		var req createSessionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Name == "" {
			req.Name = "Guest"
		}

		if existing, ok := srv.Store.GetByPlayer(ownerID); ok {
			http.Error(w, "already seated at table "+existing.ID.String(), http.StatusConflict)
			return
		}

		s := srv.Store.Create(ownerID)
		srv.attachBroadcasters(s)
		seat, err := s.AddPlayer(ownerID, req.Name)
		if err != nil {
			// A freshly created table always has a free seat; treat this as internal.
			srv.Store.Delete(s.ID)
			http.Error(w, "failed to seat owner", http.StatusInternalServerError)
			return
		}
		if err := srv.Store.Bind(ownerID, s.ID); err != nil {
			srv.Store.Delete(s.ID)
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		srv.Logger.WithFields(log.Fields{
			"session": s.ID,
			"owner":   ownerID,
		}).Info("session created")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(createSessionResponse{SessionID: s.ID, Seat: seat})
	}
}

// sessionSummary is one row of the /session/list response.
type sessionSummary struct {
	SessionID uuid.UUID `json:"sessionId"`
	Phase     string    `json:"phase"`
	Seated    int       `json:"seated"`
	HandWins  [2]int    `json:"handWins"`
}

// ListSessionsHandler lists every active table.
func ListSessionsHandler(srv *SessionServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		summaries := []sessionSummary{}
		for _, s := range srv.Store.Sessions() {
			view := s.Snapshot(uuid.Nil)
			summaries = append(summaries, sessionSummary{
				SessionID: view.SessionID,
				Phase:     view.Phase,
				Seated:    len(view.Seats),
				HandWins:  view.HandWins,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summaries)
	}
}
