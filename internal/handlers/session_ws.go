// internal/handlers/session_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/masin009/hokm-asli/internal/config"
	"github.com/masin009/hokm-asli/internal/game"
	"github.com/masin009/hokm-asli/internal/middleware"
	"github.com/masin009/hokm-asli/internal/models"
)

// SessionMessage is the structure of incoming WebSocket messages for a table.
type SessionMessage struct {
	Type string `json:"type"`

	// Name is the display name used with "join".
	Name string `json:"name,omitempty"`

	// Suit identifies the trump suit for "choose_trump" ("H", "D", "C", "S").
	Suit string `json:"suit,omitempty"`

	// CardIndex selects the hand index for "play_card".
	CardIndex *int `json:"cardIndex,omitempty"`
}

// wsError is sent back to the acting client whenever the engine rejects an
// action. LegalIndices is populated for follow-suit violations so the client
// can re-prompt.
type wsError struct {
	Type         string `json:"type"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	LegalIndices []int  `json:"legalIndices,omitempty"`
}

// SessionWSHandler upgrades the HTTP connection to a WebSocket bound to one
// table. It authenticates the guest, registers the connection, sends an
// initial snapshot, and runs the read loop until the client disconnects.
func SessionWSHandler(logger *logrus.Logger, srv *SessionServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pathParts := strings.Split(strings.TrimPrefix(r.URL.Path, "/session/ws/"), "/")
		if len(pathParts) < 1 || pathParts[0] == "" {
			http.Error(w, "missing session id in path (/session/ws/{session_id})", http.StatusBadRequest)
			return
		}
		sessionID, err := uuid.Parse(pathParts[0])
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}
		s, ok := srv.Store.Get(sessionID)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		playerID, err := EnsureGuestPlayer(w, r)
		if err != nil {
			logger.Warnf("guest auth failed for session %s: %v", sessionID, err)
			http.Error(w, "authentication failed", http.StatusUnauthorized)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"hokm"},
			OriginPatterns: config.OriginPatterns(),
		})
		if err != nil {
			logger.Warnf("websocket accept error for session %s: %v", sessionID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exited")

		if c.Subprotocol() != "hokm" {
			c.Close(BadSubprotocolError, "client must speak the 'hokm' subprotocol")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		srv.attachBroadcasters(s)
		srv.register(sessionID, playerID, c)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Initial private snapshot so the client can render immediately.
		sendWsMessage(ctx, c, logger, snapshotMessage(s, playerID))

		readErr := readSessionMessages(ctx, c, srv, s, playerID, logger)
		srv.unregister(sessionID, playerID, c)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, readErr)
	}
}

// snapshotMessage wraps a player-scoped view for the wire.
func snapshotMessage(s *game.Session, playerID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"type":  "snapshot",
		"state": s.Snapshot(playerID),
	}
}

// readSessionMessages reads and dispatches client actions until the
// connection closes or the context is cancelled.
func readSessionMessages(ctx context.Context, c *websocket.Conn, srv *SessionServer, s *game.Session, playerID uuid.UUID, logger *logrus.Logger) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			logger.Warnf("ignoring non-text message from player %s in session %s", playerID, s.ID)
			continue
		}

		var msg SessionMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sendWsError(ctx, c, logger, "bad_request", "invalid JSON message")
			continue
		}
		logger.Debugf("action %q from player %s in session %s", msg.Type, playerID, s.ID)

		switch msg.Type {
		case "join":
			name := msg.Name
			if name == "" {
				name = "Guest"
			}
			if _, err := s.AddPlayer(playerID, name); err != nil {
				sendActionError(ctx, c, logger, err)
				continue
			}
			if err := srv.Store.Bind(playerID, s.ID); err != nil {
				// Undo the seat; the player is still attached to another table.
				_ = s.RemovePlayer(playerID)
				sendActionError(ctx, c, logger, err)
				continue
			}
			sendWsMessage(ctx, c, logger, snapshotMessage(s, playerID))

		case "leave":
			if err := s.RemovePlayer(playerID); err != nil {
				sendActionError(ctx, c, logger, err)
				continue
			}
			srv.Store.Unbind(playerID)

		case "start":
			if err := s.StartHand(); err != nil {
				sendActionError(ctx, c, logger, err)
			}

		case "choose_trump":
			suit, err := models.ParseSuit(msg.Suit)
			if err != nil {
				sendWsError(ctx, c, logger, "bad_request", err.Error())
				continue
			}
			if err := s.ChooseTrump(playerID, suit); err != nil {
				sendActionError(ctx, c, logger, err)
			}

		case "play_card":
			if msg.CardIndex == nil {
				sendWsError(ctx, c, logger, "bad_request", "play_card requires cardIndex")
				continue
			}
			card, err := s.PlayCard(playerID, *msg.CardIndex)
			if err != nil {
				sendActionError(ctx, c, logger, err)
				continue
			}
			sendWsMessage(ctx, c, logger, map[string]interface{}{
				"type": "card_played",
				"card": card,
			})

		case "sync":
			sendWsMessage(ctx, c, logger, snapshotMessage(s, playerID))

		case "abort":
			if playerID != s.OwnerID {
				sendWsError(ctx, c, logger, "not_owner", "only the table owner may abort")
				continue
			}
			srv.abortSession(s)

		case "ping":
			sendWsMessage(ctx, c, logger, map[string]string{"type": "pong"})

		default:
			sendWsError(ctx, c, logger, "bad_request", fmt.Sprintf("unknown action type %q", msg.Type))
		}
	}
}

// abortSession tears down a table on the owner's request: every connected
// client is told, then the session and its bindings are deleted.
func (srv *SessionServer) abortSession(s *game.Session) {
	srv.Logger.WithField("session", s.ID).Info("session aborted by owner")

	data, _ := json.Marshal(map[string]string{"type": "session_aborted"})
	for pid, c := range srv.connsFor(s.ID) {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := c.Write(ctx, websocket.MessageText, data); err != nil {
			srv.Logger.Warnf("failed to notify player %s of abort: %v", pid, err)
		}
		cancel()
	}
	srv.Store.Delete(s.ID)
	srv.closeFinished(s.ID, "table aborted by owner")
}

// sendActionError maps an engine error onto the wire format.
func sendActionError(ctx context.Context, c *websocket.Conn, logger *logrus.Logger, err error) {
	out := wsError{Type: "error", Code: errorCode(err), Message: err.Error()}
	var sv *game.SuitViolationError
	if errors.As(err, &sv) {
		out.LegalIndices = sv.LegalIndices
	}
	sendWsMessage(ctx, c, logger, out)
}

// errorCode maps engine errors to stable machine-readable codes.
func errorCode(err error) string {
	var sv *game.SuitViolationError
	switch {
	case errors.As(err, &sv):
		return "suit_violation"
	case errors.Is(err, game.ErrRosterFull):
		return "roster_full"
	case errors.Is(err, game.ErrDuplicatePlayer):
		return "duplicate_player"
	case errors.Is(err, game.ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, game.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrInvalidCard):
		return "invalid_card"
	case errors.Is(err, game.ErrInvalidSuit):
		return "invalid_suit"
	case errors.Is(err, game.ErrUnknownPlayer):
		return "unknown_player"
	case errors.Is(err, game.ErrPlayerBusy):
		return "player_busy"
	default:
		return "internal"
	}
}

// sendWsError sends a plain error without an engine error behind it.
func sendWsError(ctx context.Context, c *websocket.Conn, logger *logrus.Logger, code, message string) {
	sendWsMessage(ctx, c, logger, wsError{Type: "error", Code: code, Message: message})
}

// sendWsMessage marshals and writes one message with a write timeout.
func sendWsMessage(ctx context.Context, c *websocket.Conn, logger *logrus.Logger, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Errorf("failed to marshal ws message: %v", err)
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Write(writeCtx, websocket.MessageText, data); err != nil {
		logger.Warnf("failed to write ws message: %v", err)
	}
}
