// internal/handlers/session_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masin009/hokm-asli/internal/auth"
	"github.com/masin009/hokm-asli/internal/game"
	"github.com/masin009/hokm-asli/internal/models"
)

func newTestServer(t *testing.T) *SessionServer {
	t.Helper()
	require.NoError(t, auth.Init())
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewSessionServer(logger)
}

// TestCreateSession checks that /session/create builds a table in memory and
// seats its owner.
func TestCreateSession(t *testing.T) {
	srv := newTestServer(t)

	host := uuid.New()
	token, err := auth.CreateJWT(host.String())
	require.NoError(t, err)

	body := `{"name":"Arman"}`
	req := httptest.NewRequest(http.MethodPost, "/session/create", bytes.NewBufferString(body))
	req.Header.Set("Cookie", "auth_token="+token)
	w := httptest.NewRecorder()

	CreateSessionHandler(srv).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp createSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEqual(t, uuid.Nil, resp.SessionID)
	assert.Equal(t, 0, resp.Seat)

	s, ok := srv.Store.Get(resp.SessionID)
	require.True(t, ok)
	assert.Equal(t, host, s.OwnerID)
	require.Len(t, s.Players, 1)
	assert.Equal(t, "Arman", s.Players[0].Name)

	// The owner is bound to the table and may not open a second one.
	req = httptest.NewRequest(http.MethodPost, "/session/create", bytes.NewBufferString(body))
	req.Header.Set("Cookie", "auth_token="+token)
	w = httptest.NewRecorder()
	CreateSessionHandler(srv).ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

// TestCreateSessionMintsGuest checks that a caller without a token gets a
// fresh guest identity cookie.
func TestCreateSessionMintsGuest(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/session/create", nil)
	w := httptest.NewRecorder()
	CreateSessionHandler(srv).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == "auth_token" {
			found = true
			_, err := auth.AuthenticateJWT(ck.Value)
			assert.NoError(t, err)
		}
	}
	assert.True(t, found, "expected an auth_token cookie for the new guest")
}

func TestListSessions(t *testing.T) {
	srv := newTestServer(t)
	s := srv.Store.Create(uuid.New())
	_, err := s.AddPlayer(uuid.New(), "one")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/session/list", nil)
	w := httptest.NewRecorder()
	ListSessionsHandler(srv).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []sessionSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, s.ID, summaries[0].SessionID)
	assert.Equal(t, "waiting", summaries[0].Phase)
	assert.Equal(t, 1, summaries[0].Seated)
}

func TestErrorCodes(t *testing.T) {
	cases := map[string]error{
		"roster_full":        game.ErrRosterFull,
		"duplicate_player":   game.ErrDuplicatePlayer,
		"not_enough_players": game.ErrNotEnoughPlayers,
		"invalid_state":      game.ErrInvalidState,
		"not_your_turn":      game.ErrNotYourTurn,
		"invalid_card":       game.ErrInvalidCard,
		"invalid_suit":       game.ErrInvalidSuit,
		"unknown_player":     game.ErrUnknownPlayer,
		"player_busy":        game.ErrPlayerBusy,
		"suit_violation":     &game.SuitViolationError{LedSuit: models.Hearts, LegalIndices: []int{2, 4}},
	}
	for code, err := range cases {
		assert.Equal(t, code, errorCode(err), "error %v", err)
	}
	assert.Equal(t, "internal", errorCode(assert.AnError))
}
