// internal/auth/session_test.go
package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndAuthenticateJWT(t *testing.T) {
	require.NoError(t, Init())

	playerID := uuid.New().String()
	token, err := CreateJWT(playerID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, playerID, sub)

	_, err = AuthenticateJWT(token + "tampered")
	assert.Error(t, err)

	_, err = AuthenticateJWT("not-a-jwt")
	assert.Error(t, err)
}

func TestKeysRotatePerProcess(t *testing.T) {
	require.NoError(t, Init())
	token, err := CreateJWT("player")
	require.NoError(t, err)

	// Re-running Init discards the old key pair, so old tokens stop verifying.
	require.NoError(t, Init())
	_, err = AuthenticateJWT(token)
	assert.Error(t, err)
}
