package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wayfarer/wayfarer-go/internal/crypto"
)

// mintToken issues a short-lived token for the given user, signed with the
// shared test secret.
func mintToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := crypto.GenerateToken(userID, "", testSecret, time.Hour)
	require.NoError(t, err)
	return token
}
