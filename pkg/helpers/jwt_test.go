package helpers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/greenkart/greenkart-api/pkg/helpers"
)

func TestJWTRoundTrip(t *testing.T) {
	mgr := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	token, exp, err := mgr.GenerateAccessToken("64f1b2c3d4e5f60718293a4b", "user", "asha@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))

	claims, err := mgr.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "64f1b2c3d4e5f60718293a4b", claims.UserID)
	require.Equal(t, "user", claims.Role)
	require.Equal(t, "asha@example.com", claims.Email)
}

func TestJWTSecretsAreSeparate(t *testing.T) {
	mgr := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	access, _, err := mgr.GenerateAccessToken("id", "user", "a@b.c")
	require.NoError(t, err)
	refresh, _, err := mgr.GenerateRefreshToken("id", "user", "a@b.c")
	require.NoError(t, err)

	// Access tokens do not pass as refresh tokens and vice versa.
	_, err = mgr.ParseRefreshToken(access)
	require.Error(t, err)
	_, err = mgr.ParseAccessToken(refresh)
	require.Error(t, err)
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	mgr := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := helpers.NewJWTManager("different", "different", time.Minute, time.Hour)

	token, _, err := mgr.GenerateAccessToken("id", "user", "a@b.c")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	require.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	mgr := helpers.NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, _, err := mgr.GenerateAccessToken("id", "user", "a@b.c")
	require.NoError(t, err)

	_, err = mgr.ParseAccessToken(token)
	require.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	mgr := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	_, err := mgr.ParseAccessToken("not.a.jwt")
	require.Error(t, err)
	_, err = mgr.ParseRefreshToken("")
	require.Error(t, err)
}
