package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseAdminToken(token, "test-secret")
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	assert.Equal(t, "admin", claims.Subject)
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseAdminToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAdminToken(token, "test-secret")
	assert.Error(t, err)
}

func TestParseAdminTokenRejectsGarbage(t *testing.T) {
	_, err := ParseAdminToken("not-a-token", "test-secret")
	assert.Error(t, err)
}
