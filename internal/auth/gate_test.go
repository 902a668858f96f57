package auth

import (
	"testing"

	"weighbridge-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeeper(t *testing.T, pin, pinHash string) *GateKeeper {
	t.Helper()
	cfg := &config.Config{}
	cfg.Access.Pin = pin
	cfg.Access.PinHash = pinHash
	cfg.Access.TokenSecret = "test-secret"
	cfg.Access.TokenTTLMin = 60
	return NewGateKeeper(cfg)
}

func TestVerifyPIN(t *testing.T) {
	g := testKeeper(t, "4271", "")

	assert.True(t, g.VerifyPIN("4271"))
	assert.True(t, g.VerifyPIN(" 4271 "), "surrounding whitespace is trimmed")
	assert.False(t, g.VerifyPIN("0000"))
	assert.False(t, g.VerifyPIN(""))
}

func TestVerifyPINWithBcryptHash(t *testing.T) {
	hash, err := HashPIN("4271")
	require.NoError(t, err)

	g := testKeeper(t, "", hash)
	assert.True(t, g.VerifyPIN("4271"))
	assert.False(t, g.VerifyPIN("4272"))
}

func TestHashTakesPrecedenceOverPlainPIN(t *testing.T) {
	hash, err := HashPIN("9999")
	require.NoError(t, err)

	g := testKeeper(t, "4271", hash)
	assert.False(t, g.VerifyPIN("4271"), "plain PIN is ignored once a hash is configured")
	assert.True(t, g.VerifyPIN("9999"))
}

func TestTokenRoundTrip(t *testing.T) {
	g := testKeeper(t, "4271", "")

	token, err := g.IssueToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, g.ValidateToken(token))
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := testKeeper(t, "4271", "")
	token, err := issuer.IssueToken()
	require.NoError(t, err)

	other := testKeeper(t, "4271", "")
	other.secret = []byte("different-secret")
	assert.Error(t, other.ValidateToken(token))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	g := testKeeper(t, "4271", "")
	assert.Error(t, g.ValidateToken("not-a-token"))
	assert.Error(t, g.ValidateToken(""))
}
