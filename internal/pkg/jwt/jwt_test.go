package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "karim@example.com", "Client", "test-secret", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "karim@example.com", claims.Email)
	assert.Equal(t, "Client", claims.Role)
	assert.Equal(t, "lexcase", claims.Issuer)
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, "karim@example.com", "Client", "test-secret", 60)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(42, "karim@example.com", "Client", "test-secret", -5)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "test-secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", "test-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
