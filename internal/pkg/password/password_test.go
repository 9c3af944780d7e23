package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("S3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cret-pass", hash)

	assert.True(t, Verify("S3cret-pass", hash))
	assert.False(t, Verify("wrong-pass", hash))
	assert.False(t, Verify("S3cret-pass", "not-a-hash"))
}

func TestHashToken(t *testing.T) {
	h := HashToken("reset-token-1")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("reset-token-1"))
	assert.NotEqual(t, h, HashToken("reset-token-2"))
}

func TestGenerateTemporary(t *testing.T) {
	p := GenerateTemporary()
	assert.True(t, strings.HasPrefix(p, "Law"))
	assert.True(t, strings.HasSuffix(p, "!"))
	assert.Len(t, p, 12)
	assert.True(t, Validate(p))
	assert.NotEqual(t, p, GenerateTemporary())
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("12345678"))
	assert.False(t, Validate("1234567"))
	assert.False(t, Validate(""))
}
