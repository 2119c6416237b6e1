package csrf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44) // 32 bytes, base64 with padding
}

func TestValidateToken(t *testing.T) {
	assert.True(t, ValidateToken("abc", "abc"))
	assert.False(t, ValidateToken("abc", "abd"))
	assert.False(t, ValidateToken("", ""))
	assert.False(t, ValidateToken("abc", ""))
	assert.False(t, ValidateToken("", "abc"))
}
