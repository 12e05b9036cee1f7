package security

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{8}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := NewAccessCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = struct{}{}
	}

	// 100 draws from a 32-bit space should not collide.
	assert.Len(t, seen, 100)
}
