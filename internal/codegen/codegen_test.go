package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritrace/veritrace/internal/codegen"
)

func TestNewPair_Format(t *testing.T) {
	g := codegen.NewGenerator()

	pair, err := g.NewPair()
	require.NoError(t, err)

	// Version tag plus 128 hex chars of SHA-512 output
	assert.Len(t, pair.Inner, len(codegen.VersionTag)+128)
	assert.Len(t, pair.Outer, len(codegen.VersionTag)+128)
	assert.True(t, strings.HasPrefix(pair.Inner, codegen.VersionTag))
	assert.True(t, strings.HasPrefix(pair.Outer, codegen.VersionTag))
	assert.NotEqual(t, pair.Inner, pair.Outer)
}

func TestNewPair_NoCollisions(t *testing.T) {
	const n = 10000

	g := codegen.NewGenerator()
	seen := make(map[string]struct{}, 2*n)

	for i := 0; i < n; i++ {
		pair, err := g.NewPair()
		require.NoError(t, err)

		_, dup := seen[pair.Inner]
		require.False(t, dup, "inner code collision after %d pairs", i)
		seen[pair.Inner] = struct{}{}

		_, dup = seen[pair.Outer]
		require.False(t, dup, "outer code collision after %d pairs", i)
		seen[pair.Outer] = struct{}{}
	}
}
