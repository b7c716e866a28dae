package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapddl/mapddl/internal/dialect"

	_ "github.com/mapddl/mapddl/internal/dialect/mysql"
	_ "github.com/mapddl/mapddl/internal/dialect/postgres"
)

func TestBuiltinDialectsRegistered(t *testing.T) {
	assert.Equal(t, []string{"mysql", "postgres"}, dialect.Names())

	for _, name := range []string{"mysql", "postgres"} {
		d, ok := dialect.Get(name)
		require.True(t, ok)
		assert.Equal(t, name, d.Name())
	}

	_, ok := dialect.Get("oracle")
	assert.False(t, ok)
}
