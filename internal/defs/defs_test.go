package defs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Contains("a"))

	r.Register("a", &Definition{UnitName: "app.A"})
	r.Register("b", &Definition{UnitName: "app.B"})
	assert.Equal(t, []string{"a", "b"}, r.Names())

	// Re-registration replaces the definition but keeps the position.
	r.Register("a", &Definition{UnitName: "app.A2"})
	assert.Equal(t, []string{"a", "b"}, r.Names())
	d, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "app.A2", d.UnitName)
	assert.Equal(t, 2, r.Len())
}
