package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func src(name string, kv map[string]any) *MapSource {
	return NewMapSource(name, kv)
}

func TestChainOrdering(t *testing.T) {
	t.Run("AddFirst and AddLast", func(t *testing.T) {
		c := NewChain()
		c.AddLast(src("a", nil))
		c.AddFirst(src("b", nil))
		c.AddLast(src("c", nil))
		assert.Equal(t, []string{"b", "a", "c"}, c.Names())
	})

	t.Run("re-adding a name relocates the source", func(t *testing.T) {
		c := NewChain()
		c.AddLast(src("a", nil))
		c.AddLast(src("b", nil))
		c.AddFirst(src("b", nil))
		assert.Equal(t, []string{"b", "a"}, c.Names())
		assert.Equal(t, 2, c.Len())
	})

	t.Run("AddBefore inserts at higher precedence than the anchor", func(t *testing.T) {
		c := NewChain()
		c.AddLast(src("a", nil))
		c.AddLast(src("c", nil))
		require.NoError(t, c.AddBefore("c", src("b", nil)))
		assert.Equal(t, []string{"a", "b", "c"}, c.Names())
	})

	t.Run("AddBefore missing anchor fails", func(t *testing.T) {
		c := NewChain()
		err := c.AddBefore("nope", src("x", nil))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("AddBefore relative to itself fails", func(t *testing.T) {
		c := NewChain()
		c.AddLast(src("x", nil))
		err := c.AddBefore("x", src("x", nil))
		assert.ErrorContains(t, err, "relative to itself")
	})

	t.Run("Replace keeps the position", func(t *testing.T) {
		c := NewChain()
		c.AddLast(src("a", map[string]any{"k": "old"}))
		c.AddLast(src("b", nil))
		require.NoError(t, c.Replace("a", src("a", map[string]any{"k": "new"})))
		assert.Equal(t, []string{"a", "b"}, c.Names())
		v, ok := c.Lookup("k")
		require.True(t, ok)
		assert.Equal(t, "new", v)

		assert.ErrorContains(t, c.Replace("zzz", src("zzz", nil)), "does not exist")
	})

	t.Run("Remove returns the removed source", func(t *testing.T) {
		c := NewChain()
		c.AddLast(src("a", nil))
		removed := c.Remove("a")
		require.NotNil(t, removed)
		assert.Equal(t, "a", removed.Name())
		assert.Nil(t, c.Remove("a"))
		assert.Equal(t, 0, c.Len())
	})
}

func TestChainLookupPrecedence(t *testing.T) {
	c := NewChain()
	c.AddLast(src("low", map[string]any{"k": "low", "only-low": "yes"}))
	c.AddFirst(src("high", map[string]any{"k": "high"}))

	v, ok := c.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, "high", v)

	v, ok = c.Lookup("only-low")
	require.True(t, ok)
	assert.Equal(t, "yes", v)

	_, ok = c.Lookup("absent")
	assert.False(t, ok)

	assert.Equal(t, 0, c.PrecedenceOf("high"))
	assert.Equal(t, 1, c.PrecedenceOf("low"))
	assert.Equal(t, -1, c.PrecedenceOf("ghost"))
}

func TestCompositeLookup(t *testing.T) {
	inner := NewComposite("combo",
		src("newest", map[string]any{"k": "newest"}),
		src("oldest", map[string]any{"k": "oldest", "extra": 1}),
	)

	v, ok := inner.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, "newest", v)

	inner.AddFirst(src("override", map[string]any{"k": "override"}))
	v, _ = inner.Lookup("k")
	assert.Equal(t, "override", v)

	v, ok = inner.Lookup("extra")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMapSourceFlattening(t *testing.T) {
	s := NewMapSource("doc", map[string]any{
		"server": map[string]any{
			"port":  8080,
			"hosts": []any{"a", "b"},
		},
		"name": "svc",
	})

	v, ok := s.Lookup("server.port")
	require.True(t, ok)
	assert.Equal(t, 8080, v)

	v, ok = s.Lookup("server.hosts[1]")
	require.True(t, ok)
	assert.Equal(t, "b", v)

	v, ok = s.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, "svc", v)

	_, ok = s.Lookup("server")
	assert.False(t, ok, "intermediate nodes are not values")
}
