package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolverEnv(values map[string]any) *Environment {
	e := New()
	e.Chain().AddLast(NewMapSource("test", values))
	return e
}

func TestResolveRequired(t *testing.T) {
	e := resolverEnv(map[string]any{
		"name":     "svc",
		"port":     8080,
		"which":    "name",
		"greeting": "hello ${name}",
		"loop":     "${loop}",
		"loop.a":   "${loop.b}",
		"loop.b":   "${loop.a}",
	})

	t.Run("plain text passes through", func(t *testing.T) {
		got, err := e.ResolveRequired("nothing here")
		require.NoError(t, err)
		assert.Equal(t, "nothing here", got)
	})

	t.Run("single and multiple placeholders", func(t *testing.T) {
		got, err := e.ResolveRequired("svc=${name} port=${port}")
		require.NoError(t, err)
		assert.Equal(t, "svc=svc port=8080", got)
	})

	t.Run("default applies only when the key is missing", func(t *testing.T) {
		got, err := e.ResolveRequired("${name:fallback}")
		require.NoError(t, err)
		assert.Equal(t, "svc", got)

		got, err = e.ResolveRequired("${missing:fallback}")
		require.NoError(t, err)
		assert.Equal(t, "fallback", got)
	})

	t.Run("nested placeholder in the key", func(t *testing.T) {
		got, err := e.ResolveRequired("${${which}}")
		require.NoError(t, err)
		assert.Equal(t, "svc", got)
	})

	t.Run("placeholders inside resolved values", func(t *testing.T) {
		got, err := e.ResolveRequired("${greeting}")
		require.NoError(t, err)
		assert.Equal(t, "hello svc", got)
	})

	t.Run("missing key without default fails", func(t *testing.T) {
		_, err := e.ResolveRequired("x ${gone} y")
		var unresolved *UnresolvedPlaceholderError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, "gone", unresolved.Placeholder)
	})

	t.Run("self-referential value fails", func(t *testing.T) {
		_, err := e.ResolveRequired("${loop}")
		assert.ErrorContains(t, err, "circular placeholder")
	})

	t.Run("mutual reference fails", func(t *testing.T) {
		_, err := e.ResolveRequired("${loop.a}")
		assert.ErrorContains(t, err, "circular placeholder")
	})
}

func TestResolvePlaceholders(t *testing.T) {
	e := resolverEnv(map[string]any{"name": "svc"})

	t.Run("unresolvable references stay verbatim", func(t *testing.T) {
		assert.Equal(t, "a ${gone} b", e.ResolvePlaceholders("a ${gone} b"))
	})

	t.Run("resolvable references are substituted", func(t *testing.T) {
		assert.Equal(t, "a svc b", e.ResolvePlaceholders("a ${name} b"))
	})

	t.Run("unterminated placeholder is literal", func(t *testing.T) {
		assert.Equal(t, "a ${open", e.ResolvePlaceholders("a ${open"))
	})
}
