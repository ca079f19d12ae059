package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestAnnotationAttributes(t *testing.T) {
	t.Run("string attribute", func(t *testing.T) {
		a := NewAnnotation(AnnotationPropertySource).WithString("name", "app")
		assert.Equal(t, "app", a.String("name"))
		assert.Equal(t, "", a.String("missing"))
	})

	t.Run("string list attribute", func(t *testing.T) {
		a := NewAnnotation(AnnotationImport).WithStrings("value", "a.One", "a.Two")
		assert.Equal(t, []string{"a.One", "a.Two"}, a.StringList("value"))
	})

	t.Run("bare string reads as single element list", func(t *testing.T) {
		a := NewAnnotation(AnnotationImport).WithString("value", "a.One")
		assert.Equal(t, []string{"a.One"}, a.StringList("value"))
	})

	t.Run("empty list attribute", func(t *testing.T) {
		a := NewAnnotation(AnnotationImport).WithStrings("value")
		assert.Empty(t, a.StringList("value"))
	})

	t.Run("bool attribute defaults to false", func(t *testing.T) {
		a := NewAnnotation(AnnotationPropertySource)
		assert.False(t, a.Bool("ignore_missing"))
		a = a.WithBool("ignore_missing", true)
		assert.True(t, a.Bool("ignore_missing"))
	})

	t.Run("numeric attribute", func(t *testing.T) {
		a := NewAnnotation(AnnotationOrder).WithNumber("value", 7)
		v, ok := a.Int("value")
		require.True(t, ok)
		assert.Equal(t, 7, v)

		_, ok = a.Int("missing")
		assert.False(t, ok)
	})

	t.Run("with methods copy rather than mutate", func(t *testing.T) {
		base := NewAnnotation(AnnotationOrder)
		derived := base.WithNumber("value", 1)
		_, ok := base.Attrs["value"]
		assert.False(t, ok)
		_, ok = derived.Attrs["value"]
		assert.True(t, ok)
	})

	t.Run("tuple values iterate like lists", func(t *testing.T) {
		a := Annotation{Type: AnnotationImport, Attrs: map[string]cty.Value{
			"value": cty.TupleVal([]cty.Value{cty.StringVal("x.A"), cty.StringVal("x.B")}),
		}}
		assert.Equal(t, []string{"x.A", "x.B"}, a.StringList("value"))
	})
}
