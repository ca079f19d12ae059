package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/model"
)

func stackClass(t *testing.T, src *meta.Source, name string) *model.ConfigClass {
	t.Helper()
	require.NoError(t, src.AddDescriptor(&meta.Descriptor{Name: name, Kind: meta.KindUnit}))
	u, err := src.UnitFor(name)
	require.NoError(t, err)
	return model.NewConfigClass(u, "")
}

func TestImportStack(t *testing.T) {
	src := meta.NewSource()
	a := stackClass(t, src, "app.A")
	b := stackClass(t, src, "pkg.B")

	s := newImportStack()
	assert.False(t, s.contains("app.A"))

	s.push(a)
	s.push(b)
	assert.True(t, s.contains("app.A"))
	assert.True(t, s.contains("pkg.B"))
	assert.Equal(t, []string{"app.A", "pkg.B"}, s.chain())
	assert.Equal(t, "[A -> B]", s.String())

	s.pop()
	assert.False(t, s.contains("pkg.B"))
	assert.True(t, s.contains("app.A"))

	s.pop()
	assert.Equal(t, "[]", s.String())
}

func TestImportRegistryEdges(t *testing.T) {
	src := meta.NewSource()
	for _, name := range []string{"app.A", "app.B"} {
		require.NoError(t, src.AddDescriptor(&meta.Descriptor{Name: name, Kind: meta.KindUnit}))
	}
	unitA, err := src.UnitFor("app.A")
	require.NoError(t, err)
	unitB, err := src.UnitFor("app.B")
	require.NoError(t, err)

	r := newImportRegistry()
	r.registerImport(unitA, "app.Target")
	r.registerImport(unitB, "app.Target")
	r.registerImport(unitA, "app.Other")

	assert.Equal(t, "app.B", r.Importer("app.Target").Name())
	importers := r.ImportingFor("app.Target")
	require.Len(t, importers, 2)
	assert.Equal(t, "app.A", importers[0].Name())

	r.RemoveImporting("app.A")
	assert.Nil(t, r.Importer("app.Other"))
	require.Len(t, r.ImportingFor("app.Target"), 1)
	assert.Equal(t, "app.B", r.ImportingFor("app.Target")[0].Name())
}
