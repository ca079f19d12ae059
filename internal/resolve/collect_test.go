package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectFor(t *testing.T, f *fixture, name string) []string {
	t.Helper()
	unit, err := f.src.UnitFor(name)
	require.NoError(t, err)
	return f.parser().collectImports(testContext(), unit)
}

func TestCollectImports(t *testing.T) {
	t.Run("direct imports in declaration order", func(t *testing.T) {
		f := newFixture(t)
		f.declare(`
unit "app.Config" {
  annotate "core.import" { value = ["app.B", "app.A"] }
}
`)
		assert.Equal(t, []string{"app.B", "app.A"}, collectFor(t, f, "app.Config"))
	})

	t.Run("meta-annotation imports come before the unit's own", func(t *testing.T) {
		f := newFixture(t)
		f.declare(`
annotation "app.EnableFeature" {
  annotate "core.import" { value = ["app.FeatureConfig"] }
}
unit "app.Config" {
  annotate "app.EnableFeature" {}
  annotate "core.import" { value = ["app.Own"] }
}
`)
		assert.Equal(t, []string{"app.FeatureConfig", "app.Own"}, collectFor(t, f, "app.Config"))
	})

	t.Run("duplicates keep their first position", func(t *testing.T) {
		f := newFixture(t)
		f.declare(`
annotation "app.EnableShared" {
  annotate "core.import" { value = ["app.Shared"] }
}
unit "app.Config" {
  annotate "app.EnableShared" {}
  annotate "core.import" { value = ["app.Shared", "app.Other"] }
}
`)
		assert.Equal(t, []string{"app.Shared", "app.Other"}, collectFor(t, f, "app.Config"))
	})

	t.Run("mutually annotated types do not loop", func(t *testing.T) {
		f := newFixture(t)
		f.declare(`
annotation "app.Ying" {
  annotate "app.Yang" {}
  annotate "core.import" { value = ["app.FromYing"] }
}
annotation "app.Yang" {
  annotate "app.Ying" {}
  annotate "core.import" { value = ["app.FromYang"] }
}
unit "app.Config" {
  annotate "app.Ying" {}
}
`)
		assert.Equal(t, []string{"app.FromYang", "app.FromYing"}, collectFor(t, f, "app.Config"))
	})

	t.Run("unresolvable annotation types are skipped", func(t *testing.T) {
		f := newFixture(t)
		f.declare(`
unit "app.Config" {
  annotate "app.NeverDeclared" {}
  annotate "core.import" { value = ["app.Own"] }
}
`)
		assert.Equal(t, []string{"app.Own"}, collectFor(t, f, "app.Config"))
	})

	t.Run("nothing to collect yields nothing", func(t *testing.T) {
		f := newFixture(t)
		f.declare(`
unit "app.Config" {
  annotate "core.configuration" {}
}
`)
		assert.Empty(t, collectFor(t, f, "app.Config"))
	})
}
