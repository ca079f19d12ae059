package integration_tests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/confgraph/internal/resource"
	"github.com/vk/confgraph/internal/testutil"
)

func TestProperties_ChainPositionsAndComposite(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	// p1 is declared twice around p2. The first-ever source anchors the
	// tail, p2 slots in before it, and the second p1 declaration merges
	// into a composite in place with the newer content winning.
	files := map[string]string{
		"units/main.hcl": `
			unit "app.Main" {
				annotate "core.configuration" {}
				annotate "core.propertysource" {
					name      = "p1"
					locations = ["props/one.properties"]
				}
				annotate "core.propertysource" {
					name      = "p2"
					locations = ["props/two.properties"]
				}
				annotate "core.propertysource" {
					name      = "p1"
					locations = ["props/three.properties"]
				}
			}
		`,
		"props/one.properties":   "greeting = hello\nshared = from-one\n",
		"props/two.properties":   "color = blue\n",
		"props/three.properties": "shared = from-three\n",
	}

	// --- Act ---
	result := testutil.RunResolution(t, files, &testutil.StaticModule{})

	// --- Assert ---
	require.NoError(t, result.Err)

	environ := result.App.Environment()
	assert.Equal(t, []string{"os-environment", "p2", "p1"}, environ.Chain().Names())

	greeting, ok := environ.PropertyString("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", greeting)

	color, ok := environ.PropertyString("color")
	require.True(t, ok)
	assert.Equal(t, "blue", color)

	shared, ok := environ.PropertyString("shared")
	require.True(t, ok)
	assert.Equal(t, "from-three", shared, "the later declaration of p1 must win lookups")
}

func TestProperties_PlaceholderInLocation(t *testing.T) {
	// --- Arrange ---
	// Locations are placeholder-resolved against the environment before the
	// resource is fetched; the profile comes from the OS source.
	t.Setenv("APP_PROFILE", "dev")
	files := map[string]string{
		"units/main.hcl": `
			unit "app.Main" {
				annotate "core.configuration" {}
				annotate "core.propertysource" {
					name      = "app"
					locations = ["props/${app.profile}.yaml"]
				}
			}
		`,
		"props/dev.yaml": "server:\n  port: 8080\n",
	}

	// --- Act ---
	result := testutil.RunResolution(t, files, &testutil.StaticModule{})

	// --- Assert ---
	require.NoError(t, result.Err)
	port, ok := result.App.Environment().PropertyString("server.port")
	require.True(t, ok)
	assert.Equal(t, "8080", port)
}

func TestProperties_MissingLocation(t *testing.T) {
	t.Parallel()

	t.Run("fails the parse by default", func(t *testing.T) {
		t.Parallel()
		manifestHCL := `
			unit "app.Main" {
				annotate "core.configuration" {}
				annotate "core.propertysource" { locations = ["props/absent.properties"] }
			}
		`
		result := testutil.RunManifestTest(t, manifestHCL, &testutil.StaticModule{})

		require.Error(t, result.Err)
		var notFound *resource.NotFoundError
		assert.True(t, errors.As(result.Err, &notFound), "expected a resource not-found failure, got %v", result.Err)
	})

	t.Run("is skipped when marked optional", func(t *testing.T) {
		t.Parallel()
		manifestHCL := `
			unit "app.Main" {
				annotate "core.configuration" {}
				annotate "core.propertysource" {
					locations      = ["props/absent.properties"]
					ignore_missing = true
				}
			}
		`
		result := testutil.RunManifestTest(t, manifestHCL, &testutil.StaticModule{})

		require.NoError(t, result.Err)
		testutil.AssertResolved(t, result, "app.Main")
	})
}
