package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/confgraph/internal/testutil"
)

// These tests run against the compiled-in modules: metrics.Enable imports
// an ordinary selector (collector wiring), a deferred selector joined to
// the shared exporters group, and a registrar.

func TestDeferredImports_SharedGroupCollapsesExporters(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	// Two units request overlapping exporter sets. The shared group must
	// observe both selectors and import each exporter configuration once.
	manifestHCL := `
		unit "app.Api" {
			annotate "core.configuration" {}
			annotate "metrics.Enable" { exporters = ["prometheus"] }
		}

		unit "app.Worker" {
			annotate "core.configuration" {}
			annotate "metrics.Enable" {
				mode      = "push"
				exporters = ["prometheus", "statsd"]
			}
		}
	`

	// --- Act ---
	result := testutil.RunManifestTest(t, manifestHCL)

	// --- Assert ---
	require.NoError(t, result.Err)

	// Eager selector picked the collector matching each unit's mode.
	pull := testutil.RecordNamed(t, result, "metrics.PullCollectorConfig")
	assert.Equal(t, []string{"app.Api"}, testutil.ImporterNames(pull))
	push := testutil.RecordNamed(t, result, "metrics.PushCollectorConfig")
	assert.Equal(t, []string{"app.Worker"}, testutil.ImporterNames(push))

	// The group deduplicated prometheus across both requesters; the first
	// one keeps the attribution.
	names := testutil.RecordNames(result)
	count := 0
	for _, name := range names {
		if name == "metrics.PrometheusConfig" {
			count++
		}
	}
	require.Equal(t, 1, count, "prometheus must be imported once, have %v", names)
	prometheus := testutil.RecordNamed(t, result, "metrics.PrometheusConfig")
	assert.Equal(t, []string{"app.Api"}, testutil.ImporterNames(prometheus))

	statsd := testutil.RecordNamed(t, result, "metrics.StatsdConfig")
	assert.Equal(t, []string{"app.Worker"}, testutil.ImporterNames(statsd))
}

func TestDeferredImports_DeferredSelectionRunsAfterEagerParse(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	manifestHCL := `
		unit "app.Api" {
			annotate "core.configuration" {}
			annotate "metrics.Enable" { exporters = ["statsd"] }
		}
	`

	// --- Act ---
	result := testutil.RunManifestTest(t, manifestHCL)

	// --- Assert ---
	require.NoError(t, result.Err)
	names := testutil.RecordNames(result)

	// Deferred entries land after every eagerly reachable record.
	statsdIdx, apiIdx := -1, -1
	for i, name := range names {
		switch name {
		case "metrics.StatsdConfig":
			statsdIdx = i
		case "app.Api":
			apiIdx = i
		}
	}
	require.NotEqual(t, -1, statsdIdx)
	require.NotEqual(t, -1, apiIdx)
	assert.Greater(t, statsdIdx, apiIdx, "deferred exporter import must resolve after the eager pass, have %v", names)
}

func TestDeferredImports_EnvironmentDisablesExporter(t *testing.T) {
	// --- Arrange ---
	// The deferred selector consults the environment, which the engine
	// injects; the OS source maps dotted keys to SCREAMING_SNAKE.
	t.Setenv("METRICS_EXPORTERS_DISABLED", "statsd")
	manifestHCL := `
		unit "app.Api" {
			annotate "core.configuration" {}
			annotate "metrics.Enable" { exporters = ["prometheus", "statsd"] }
		}
	`

	// --- Act ---
	result := testutil.RunManifestTest(t, manifestHCL)

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertResolved(t, result, "metrics.PrometheusConfig")
	testutil.AssertNotResolved(t, result, "metrics.StatsdConfig")
}

func TestDeferredImports_UnknownExporterFailsResolution(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	manifestHCL := `
		unit "app.Api" {
			annotate "core.configuration" {}
			annotate "metrics.Enable" { exporters = ["graphite"] }
		}
	`

	// --- Act ---
	result := testutil.RunManifestTest(t, manifestHCL)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorContains(t, result.Err, "graphite")
}
