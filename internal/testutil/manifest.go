package testutil

import (
	"testing"

	"github.com/vk/confgraph/internal/meta"
)

// RunManifestTest provides a simplified harness for resolving a single unit
// manifest string. It wraps the main integration test harness.
func RunManifestTest(t *testing.T, manifestHCL string, modules ...meta.Module) *HarnessResult {
	t.Helper()

	files := map[string]string{
		"units/main.hcl": manifestHCL,
	}
	return RunResolution(t, files, modules...)
}
