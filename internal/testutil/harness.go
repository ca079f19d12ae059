package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/confgraph/internal/app"
	"github.com/vk/confgraph/internal/manifest"
	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/resolve"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Result    *resolve.Result
}

// RunResolution provides a standardized harness for running integration
// tests using a default background context.
func RunResolution(t *testing.T, files map[string]string, modules ...meta.Module) *HarnessResult {
	t.Helper()
	return RunResolutionWithContext(context.Background(), t, files, modules...)
}

// RunResolutionWithContext provides a standardized harness for running
// integration tests with a specific context provided by the caller. Files
// are written relative to a fresh temp directory; manifests go under
// "units/" and resource locations in manifests resolve against the temp
// root. Modules default to the compiled-in core list; passing any replaces
// it.
func RunResolutionWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...meta.Module) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root directory for the test.
	tmpDir, err := os.MkdirTemp("", ".tmp-integration-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	unitsDir := filepath.Join(tmpDir, "units")
	require.NoError(t, os.Mkdir(unitsDir, 0755))

	// 2. Write all files to the temporary directory. The test provides
	//    relative paths (e.g. "units/main.hcl" or "props/app.properties"),
	//    which naturally creates the subdirectory structure within tmpDir.
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	// 3. Configure the app against the dedicated subdirectories.
	appConfig := &app.Config{
		UnitPaths: []string{unitsDir},
		BasePath:  tmpDir,
		LogLevel:  "debug",
		LogFormat: "text",
		Report:    "text",
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("CONFGRAPH_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, manifest.NewLoader(), modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			App:       nil,
		}
	}

	// Instead of calling the full app.Run(), we call Resolve and Apply
	// directly. This keeps the tests focused on resolution semantics,
	// bypassing the report writer, and ensures errors propagate.
	var result *resolve.Result
	var runErr error
	if result, runErr = testApp.Resolve(ctx); runErr == nil {
		runErr = testApp.Apply(ctx, result)
	}

	if os.Getenv("CONFGRAPH_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Result:    result,
	}
}
