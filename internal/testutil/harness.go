package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reloadgrid/reloadgo/internal/app"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Script    string
	Err       error
	App       *app.App
}

// RunReloadTest provides a standardized harness for integration tests: the
// given stage scripts are written into a branch-scoped script base for
// branch "main" under a fresh temp dir, a reload is run, and the assembled
// entry script plus the log output are returned. Script names are relative
// to the script base (e.g. "data_according_to_system.qvs").
func RunReloadTest(t *testing.T, scripts map[string]string, mutate ...func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunReloadTestWithContext(context.Background(), t, scripts, mutate...)
}

// RunReloadTestWithContext is RunReloadTest with a caller-provided context.
func RunReloadTestWithContext(ctx context.Context, t *testing.T, scripts map[string]string, mutate ...func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()

	cfg := app.Config{
		Branch:      "main",
		StorageRoot: "lib://DataFiles",
		ScriptsRoot: tmpDir,
		OutputPath:  filepath.Join(tmpDir, "entry.qvs"),
		LogLevel:    "debug",
		LogFormat:   "text",
	}
	for _, m := range mutate {
		m(&cfg)
	}

	scriptBase := filepath.Join(cfg.ScriptsRoot, "Analytical Data Storage System", cfg.Branch, "scripts")
	require.NoError(t, os.MkdirAll(scriptBase, 0755))
	for name, content := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(scriptBase, name), []byte(content), 0644))
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)

	var script string
	if content, readErr := os.ReadFile(appConfig.OutputPath); readErr == nil {
		script = string(content)
	}

	if os.Getenv("RELOADGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Script:    script,
		Err:       runErr,
		App:       testApp,
	}
}
