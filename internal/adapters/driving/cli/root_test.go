package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetWiring restores the package-level services after a full
// Execute pass so later tests can stub them again.
func resetWiring(t *testing.T) {
	t.Helper()

	origConfig := configStore
	origOrch := runOrchestrator
	origHistory := runHistory
	t.Cleanup(func() {
		wire = false
		configDir = ""
		configStore = origConfig
		runOrchestrator = origOrch
		runHistory = origHistory
		rootCmd.SetArgs(nil)
	})
}

func TestExecute_ConfigFlagSelectsDirectory(t *testing.T) {
	resetWiring(t)

	dir := t.TempDir()
	contents := fmt.Sprintf("storage_dir = %q\nhistory_dir = %q\n",
		filepath.Join(dir, "data"), filepath.Join(dir, "history"))
	require.NoError(t,
		os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0o600))

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--config", dir, "version"})

	err := Execute()

	require.NoError(t, err)
	require.NotNil(t, configStore)
	assert.Equal(t, filepath.Join(dir, "config.toml"), configStore.Path())
}

func TestExecute_BadConfigReportsError(t *testing.T) {
	resetWiring(t)

	dir := t.TempDir()
	require.NoError(t,
		os.WriteFile(filepath.Join(dir, "config.toml"), []byte("::: not toml"), 0o600))

	errBuf := new(bytes.Buffer)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs([]string{"--config", dir, "version"})

	err := Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, errBuf.String(), "failed to load configuration")
}
