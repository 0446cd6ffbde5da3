package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/exwatch-cli/internal/adapters/driven/config/file"
)

func newTestConfigStore(t *testing.T) *configfile.ConfigStore {
	t.Helper()

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestConfigCmd_ShowDefaults(t *testing.T) {
	original := configStore
	configStore = newTestConfigStore(t)
	defer func() { configStore = original }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "source_url")
	assert.Contains(t, buf.String(), "notifier")
	assert.Contains(t, buf.String(), "console")
}

func TestConfigCmd_ShowMasksPassword(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set(configfile.KeySMTPPassword, "hunter2"))

	original := configStore
	configStore = store
	defer func() { configStore = original }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), "********")
}

func TestConfigCmd_SetString(t *testing.T) {
	store := newTestConfigStore(t)

	original := configStore
	configStore = store
	defer func() { configStore = original }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "storage_dir", "/var/lib/exwatch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "/var/lib/exwatch", store.GetString(configfile.KeyStorageDir))
}

func TestConfigCmd_SetIntParsesNumbers(t *testing.T) {
	store := newTestConfigStore(t)

	original := configStore
	configStore = store
	defer func() { configStore = original }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"config", "set", "http_timeout_secs", "60"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 60, store.GetInt(configfile.KeyHTTPTimeoutSecs))
}

func TestConfigCmd_SetRecipientListSplitsOnComma(t *testing.T) {
	store := newTestConfigStore(t)

	original := configStore
	configStore = store
	defer func() { configStore = original }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"config", "set", "smtp.to", "a@example.com,b@example.com"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t,
		[]string{"a@example.com", "b@example.com"},
		store.GetStringSlice(configfile.KeySMTPTo))
}

func TestConfigCmd_SetRequiresKeyAndValue(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "set", "storage_dir"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
