package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/exwatch-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change the settings in config.toml: the source URL, the
storage directory, the notifier and its SMTP parameters.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// displayKeys fixes the order settings are printed in.
var displayKeys = []string{
	configfile.KeySourceURL,
	configfile.KeyStorageDir,
	configfile.KeyHTTPTimeoutSecs,
	configfile.KeyHistoryDir,
	configfile.KeyNotifier,
	configfile.KeySMTPHost,
	configfile.KeySMTPPort,
	configfile.KeySMTPUsername,
	configfile.KeySMTPPassword,
	configfile.KeySMTPFrom,
	configfile.KeySMTPTo,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Configuration (%s):\n", configStore.Path())
	for _, key := range displayKeys {
		value, ok := configStore.Get(key)
		if !ok {
			continue
		}
		if key == configfile.KeySMTPPassword {
			value = "********"
		}
		cmd.Printf("  %-20s = %v\n", key, value)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	// TOML integers load as int64, so numeric keys are stored that way.
	var value any = raw
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		value = n
	} else if key == configfile.KeySMTPTo {
		value = strings.Split(raw, ",")
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}
