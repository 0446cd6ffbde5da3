package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/exwatch-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/exwatch-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/exwatch-cli/internal/adapters/driven/report/xlsx"
	snapshotfile "github.com/custodia-labs/exwatch-cli/internal/adapters/driven/snapshot/file"
	"github.com/custodia-labs/exwatch-cli/internal/adapters/driven/source/htmltable"
	"github.com/custodia-labs/exwatch-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/exwatch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/exwatch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/exwatch-cli/internal/core/services"
	"github.com/custodia-labs/exwatch-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// defaultStorageDir holds reports and snapshots when the config file
// does not name a storage directory.
const defaultStorageDir = "exwatch_data"

// Services wired by Execute. Commands check for nil so the package
// stays testable without a full wiring pass.
var (
	configStore     driven.ConfigStore
	runOrchestrator driving.RunOrchestrator
	runHistory      driven.RunStore
)

var (
	verbose   bool
	configDir string
)

// wire is set by Execute. Services are built in PersistentPreRunE so
// that flags are parsed first; tests drive rootCmd directly with
// stubbed services and skip the wiring.
var wire bool

var rootCmd = &cobra.Command{
	Use:   "exwatch",
	Short: "Watch a published exclusion list for changes",
	Long: `exwatch scrapes a published exclusion list, compares the rows with
the previous run and reports what was added or removed.

Each run renders a full xlsx report and persists a snapshot. A changes
report and a notification are produced only when the list moved.`,
	SilenceUsage: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		logger.SetVerbose(verbose)
		if !wire {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "",
		"directory holding config.toml (default ~/.exwatch)")
}

// Execute runs the root command, wiring the adapters into the
// services once flags are parsed. It is the entrypoint called from
// main; wiring failures are reported on the command's error stream.
func Execute() error {
	wire = true
	defer closeServices()

	return rootCmd.Execute()
}

func initServices() error {
	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	configStore = store

	timeout := time.Duration(store.GetInt(configfile.KeyHTTPTimeoutSecs)) * time.Second
	source := htmltable.NewProvider(store.GetString(configfile.KeySourceURL), timeout)

	storageDir := store.GetString(configfile.KeyStorageDir)
	if storageDir == "" {
		storageDir = defaultStorageDir
	}
	snapshots := snapshotfile.NewStore(storageDir)
	renderer := xlsx.NewRenderer()
	notifier := buildNotifier(store)

	// A broken ledger downgrades the run to log-only, it never blocks it.
	history, err := sqlite.NewStore(store.GetString(configfile.KeyHistoryDir))
	if err != nil {
		logger.Warn("Run history unavailable: %v", err)
	} else {
		runHistory = history
	}

	runOrchestrator = services.NewRunner(
		source, snapshots, renderer, notifier, runHistory, storageDir)

	return nil
}

// buildNotifier selects the notifier named in config, falling back to
// the console notifier when SMTP is selected but not fully configured.
func buildNotifier(store driven.ConfigStore) driven.Notifier {
	if store.GetString(configfile.KeyNotifier) != "smtp" {
		return notify.NewConsole()
	}

	host := store.GetString(configfile.KeySMTPHost)
	to := store.GetStringSlice(configfile.KeySMTPTo)
	if host == "" || len(to) == 0 {
		logger.Warn("SMTP notifier selected but smtp.host or smtp.to is missing, using console")
		return notify.NewConsole()
	}

	return notify.NewSMTP(
		host,
		store.GetInt(configfile.KeySMTPPort),
		store.GetString(configfile.KeySMTPUsername),
		store.GetString(configfile.KeySMTPPassword),
		store.GetString(configfile.KeySMTPFrom),
		to,
	)
}

func closeServices() {
	if runHistory != nil {
		if err := runHistory.Close(); err != nil {
			logger.Warn("Failed to close run history: %v", err)
		}
	}
}
