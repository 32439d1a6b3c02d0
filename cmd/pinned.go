package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/loadout/core"
	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/internal/iocache"
	"github.com/huangsam/loadout/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// pinnedSetup loads minimal configuration needed for pinned store operations.
// This is used by commands that need store access without full shared setup.
func pinnedSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("pinned-backend"))
	connStr := viper.GetString("pinned-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize pinned store: %w", err)
	}

	cfg.PinnedBackend = backend
	cfg.PinnedDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// pinnedSetupWrapper wraps pinnedSetup to provide PreRunE for pinned commands.
func pinnedSetupWrapper(_ *cobra.Command, _ []string) error {
	return pinnedSetup()
}

// pinnedMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func pinnedMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("pinned-backend"))
	connStr := viper.GetString("pinned-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetPinnedDBFilePath()
	}

	cfg.PinnedBackend = backend
	cfg.PinnedDBConnect = connStr

	return nil
}

// pinnedMigrateSetupWrapper wraps pinnedMigrateSetup to provide PreRunE for migrate command.
func pinnedMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return pinnedMigrateSetup()
}

// pinnedCmd focused on saved combinations.
//
// Note: Commands that only touch the store (remove, rename, status, clear, dump)
// use pinnedSetup instead of the full sharedSetup, which also validates search
// and output flags.
var pinnedCmd = &cobra.Command{
	Use:   "pinned",
	Short: "Manage pinned (saved) combinations",
	Long: `Save search results under a name and manage them across runs.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  list    - Show every pinned combination
  add     - Pin a search result by rank
  remove  - Delete a pinned combination
  rename  - Change a pinned combination's name
  export  - Write pinned combinations as JSON
  import  - Merge pinned combinations from JSON
  status  - Show store statistics and connection info
  clear   - Remove every pinned combination
  dump    - Write pinned combinations to Parquet
  migrate - Run database schema migrations`,
}

var pinnedListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show every pinned combination",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePinnedList(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list pinned combinations", err)
		}
	},
}

var pinnedAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Pin a search result by rank",
	Long: `Rerun the search described by the flags and pin the result at --rank.

Examples:
  # Pin the best result
  loadout pinned add --weapon 100 --health 60

  # Pin the third result under a name
  loadout pinned add --weapon 100 --health 60 --rank 3 --name "PvP"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		pin, err := core.ExecutePinnedAdd(rootCtx, cfg, storeManager, viper.GetInt("rank"), viper.GetString("name"))
		if err != nil {
			contract.LogFatal("Cannot pin combination", err)
		}
		fmt.Printf("Pinned %q (%s)\n", pin.Name, pin.ID)
	},
}

var pinnedRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Short:   "Delete a pinned combination",
	Args:    cobra.ExactArgs(1),
	PreRunE: pinnedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.RemovePinned(iocache.Manager.GetPinnedStore(), args[0]); err != nil {
			contract.LogFatal("Cannot remove pinned combination", err)
		}
		fmt.Println("Pinned combination removed.")
	},
}

var pinnedRenameCmd = &cobra.Command{
	Use:     "rename <id> <name>",
	Short:   "Change a pinned combination's name",
	Args:    cobra.ExactArgs(2),
	PreRunE: pinnedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.RenamePinned(iocache.Manager.GetPinnedStore(), args[0], args[1]); err != nil {
			contract.LogFatal("Cannot rename pinned combination", err)
		}
		fmt.Println("Pinned combination renamed.")
	},
}

var pinnedExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write pinned combinations as JSON",
	Long: `Write every pinned combination as a JSON array that import accepts.

Examples:
  loadout pinned export > pins.json
  loadout pinned export --output-file pins.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePinnedExport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot export pinned combinations", err)
		}
	},
}

var pinnedImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge pinned combinations from JSON",
	Long: `Merge a JSON array written by export. Entries whose id is already pinned
are skipped. Use "-" to read from stdin.

Examples:
  loadout pinned import pins.json
  cat pins.json | loadout pinned import -`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		text, err := readImportSource(args[0])
		if err != nil {
			contract.LogFatal("Cannot read import file", err)
		}
		report, err := core.ExecutePinnedImport(rootCtx, cfg, storeManager, text)
		if err != nil {
			contract.LogFatal("Cannot import pinned combinations", err)
		}
		fmt.Println(report.Message)
		if !report.Success {
			os.Exit(1)
		}
		if report.Added < report.Imported {
			fmt.Printf("Skipped %d already pinned.\n", report.Imported-report.Added)
		}
	},
}

var pinnedStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display pinned store statistics and connection details",
	Args:    cobra.NoArgs,
	PreRunE: pinnedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetPinnedStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get pinned status", err)
		}
		iocache.PrintPinnedStatus(status)
	},
}

var pinnedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every pinned combination",
	Long: `Delete every pinned combination from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the pinned table

Examples:
  # Export before clearing
  loadout pinned export --output-file pins.json
  loadout pinned clear`,
	Args:    cobra.NoArgs,
	PreRunE: pinnedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseStores()
		if err := iocache.ClearPinned(cfg.PinnedBackend, contract.GetPinnedDBFilePath(), cfg.PinnedDBConnect); err != nil {
			contract.LogFatal("Failed to clear pinned combinations", err)
		}
		fmt.Println("Pinned combinations cleared successfully.")
	},
}

var pinnedDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write pinned combinations to Parquet for analytics tools",
	Long: `Write every pinned combination to a Parquet file, one row per pin.

Requires: --output-file parameter

Examples:
  loadout pinned dump --output-file pins.parquet
  duckdb -c "SELECT name, weapon, health FROM read_parquet('pins.parquet')"`,
	Args:    cobra.NoArgs,
	PreRunE: pinnedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecutePinnedDump(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to dump pinned combinations", err)
		}
	},
}

var pinnedMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the pinned store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  loadout pinned migrate

  # Rollback to initial state
  loadout pinned migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: pinnedMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigratePinned(cfg.PinnedBackend, cfg.PinnedDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// readImportSource reads the import payload from a file or stdin ("-").
func readImportSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
