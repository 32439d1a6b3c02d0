// Package cmd defines the command-line interface for loadout.
package cmd

import (
	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(pinnedCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the pinned subcommands to the parent pinned command
	pinnedCmd.AddCommand(pinnedListCmd)
	pinnedCmd.AddCommand(pinnedAddCmd)
	pinnedCmd.AddCommand(pinnedRemoveCmd)
	pinnedCmd.AddCommand(pinnedRenameCmd)
	pinnedCmd.AddCommand(pinnedExportCmd)
	pinnedCmd.AddCommand(pinnedImportCmd)
	pinnedCmd.AddCommand(pinnedStatusCmd)
	pinnedCmd.AddCommand(pinnedClearCmd)
	pinnedCmd.AddCommand(pinnedDumpCmd)
	pinnedCmd.AddCommand(pinnedMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("tier", "t", schema.DefaultTier, "Component tier: 1-5, or 6 for --custom-tier")
	rootCmd.PersistentFlags().String("custom-tier", "", "Magnitudes of tier 6 as main/sub/third (default 30/25/20)")
	rootCmd.PersistentFlags().Int("small-slots", 0, "Number of small slots (+5) available")
	rootCmd.PersistentFlags().Int("large-slots", 0, "Number of large slots (+10) available")
	rootCmd.PersistentFlags().Int("weapon", 0, "Target for the weapon attribute (0-200)")
	rootCmd.PersistentFlags().Int("health", 0, "Target for the health attribute (0-200)")
	rootCmd.PersistentFlags().Int("class", 0, "Target for the class attribute (0-200)")
	rootCmd.PersistentFlags().Int("grenade", 0, "Target for the grenade attribute (0-200)")
	rootCmd.PersistentFlags().Int("melee", 0, "Target for the melee attribute (0-200)")
	rootCmd.PersistentFlags().Int("super", 0, "Target for the super attribute (0-200)")
	rootCmd.PersistentFlags().Bool("factorize", false, "Collapse results with identical totals and archetype mix")
	rootCmd.PersistentFlags().String("time-budget", contract.DefaultTimeBudget.String(), "Search time budget (0 = unlimited)")
	rootCmd.PersistentFlags().StringArray("fix", nil, "Fixed component, repeatable (e.g. gunner:health, any:30/25/20, custom:weapon/grenade/super)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("pinned-backend", string(schema.SQLiteBackend), "Pinned store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("pinned-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of pinnedAddCmd to Viper
	pinnedAddCmd.Flags().Int("rank", 1, "Rank of the search result to pin")
	pinnedAddCmd.Flags().String("name", "", "Display name (default: Combination N)")
	if err := viper.BindPFlags(pinnedAddCmd.Flags()); err != nil {
		contract.LogFatal("Error binding pinned add flags", err)
	}

	// Bind all flags of pinnedMigrateCmd to Viper
	pinnedMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(pinnedMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding pinned migrate flags", err)
	}
}
