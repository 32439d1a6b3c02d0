package cmd

import (
	"github.com/huangsam/loadout/core"
	"github.com/huangsam/loadout/internal/contract"
	"github.com/spf13/cobra"
)

// catalogCmd shows archetypes and tier magnitudes.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List archetypes and the magnitudes of every tier.",
	Long: `Print the archetype catalog with each archetype's main, sub and allowed
third attributes, followed by the magnitude table for tiers 1-5 and the
custom tier 6.

Examples:
  loadout catalog
  loadout catalog --custom-tier 30/30/25 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalog(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot print catalog", err)
		}
	},
}
