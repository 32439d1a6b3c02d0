package cmd

import (
	"github.com/huangsam/loadout/core"
	"github.com/huangsam/loadout/internal/contract"
	"github.com/spf13/cobra"
)

// searchCmd runs the assortment search.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find assortments that reach the requested stat targets.",
	Long: `Search every five-component assortment for the given tier and rank the
ones that meet all targets, fewest archetypes first.

Slots add +5 (small) or +10 (large) to one attribute of a component, and each
component holds at most one slot. When nothing meets every target, the single
closest assortment is shown instead.

Fixed components are always kept in the assortment. Use --fix once per
component:
  gunner:health              catalog archetype with a tertiary
  gunner:health:exotic       same, marked exotic
  any:30/25/20               let the search pick archetype and tertiary
  custom:weapon/grenade/super:30/30/30

Examples:
  # Reach 100 weapon and 60 health with tier 5 components
  loadout search --weapon 100 --health 60

  # Spend up to two large slots and keep one exotic Bulwark
  loadout search --weapon 120 --large-slots 2 --fix bulwark:weapon:exotic

  # Hide results that only differ by order of equivalent components
  loadout search --melee 80 --super 80 --factorize

  # Export results for a spreadsheet
  loadout search --grenade 90 --output csv --output-file results.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSearch(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run search", err)
		}
	},
}
