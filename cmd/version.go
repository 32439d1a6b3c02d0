package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/huangsam/loadout/schema"
	"github.com/spf13/cobra"
)

// versionCmd prints build details and the catalog this binary was built with.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build and catalog details of loadout.",
	Long: `Display the release version, commit, build time and Go runtime, followed
by the archetype catalog and tier ids compiled into the binary.

Pinned combinations saved by a different catalog may resolve differently,
so include this output when reporting unexpected search results.`,
	Run: func(cmd *cobra.Command, _ []string) {
		writeVersion(cmd.OutOrStdout())
	},
}

func writeVersion(w io.Writer) {
	tiers := schema.DefaultTierTable().IDs()
	_, _ = fmt.Fprintf(w, "loadout %s (commit %s, built %s, %s)\n", version, commit, date, runtime.Version())
	_, _ = fmt.Fprintf(w, "  Archetypes: %d\n", len(schema.Archetypes()))
	_, _ = fmt.Fprintf(w, "  Tiers:      %v (custom %d)\n", tiers, schema.CustomTierID)
	_, _ = fmt.Fprintf(w, "  Max results per search: %d\n", schema.MaxResults)
}
