package cmd

import (
	"github.com/huangsam/loadout/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd serves the search engine and pinned store over MCP stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Loadout MCP server",
	Long: `Launch an MCP server on stdio so AI agents can search and pin assortments.

Tools:
- search_combinations: run a search with per-call targets, tier, slots and fixed components
- list_archetypes: the catalog and tier table
- list_pinned: saved combinations
- pin_combination: search and save one ranked result

Flags and config values become the defaults every tool call starts from.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tool handlers suppress the normal header logs because stdout
		// carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
