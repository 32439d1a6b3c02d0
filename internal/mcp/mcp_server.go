// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/loadout/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Loadout MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Loadout Search Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: search_combinations ---
	s.AddTool(mcp.NewTool("search_combinations",
		mcp.WithDescription("Search five-component assortments that reach the requested attribute targets."),
		mcp.WithNumber("weapon", mcp.Description("Target for the weapon attribute (0-200).")),
		mcp.WithNumber("health", mcp.Description("Target for the health attribute (0-200).")),
		mcp.WithNumber("class", mcp.Description("Target for the class attribute (0-200).")),
		mcp.WithNumber("grenade", mcp.Description("Target for the grenade attribute (0-200).")),
		mcp.WithNumber("melee", mcp.Description("Target for the melee attribute (0-200).")),
		mcp.WithNumber("super", mcp.Description("Target for the super attribute (0-200).")),
		mcp.WithNumber("tier", mcp.Description("Component tier (1-5, or 6 for the configured custom tier). Defaults to the server config.")),
		mcp.WithNumber("small_slots", mcp.Description("Number of small slots (+5) available.")),
		mcp.WithNumber("large_slots", mcp.Description("Number of large slots (+10) available.")),
		mcp.WithArray("fixed", mcp.Description("Fixed components using the --fix syntax, e.g. 'gunner:health' or 'any:30/25/20'."), mcp.WithStringItems()),
		mcp.WithBoolean("factorize", mcp.Description("Collapse results with identical totals and archetype mix.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleSearchCombinations)

	// --- 2. Tool: list_archetypes ---
	s.AddTool(mcp.NewTool("list_archetypes",
		mcp.WithDescription("List the archetype catalog and the magnitudes of every tier."),
	), h.handleListArchetypes)

	// --- 3. Tool: list_pinned ---
	s.AddTool(mcp.NewTool("list_pinned",
		mcp.WithDescription("List saved (pinned) combinations."),
	), h.handleListPinned)

	// --- 4. Tool: pin_combination ---
	s.AddTool(mcp.NewTool("pin_combination",
		mcp.WithDescription("Run the search described by the arguments and pin the result at the given rank."),
		mcp.WithNumber("rank", mcp.Description("1-based rank of the result to pin."), mcp.Required()),
		mcp.WithString("name", mcp.Description("Display name. Defaults to 'Combination N'.")),
		mcp.WithNumber("weapon", mcp.Description("Target for the weapon attribute.")),
		mcp.WithNumber("health", mcp.Description("Target for the health attribute.")),
		mcp.WithNumber("class", mcp.Description("Target for the class attribute.")),
		mcp.WithNumber("grenade", mcp.Description("Target for the grenade attribute.")),
		mcp.WithNumber("melee", mcp.Description("Target for the melee attribute.")),
		mcp.WithNumber("super", mcp.Description("Target for the super attribute.")),
		mcp.WithNumber("tier", mcp.Description("Component tier.")),
		mcp.WithArray("fixed", mcp.Description("Fixed components using the --fix syntax."), mcp.WithStringItems()),
	), h.handlePinCombination)

	return s
}

// StartMCPServer starts the Loadout MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
