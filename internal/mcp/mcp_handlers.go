package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/loadout/core"
	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/internal/outwriter"
	"github.com/huangsam/loadout/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleSearchCombinations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateSearch(cfg, searchOverrides(request)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid search parameters: %v", err)), nil
	}

	outcome, pinned, err := core.GetSearchResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	var buf bytes.Buffer
	if err := outwriter.WriteJSONSearch(&buf, outcome, cfg.Targets, pinned); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (h *toolHandler) handleListArchetypes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view := outwriter.NewCatalogView(schema.Archetypes(), h.baseCfg.Tiers)
	jsonData, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListPinned(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, err := h.pinnedStore()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pins, err := core.ListPinned(store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing pinned failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(pins, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePinCombination(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rank := request.GetInt("rank", 0)
	if rank < 1 {
		return mcp.NewToolResultError("rank must be at least 1"), nil
	}
	if _, err := h.pinnedStore(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateSearch(cfg, searchOverrides(request)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid search parameters: %v", err)), nil
	}

	pin, err := core.ExecutePinnedAdd(core.WithSuppressHeader(ctx), cfg, h.mgr, rank, request.GetString("name", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pin failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(pin, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) pinnedStore() (contract.PinnedStore, error) {
	if h.mgr == nil || h.mgr.GetPinnedStore() == nil {
		return nil, core.ErrNoPinnedStore
	}
	return h.mgr.GetPinnedStore(), nil
}

// searchOverrides reads the optional search arguments shared by the tools.
// Targets are only replaced when at least one attribute is present.
func searchOverrides(request mcp.CallToolRequest) contract.SearchOverrides {
	args := request.GetArguments()
	var o contract.SearchOverrides

	for _, attr := range schema.AllAttributes {
		if _, ok := args[string(attr)]; !ok {
			continue
		}
		if o.Targets == nil {
			o.Targets = map[schema.Attribute]int{}
		}
		o.Targets[attr] = request.GetInt(string(attr), 0)
	}

	o.Tier = request.GetInt("tier", 0)

	_, hasSmall := args["small_slots"]
	_, hasLarge := args["large_slots"]
	if hasSmall || hasLarge {
		o.Slots = &schema.SlotBudget{
			Small: request.GetInt("small_slots", 0),
			Large: request.GetInt("large_slots", 0),
		}
	}

	o.Fixed = request.GetStringSlice("fixed", nil)

	if _, ok := args["factorize"]; ok {
		factorize := request.GetBool("factorize", false)
		o.Factorize = &factorize
	}

	o.Limit = request.GetInt("limit", 0)
	return o
}
