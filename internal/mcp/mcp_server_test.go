package mcp_test

import (
	"context"
	"testing"

	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/internal/iocache"
	mcp_internal "github.com/huangsam/loadout/internal/mcp"
	"github.com/huangsam/loadout/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Targets:     schema.Stats{60, 60},
		Tier:        5,
		Tiers:       schema.DefaultTierTable().WithCustom(schema.DefaultCustomTier),
		Slots:       schema.SlotBudget{Small: 1, Large: 1},
		TimeBudget:  contract.DefaultTimeBudget,
		ResultLimit: 5,
		Precision:   contract.DefaultPrecision,
		Output:      schema.TextOut,
	}
}

func callTool(t *testing.T, name string, args map[string]any, mgr contract.StoreManager) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseConfig(), mgr)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	t.Run("search_combinations invalid fixed spec", func(t *testing.T) {
		res := callTool(t, "search_combinations", map[string]any{
			"fixed": []any{"titan:health"},
		}, nil)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(res), "unknown archetype")
	})

	t.Run("list_pinned without store", func(t *testing.T) {
		res := callTool(t, "list_pinned", map[string]any{}, nil)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "pinned store is not initialized")
	})

	t.Run("pin_combination invalid rank", func(t *testing.T) {
		res := callTool(t, "pin_combination", map[string]any{"rank": 0.0}, nil)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "rank must be at least 1")
	})

	t.Run("pin_combination rank out of range", func(t *testing.T) {
		store := &iocache.MockPinnedStore{}
		store.On("List").Return([]schema.PinnedCombination{}, nil)
		mgr := &iocache.MockStoreManager{}
		mgr.On("GetPinnedStore").Return(store)

		res := callTool(t, "pin_combination", map[string]any{"rank": 49.0, "limit": 2.0}, mgr)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "out of range")
	})
}

func TestMCPServerHandlers_Search(t *testing.T) {
	res := callTool(t, "search_combinations", map[string]any{
		"weapon":      100.0,
		"health":      50.0,
		"large_slots": 2.0,
		"fixed":       []any{"gunner:health"},
		"limit":       3.0,
	}, nil)
	require.False(t, res.IsError, resultText(res))

	doc := resultText(res)
	assert.Equal(t, int64(100), gjson.Get(doc, "targets.weapon").Int())
	assert.Equal(t, int64(50), gjson.Get(doc, "targets.health").Int(), "targets are replaced as a whole")

	results := gjson.Get(doc, "results").Array()
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 3)
	assert.Equal(t, int64(1), results[0].Get("rank").Int())
	assert.Equal(t, "Gunner", gjson.Get(doc, "results.0.combination.4.pattern.name").String())
}

func TestMCPServerHandlers_ListArchetypes(t *testing.T) {
	res := callTool(t, "list_archetypes", map[string]any{}, nil)
	require.False(t, res.IsError)

	doc := resultText(res)
	assert.Equal(t, int64(6), gjson.Get(doc, "archetypes.#").Int())
	assert.Equal(t, int64(30), gjson.Get(doc, "tiers.5.main").Int())
	assert.True(t, gjson.Get(doc, "tiers.6").Exists(), "custom tier is listed")
}

func TestMCPServerHandlers_Pinned(t *testing.T) {
	store := &iocache.MockPinnedStore{}
	store.On("List").Return([]schema.PinnedCombination{}, nil)
	store.On("Add", mock.MatchedBy(func(p schema.PinnedCombination) bool { return p.Name == "Melee" })).Return(nil)
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetPinnedStore").Return(store)

	res := callTool(t, "pin_combination", map[string]any{"rank": 1.0, "name": "Melee", "melee": 80.0}, mgr)
	require.False(t, res.IsError, resultText(res))
	assert.Equal(t, "Melee", gjson.Get(resultText(res), "name").String())
	assert.Len(t, gjson.Get(resultText(res), "combination").Array(), schema.AssortmentSize)
	store.AssertNumberOfCalls(t, "Add", 1)

	res = callTool(t, "list_pinned", map[string]any{}, mgr)
	require.False(t, res.IsError)
	assert.Equal(t, "[]", resultText(res))
}
