package algo

import (
	"testing"

	"github.com/huangsam/loadout/schema"
	"github.com/stretchr/testify/assert"
)

func TestFactorize(t *testing.T) {
	table := schema.DefaultTierTable()
	a := []schema.Component{component(t, "Gunner", schema.Health), component(t, "Bulwark", schema.Weapon)}
	b := []schema.Component{component(t, "Bulwark", schema.Weapon), component(t, "Gunner", schema.Health)}
	c := []schema.Component{component(t, "Gunner", schema.Class), component(t, "Bulwark", schema.Weapon)}

	results := []schema.SearchResult{
		Evaluate(a, schema.Stats{}, schema.SlotBudget{}, table),
		Evaluate(b, schema.Stats{}, schema.SlotBudget{}, table),
		Evaluate(c, schema.Stats{}, schema.SlotBudget{}, table),
	}
	assert.Equal(t, FactorKey(results[0], table), FactorKey(results[1], table))

	kept := Factorize(results, table)
	assert.Len(t, kept, 2)
	assert.Equal(t, "Gunner", kept[0].Components[0].Archetype.Name, "first occurrence is kept")

	// Idempotent.
	assert.Equal(t, kept, Factorize(kept, table))
}

func TestFactorKey_CalculatorChosenMagnitudes(t *testing.T) {
	table := schema.DefaultTierTable()
	base := component(t, "Gunner", schema.Health)
	base.CalculatorChosen = true

	x, y := base, base
	x.Source = schema.Custom(schema.Magnitudes{Primary: 30, Secondary: 20, Tertiary: 10})
	y.Source = schema.Custom(schema.Magnitudes{Primary: 30, Secondary: 10, Tertiary: 20})

	// Identical totals on purpose so only the magnitudes separate the keys.
	rx := schema.SearchResult{Components: []schema.Component{x}, Totals: schema.Stats{1, 2, 3, 4, 5, 6}}
	ry := schema.SearchResult{Components: []schema.Component{y}, Totals: schema.Stats{1, 2, 3, 4, 5, 6}}
	assert.NotEqual(t, FactorKey(rx, table), FactorKey(ry, table))

	x.Exotic, y.Exotic = true, true
	rx.Components[0], ry.Components[0] = x, y
	assert.Equal(t, FactorKey(rx, table), FactorKey(ry, table), "exotic components ignore magnitudes")
}

func TestPinKey(t *testing.T) {
	a := component(t, "Gunner", schema.Health)
	b := component(t, "Bulwark", schema.Weapon)

	slotted := a
	slotted.LargeSlot = schema.Weapon
	assert.Equal(t, PinKey([]schema.Component{a, b}), PinKey([]schema.Component{b, slotted}))

	exotic := a
	exotic.Exotic = true
	assert.NotEqual(t, PinKey([]schema.Component{a, b}), PinKey([]schema.Component{exotic, b}))

	chosen := a
	chosen.CalculatorChosen = true
	assert.NotEqual(t, PinKey([]schema.Component{a}), PinKey([]schema.Component{chosen}))
}

func TestRankResults(t *testing.T) {
	results := []schema.SearchResult{
		{Score: 10, ArchetypeCount: 2, Totals: schema.Stats{1}},
		{Score: 0, ArchetypeCount: 3, Totals: schema.Stats{2}},
		{Score: 5, ArchetypeCount: 2, Totals: schema.Stats{3}},
		{Score: 5, ArchetypeCount: 2, Totals: schema.Stats{4}},
		{Score: 99, ArchetypeCount: 1, Totals: schema.Stats{5}},
	}

	ranked := RankResults(results, 10)
	order := make([]int, len(ranked))
	for i, r := range ranked {
		order[i] = r.Totals[0]
	}
	assert.Equal(t, []int{5, 3, 4, 1, 2}, order, "count first, then score, stable on ties")

	assert.Len(t, RankResults(ranked, 2), 2)
	assert.Empty(t, RankResults(nil, 50))
}
