package algo

import (
	"testing"

	"github.com/huangsam/loadout/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignSlots(t *testing.T) {
	table := schema.DefaultTierTable()

	t.Run("tie prefers the first move found", func(t *testing.T) {
		components := []schema.Component{component(t, "Gunner", schema.Health), component(t, "Gunner", schema.Class)}
		targets := schema.Stats{65}

		pieces, remaining := AssignSlots(components, targets, schema.SlotBudget{Small: 1, Large: 1}, table)
		assert.Equal(t, schema.Weapon, pieces[0].SmallSlot)
		assert.Empty(t, pieces[0].LargeSlot)
		assert.False(t, pieces[1].HasSlot())
		assert.Equal(t, schema.SlotBudget{Small: 0, Large: 1}, remaining)
	})

	t.Run("large slot when the gap is wide", func(t *testing.T) {
		components := []schema.Component{component(t, "Gunner", schema.Health)}
		pieces, remaining := AssignSlots(components, schema.Stats{40}, schema.SlotBudget{Small: 1, Large: 1}, table)
		assert.Equal(t, schema.Weapon, pieces[0].LargeSlot)
		assert.Equal(t, schema.SlotBudget{Small: 1, Large: 0}, remaining)
	})

	t.Run("at most one slot per component", func(t *testing.T) {
		components := []schema.Component{component(t, "Gunner", schema.Health)}
		pieces, remaining := AssignSlots(components, schema.Stats{100}, schema.SlotBudget{Small: 2, Large: 2}, table)
		assert.Equal(t, schema.Weapon, pieces[0].LargeSlot)
		assert.Empty(t, pieces[0].SmallSlot)
		assert.Equal(t, schema.SlotBudget{Small: 2, Large: 1}, remaining)
		assert.Equal(t, 40, TotalStats(pieces, table).Get(schema.Weapon))
	})

	t.Run("no slots when targets are met", func(t *testing.T) {
		components := []schema.Component{component(t, "Gunner", schema.Health)}
		pieces, remaining := AssignSlots(components, schema.Stats{10}, schema.SlotBudget{Small: 3, Large: 2}, table)
		assert.False(t, pieces[0].HasSlot())
		assert.Equal(t, schema.SlotBudget{Small: 3, Large: 2}, remaining)
	})

	t.Run("existing slots are kept and input is not modified", func(t *testing.T) {
		first := component(t, "Gunner", schema.Health)
		first.SmallSlot = schema.Melee
		components := []schema.Component{first, component(t, "Gunner", schema.Class)}

		pieces, _ := AssignSlots(components, schema.Stats{70}, schema.SlotBudget{Large: 1}, table)
		assert.Equal(t, schema.Melee, pieces[0].SmallSlot)
		assert.Equal(t, schema.Weapon, pieces[1].LargeSlot)
		assert.False(t, components[1].HasSlot())
	})
}

func TestEvaluate(t *testing.T) {
	table := schema.DefaultTierTable()
	components := []schema.Component{component(t, "Gunner", schema.Health), component(t, "Bulwark", schema.Weapon)}

	achieved := Evaluate(components, schema.Stats{55, 50}, schema.SlotBudget{Small: 1}, table)
	assert.True(t, achieved.TargetAchieved)
	assert.Equal(t, 0, achieved.Score)
	assert.Equal(t, 2, achieved.ArchetypeCount)
	assert.Equal(t, schema.SlotBudget{}, achieved.Remaining)
	assert.Equal(t, 55, achieved.Totals.Get(schema.Weapon))

	short := Evaluate(components, schema.Stats{100}, schema.SlotBudget{}, table)
	require.False(t, short.TargetAchieved)
	assert.Equal(t, 50*50, short.Score)
	assert.Equal(t, TotalStats(short.Components, table), short.Totals)
}
