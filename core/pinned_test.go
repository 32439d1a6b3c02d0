package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/loadout/core/algo"
	"github.com/huangsam/loadout/internal/iocache"
	"github.com/huangsam/loadout/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) schema.SearchResult {
	t.Helper()
	gunner, ok := schema.FindArchetype("Gunner")
	require.True(t, ok)
	bulwark, ok := schema.FindArchetype("Bulwark")
	require.True(t, ok)
	return schema.SearchResult{
		Components: []schema.Component{
			{Archetype: gunner, Tier: 5, Tertiary: schema.Health, Source: schema.Standard(), LargeSlot: schema.Weapon},
			{Archetype: bulwark, Tier: 5, Tertiary: schema.Weapon, Source: schema.Standard()},
		},
		Remaining:      schema.SlotBudget{Small: 2, Large: 2},
		TargetAchieved: true,
		Totals:         schema.Stats{75, 55, 35, 35, 10, 10},
		ArchetypeCount: 2,
	}
}

func TestDefaultPinName(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		expected string
	}{
		{"empty store", nil, "Combination 1"},
		{"sequential", []string{"Combination 1", "Combination 2"}, "Combination 3"},
		{"gap uses max", []string{"Combination 7", "Combination 2"}, "Combination 8"},
		{"custom names ignored", []string{"My build", "Combination x", "combination 4"}, "Combination 1"},
		{"suffix ignored", []string{"Combination 3 copy"}, "Combination 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pins := make([]schema.PinnedCombination, len(tt.existing))
			for i, n := range tt.existing {
				pins[i] = schema.PinnedCombination{Name: n}
			}
			assert.Equal(t, tt.expected, defaultPinName(pins))
		})
	}
}

func TestAddPinned(t *testing.T) {
	tiers := schema.DefaultTierTable()

	t.Run("default name and frozen magnitudes", func(t *testing.T) {
		store := &iocache.MockPinnedStore{}
		store.On("List").Return([]schema.PinnedCombination{{ID: "x", Name: "Combination 4"}}, nil)
		store.On("Add", mock.AnythingOfType("schema.PinnedCombination")).Return(nil)

		pin, err := AddPinned(store, sampleResult(t), "", tiers)
		require.NoError(t, err)

		assert.Equal(t, "Combination 5", pin.Name)
		assert.NotEmpty(t, pin.ID)
		assert.Equal(t, 2, pin.ArchetypeCount)
		assert.False(t, pin.IsCustomTier)
		assert.Nil(t, pin.CustomTierValues)
		assert.WithinDuration(t, time.Now(), pin.CreatedAt, time.Minute)
		for _, c := range pin.Components {
			assert.Equal(t, schema.StandardMagnitudes, c.Source.Kind)
			assert.Equal(t, tiers.Lookup(5), c.Source.Values)
		}
		store.AssertExpectations(t)
	})

	t.Run("explicit name is trimmed", func(t *testing.T) {
		store := &iocache.MockPinnedStore{}
		store.On("List").Return([]schema.PinnedCombination{}, nil)
		store.On("Add", mock.MatchedBy(func(p schema.PinnedCombination) bool {
			return p.Name == "Raid build"
		})).Return(nil)

		pin, err := AddPinned(store, sampleResult(t), "  Raid build ", tiers)
		require.NoError(t, err)
		assert.Equal(t, "Raid build", pin.Name)
		store.AssertExpectations(t)
	})

	t.Run("calculator chosen marks custom tier", func(t *testing.T) {
		store := &iocache.MockPinnedStore{}
		store.On("List").Return([]schema.PinnedCombination{}, nil)
		store.On("Add", mock.Anything).Return(nil)

		result := sampleResult(t)
		custom := schema.Magnitudes{Primary: 30, Secondary: 30, Tertiary: 10}
		result.Components[1].CalculatorChosen = true
		result.Components[1].Source = schema.Custom(custom)

		pin, err := AddPinned(store, result, "", tiers)
		require.NoError(t, err)
		assert.True(t, pin.IsCustomTier)
		require.NotNil(t, pin.CustomTierValues)
		assert.Equal(t, custom, *pin.CustomTierValues)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &iocache.MockPinnedStore{}
		store.On("List").Return([]schema.PinnedCombination{}, nil)
		store.On("Add", mock.Anything).Return(errors.New("disk full"))

		_, err := AddPinned(store, sampleResult(t), "", tiers)
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestRemoveAndRenamePinned(t *testing.T) {
	store := &iocache.MockPinnedStore{}
	store.On("Remove", "known").Return(true, nil)
	store.On("Remove", "missing").Return(false, nil)
	store.On("Rename", "known", "New name").Return(true, nil)
	store.On("Rename", "missing", "New name").Return(false, nil)

	assert.NoError(t, RemovePinned(store, "known"))
	assert.ErrorIs(t, RemovePinned(store, "missing"), ErrPinNotFound)

	assert.NoError(t, RenamePinned(store, "known", " New name "))
	assert.ErrorIs(t, RenamePinned(store, "missing", "New name"), ErrPinNotFound)
	assert.Error(t, RenamePinned(store, "known", "   "))

	store.AssertExpectations(t)
}

func TestExportPinned(t *testing.T) {
	store := &iocache.MockPinnedStore{}
	pins := []schema.PinnedCombination{{ID: "a", Name: "Combination 1", Components: sampleResult(t).Components}}
	store.On("List").Return(pins, nil)

	text, err := ExportPinned(store)
	require.NoError(t, err)
	assert.Contains(t, text, "\n  {")
	assert.Contains(t, text, `"combination"`)

	var decoded []schema.PinnedCombination
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "a", decoded[0].ID)
}

func TestImportPinned(t *testing.T) {
	tiers := schema.DefaultTierTable()

	tests := []struct {
		name    string
		text    string
		success bool
		message string
	}{
		{"not json", "{nope", false, "Error parsing JSON"},
		{"not an array", `{"id":"a"}`, false, "JSON must contain an array of combinations"},
		{"missing id", `[{"name":"x","combination":[]}]`, false, "Invalid combination format in JSON"},
		{"missing name", `[{"id":"a","combination":[]}]`, false, "Invalid combination format in JSON"},
		{"combination not array", `[{"id":"a","name":"x","combination":{}}]`, false, "Invalid combination format in JSON"},
		{"empty array", `[]`, true, "0 combination(s) imported successfully"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockPinnedStore{}
			store.On("List").Return([]schema.PinnedCombination{}, nil)

			report, err := ImportPinned(store, tt.text, tiers)
			require.NoError(t, err)
			assert.Equal(t, tt.success, report.Success)
			assert.Equal(t, tt.message, report.Message)
			store.AssertNotCalled(t, "Add", mock.Anything)
		})
	}

	t.Run("merges and skips existing ids", func(t *testing.T) {
		store := &iocache.MockPinnedStore{}
		store.On("List").Return([]schema.PinnedCombination{{ID: "a", Name: "Kept"}}, nil)
		store.On("Add", mock.MatchedBy(func(p schema.PinnedCombination) bool {
			return p.ID == "b" && !p.CreatedAt.IsZero()
		})).Return(nil).Once()

		text := `[
			{"id":"a","name":"Replacement","combination":[]},
			{"id":"b","name":"Fresh","combination":[]},
			{"id":"b","name":"Duplicate","combination":[]}
		]`
		report, err := ImportPinned(store, text, tiers)
		require.NoError(t, err)
		assert.True(t, report.Success)
		assert.Equal(t, 3, report.Imported)
		assert.Equal(t, 1, report.Added)
		assert.Equal(t, "3 combination(s) imported successfully", report.Message)
		store.AssertExpectations(t)
	})

	t.Run("round trip from export", func(t *testing.T) {
		source := &iocache.MockPinnedStore{}
		pins := []schema.PinnedCombination{{
			ID:         "z",
			Name:       "Combination 1",
			Components: sampleResult(t).Components,
			CreatedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		}}
		source.On("List").Return(pins, nil)
		text, err := ExportPinned(source)
		require.NoError(t, err)

		target := &iocache.MockPinnedStore{}
		target.On("List").Return([]schema.PinnedCombination{}, nil)
		target.On("Add", mock.MatchedBy(func(p schema.PinnedCombination) bool {
			return p.ID == "z" && len(p.Components) == 2 && p.ArchetypeCount == 2
		})).Return(nil)

		report, err := ImportPinned(target, text, tiers)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Added)
		target.AssertExpectations(t)
	})
}

func TestIsPinned(t *testing.T) {
	result := sampleResult(t)
	pins := []schema.PinnedCombination{{ID: "a", Components: result.Components}}
	assert.True(t, IsPinned(pins, result))

	// Slot assignments do not change identity.
	moved := result
	moved.Components = schema.CloneComponents(result.Components)
	moved.Components[0].LargeSlot = ""
	moved.Components[0].SmallSlot = schema.Health
	assert.True(t, IsPinned(pins, moved))

	other := result
	other.Components = schema.CloneComponents(result.Components)
	other.Components[0].Exotic = true
	assert.False(t, IsPinned(pins, other))
	assert.False(t, IsPinned(nil, result))
}

func TestPinnedCustomTierSurvivesExportImport(t *testing.T) {
	custom := schema.Magnitudes{Primary: 10, Secondary: 10, Tertiary: 10}
	customTiers := schema.DefaultTierTable().WithCustom(custom)

	result := sampleResult(t)
	for i := range result.Components {
		result.Components[i].Tier = schema.CustomTierID
	}
	result.Totals = algo.TotalStats(result.Components, customTiers)

	var saved schema.PinnedCombination
	source := &iocache.MockPinnedStore{}
	source.On("List").Return([]schema.PinnedCombination{}, nil).Once()
	source.On("Add", mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(0).(schema.PinnedCombination)
	}).Return(nil)

	pin, err := AddPinned(source, result, "Custom", customTiers)
	require.NoError(t, err)
	assert.Equal(t, result.Totals, pin.TotalStats)
	assert.True(t, pin.IsCustomTier)

	source.On("List").Return([]schema.PinnedCombination{saved}, nil)
	text, err := ExportPinned(source)
	require.NoError(t, err)

	var imported schema.PinnedCombination
	target := &iocache.MockPinnedStore{}
	target.On("List").Return([]schema.PinnedCombination{}, nil)
	target.On("Add", mock.Anything).Run(func(args mock.Arguments) {
		imported = args.Get(0).(schema.PinnedCombination)
	}).Return(nil)

	// The importing side only knows the default tiers.
	report, err := ImportPinned(target, text, schema.DefaultTierTable())
	require.NoError(t, err)
	require.Equal(t, 1, report.Added)

	for _, c := range imported.Components {
		assert.Equal(t, custom, c.Source.Values)
	}
	assert.Equal(t, pin.TotalStats, imported.TotalStats)
	assert.Equal(t, pin.TotalStats, algo.TotalStats(imported.Components, schema.DefaultTierTable()))
}

func TestAddPinned_KeepsInsertionOrder(t *testing.T) {
	store, err := iocache.NewPinnedStore("pinned_combinations", schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var want []string
	for i := 1; i <= 8; i++ {
		name := fmt.Sprintf("pin-%d", i)
		_, err := AddPinned(store, sampleResult(t), name, schema.DefaultTierTable())
		require.NoError(t, err)
		want = append(want, name)
	}

	pins, err := ListPinned(store)
	require.NoError(t, err)
	got := make([]string, len(pins))
	for i, p := range pins {
		got[i] = p.Name
	}
	assert.Equal(t, want, got)
}

func TestNextCreatedAt(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond)
	next := nextCreatedAt([]schema.PinnedCombination{{CreatedAt: future}, {CreatedAt: future.Add(-time.Minute)}})
	assert.Equal(t, future.Add(time.Microsecond), next)

	next = nextCreatedAt(nil)
	assert.WithinDuration(t, time.Now(), next, time.Minute)
	assert.Equal(t, next, next.Truncate(time.Microsecond))
}
