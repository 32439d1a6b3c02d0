// Package algo holds the pure building blocks of the combination search:
// contribution, scoring, candidate generation, slot assignment, factorization
// and ranking.
package algo

import "github.com/huangsam/loadout/schema"

// ComponentStats computes the six-attribute vector contributed by one component.
// Every attribute starts at the floor; the resolved magnitudes replace the floor
// on the primary, secondary and tertiary attributes; slot bonuses are added last.
func ComponentStats(c schema.Component, table schema.TierTable) schema.Stats {
	var s schema.Stats
	for i := range s {
		s[i] = schema.AttributeFloor
	}

	m := c.Source.Resolve(table, c.Tier)
	s.Set(c.Archetype.Primary, m.Primary)
	s.Set(c.Archetype.Secondary, m.Secondary)
	s.Set(c.Tertiary, m.Tertiary)

	if c.SmallSlot != "" {
		s.AddTo(c.SmallSlot, schema.SmallSlotBonus)
	} else if c.LargeSlot != "" {
		s.AddTo(c.LargeSlot, schema.LargeSlotBonus)
	}
	return s
}

// TotalStats sums the contribution vectors of all components.
func TotalStats(components []schema.Component, table schema.TierTable) schema.Stats {
	var total schema.Stats
	for _, c := range components {
		total = total.Add(ComponentStats(c, table))
	}
	return total
}

// CountArchetypes returns the number of distinct archetype names.
func CountArchetypes(components []schema.Component) int {
	seen := make(map[string]struct{}, len(components))
	for _, c := range components {
		seen[c.Archetype.Name] = struct{}{}
	}
	return len(seen)
}
