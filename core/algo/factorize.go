package algo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huangsam/loadout/schema"
)

// FactorKey identifies results that are the same effective solution: equal
// archetype composition and equal total vector. Calculator-chosen non-exotic
// components also carry their literal magnitudes, since those vary freely.
func FactorKey(r schema.SearchResult, table schema.TierTable) string {
	names := make([]string, len(r.Components))
	for i, c := range r.Components {
		name := c.Archetype.Name
		if c.CalculatorChosen && !c.Exotic {
			m := c.Source.Resolve(table, c.Tier)
			name = fmt.Sprintf("%s:%d/%d/%d", name, m.Primary, m.Secondary, m.Tertiary)
		}
		names[i] = name
	}
	sort.Strings(names)

	totals := make([]string, 0, schema.AttributeCount)
	for i, a := range schema.AllAttributes {
		totals = append(totals, fmt.Sprintf("%s=%d", a, r.Totals[i]))
	}
	sort.Strings(totals)

	return strings.Join(names, ",") + "#" + strings.Join(totals, ",")
}

// Factorize keeps the first result for every distinct FactorKey, preserving order.
func Factorize(results []schema.SearchResult, table schema.TierTable) []schema.SearchResult {
	seen := make(map[string]struct{}, len(results))
	kept := make([]schema.SearchResult, 0, len(results))
	for _, r := range results {
		key := FactorKey(r, table)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}
	return kept
}

// PinKey identifies a pinned assortment by its essential per-component properties.
func PinKey(components []schema.Component) string {
	parts := make([]string, len(components))
	for i, c := range components {
		kind := "normal"
		if c.Exotic {
			kind = "exotic"
		}
		choice := "fixed"
		if c.CalculatorChosen {
			choice = "letcalc"
		}
		parts[i] = fmt.Sprintf("%s-%s-%d-%s-%s", c.Archetype.Name, c.Tertiary, c.Tier, kind, choice)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
