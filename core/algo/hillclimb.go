package algo

import "github.com/huangsam/loadout/schema"

// slotMove is a candidate slot assignment considered by the hill-climber.
type slotMove struct {
	index       int
	large       bool
	improvement int
}

// AssignSlots greedily assigns small and large slots to reduce the shortfall.
// Each round targets the attribute with the largest gap and commits the single
// best (component, slot type) move; the first move found wins ties. The input
// slice is not modified. It returns the slotted copy and the unused budget.
func AssignSlots(components []schema.Component, targets schema.Stats, budget schema.SlotBudget, table schema.TierTable) ([]schema.Component, schema.SlotBudget) {
	pieces := schema.CloneComponents(components)
	remaining := budget
	current := TotalStats(pieces, table)

	for remaining.Total() > 0 {
		attr, gap := LargestGap(current, targets)
		if gap <= 0 {
			break
		}

		baseScore := Shortfall(current, targets)
		best := slotMove{index: -1}
		for i, piece := range pieces {
			if piece.HasSlot() {
				continue
			}
			// A slot only touches attr on this component, so the new total is the
			// current total plus the bonus.
			if remaining.Small > 0 {
				trial := current
				trial.AddTo(attr, schema.SmallSlotBonus)
				if gain := baseScore - Shortfall(trial, targets); best.index < 0 || gain > best.improvement {
					best = slotMove{index: i, large: false, improvement: gain}
				}
			}
			if remaining.Large > 0 {
				trial := current
				trial.AddTo(attr, schema.LargeSlotBonus)
				if gain := baseScore - Shortfall(trial, targets); best.index < 0 || gain > best.improvement {
					best = slotMove{index: i, large: true, improvement: gain}
				}
			}
		}

		if best.index < 0 || best.improvement <= 0 {
			break
		}

		if best.large {
			pieces[best.index].LargeSlot = attr
			remaining.Large--
			current.AddTo(attr, schema.LargeSlotBonus)
		} else {
			pieces[best.index].SmallSlot = attr
			remaining.Small--
			current.AddTo(attr, schema.SmallSlotBonus)
		}
	}

	return pieces, remaining
}

// Evaluate slot-climbs an assortment and packages it as a SearchResult.
func Evaluate(components []schema.Component, targets schema.Stats, budget schema.SlotBudget, table schema.TierTable) schema.SearchResult {
	pieces, remaining := AssignSlots(components, targets, budget, table)
	totals := TotalStats(pieces, table)
	return schema.SearchResult{
		Components:     pieces,
		Remaining:      remaining,
		Score:          Shortfall(totals, targets),
		TargetAchieved: TargetAchieved(totals, targets),
		Totals:         totals,
		ArchetypeCount: CountArchetypes(pieces),
	}
}
