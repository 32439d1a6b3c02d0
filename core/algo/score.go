package algo

import "github.com/huangsam/loadout/schema"

// Shortfall returns the sum of squared positive gaps between target and actual.
// Overshoot contributes nothing.
func Shortfall(actual, target schema.Stats) int {
	score := 0
	for i := range actual {
		if diff := target[i] - actual[i]; diff > 0 {
			score += diff * diff
		}
	}
	return score
}

// TargetAchieved reports whether every attribute meets its target.
func TargetAchieved(actual, target schema.Stats) bool {
	for i := range actual {
		if actual[i] < target[i] {
			return false
		}
	}
	return true
}

// LargestGap returns the attribute with the largest positive gap, first in
// canonical order on ties. The gap is zero when every target is met.
func LargestGap(actual, target schema.Stats) (schema.Attribute, int) {
	var best schema.Attribute
	gap := 0
	for i, a := range schema.AllAttributes {
		if diff := target[i] - actual[i]; diff > gap {
			gap = diff
			best = a
		}
	}
	return best, gap
}
