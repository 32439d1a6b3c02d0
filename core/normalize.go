package core

import (
	"github.com/huangsam/loadout/schema"
)

// NormalizeRequest clamps out-of-range input instead of rejecting it.
// Unknown tiers fall back to the default tier.
func NormalizeRequest(req schema.SearchRequest) schema.SearchRequest {
	out := req
	out.Targets = schema.ClampTargets(out.Targets)

	if !out.Tiers.Has(schema.DefaultTier) {
		out.Tiers = schema.DefaultTierTable()
	}
	if !out.Tiers.Has(out.Tier) {
		out.Tier = schema.DefaultTier
	}

	out.Slots = schema.ClampSlots(out.Slots)

	if len(out.Fixed) > schema.AssortmentSize {
		out.Fixed = out.Fixed[:schema.AssortmentSize]
	}
	fixed := make([]schema.FixedSpec, len(out.Fixed))
	for i, spec := range out.Fixed {
		if spec.Magnitudes != nil {
			m := schema.ClampMagnitudes(*spec.Magnitudes)
			spec.Magnitudes = &m
		}
		fixed[i] = spec
	}
	out.Fixed = fixed

	if out.TimeBudget < 0 {
		out.TimeBudget = 0
	}
	return out
}
