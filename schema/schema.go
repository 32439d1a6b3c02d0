// Package schema has models, catalog data and constants for all parts of loadout.
package schema

import (
	"slices"
	"time"
)

// Archetype is an immutable catalog template. Primary and Secondary are the two
// attributes a component of this archetype always targets; the tertiary attribute
// is picked from Tertiaries.
type Archetype struct {
	Name       string      `json:"name"`
	Primary    Attribute   `json:"mainStat"`
	Secondary  Attribute   `json:"subStat"`
	Tertiaries []Attribute `json:"possibleThirdStats"`
}

// AllowsTertiary reports whether a is a legal tertiary attribute for the archetype.
func (a Archetype) AllowsTertiary(attr Attribute) bool {
	if attr == a.Primary || attr == a.Secondary {
		return false
	}
	return slices.Contains(a.Tertiaries, attr)
}

// Clone returns a deep copy so callers never alias catalog storage.
func (a Archetype) Clone() Archetype {
	a.Tertiaries = slices.Clone(a.Tertiaries)
	return a
}

// Magnitudes are the three values a component grants to its primary,
// secondary and tertiary attributes.
type Magnitudes struct {
	Primary   int `json:"main" mapstructure:"main"`
	Secondary int `json:"sub" mapstructure:"sub"`
	Tertiary  int `json:"third" mapstructure:"third"`
}

// MagnitudeSource is a tagged variant: Standard magnitudes come from the tier
// table, Custom magnitudes are carried explicitly and always win. A Standard
// source with non-zero Values has been frozen and no longer reads the table.
type MagnitudeSource struct {
	Kind   MagnitudeKind `json:"kind"`
	Values Magnitudes    `json:"values,omitzero"`
}

// Standard returns a tier-derived magnitude source.
func Standard() MagnitudeSource {
	return MagnitudeSource{Kind: StandardMagnitudes}
}

// Custom returns an explicit magnitude source.
func Custom(m Magnitudes) MagnitudeSource {
	return MagnitudeSource{Kind: CustomMagnitudes, Values: m}
}

// Frozen reports whether the source carries recorded values.
func (s MagnitudeSource) Frozen() bool {
	return s.Values != (Magnitudes{})
}

// Resolve returns the magnitudes for a component of the given tier.
func (s MagnitudeSource) Resolve(table TierTable, tier int) Magnitudes {
	switch s.Kind {
	case CustomMagnitudes:
		return s.Values
	default:
		if s.Frozen() {
			return s.Values
		}
		return table.Lookup(tier)
	}
}

// Component is one member of an assortment. SmallSlot and LargeSlot are empty
// when unassigned; at most one of them is ever set.
type Component struct {
	Archetype        Archetype       `json:"pattern"`
	Tier             int             `json:"tier"`
	Tertiary         Attribute       `json:"thirdStat"`
	SmallSlot        Attribute       `json:"smallMod,omitempty"`
	LargeSlot        Attribute       `json:"largeMod,omitempty"`
	Source           MagnitudeSource `json:"magnitudes"`
	Fixed            bool            `json:"isFixed,omitempty"`
	Exotic           bool            `json:"isExotic,omitempty"`
	CalculatorChosen bool            `json:"letCalculatorChoose,omitempty"`
}

// HasSlot reports whether the component already holds a slot assignment.
func (c Component) HasSlot() bool {
	return c.SmallSlot != "" || c.LargeSlot != ""
}

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	c.Archetype = c.Archetype.Clone()
	return c
}

// CloneComponents deep-copies a component slice.
func CloneComponents(cs []Component) []Component {
	out := make([]Component, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}

// SlotBudget is the pool of enhancement slots available to an assortment.
type SlotBudget struct {
	Small int `json:"small"`
	Large int `json:"large"`
}

// Total returns the combined slot count.
func (b SlotBudget) Total() int {
	return b.Small + b.Large
}

// SearchResult is one evaluated assortment.
type SearchResult struct {
	Components     []Component `json:"combination"`
	Remaining      SlotBudget  `json:"remainingMods"`
	Score          int         `json:"score"`
	TargetAchieved bool        `json:"isTargetAchieved"`
	Totals         Stats       `json:"totalStats"`
	ArchetypeCount int         `json:"archetypeCount"`
}

// FixedSpec describes a pre-fixed component as supplied by a caller. An empty
// Archetype (or LetCalculatorChoose) asks the engine to try every archetype.
type FixedSpec struct {
	Archetype           string      `json:"archetype,omitempty" mapstructure:"archetype"`
	Primary             Attribute   `json:"primary,omitempty" mapstructure:"primary"`
	Secondary           Attribute   `json:"secondary,omitempty" mapstructure:"secondary"`
	Tertiary            Attribute   `json:"tertiary,omitempty" mapstructure:"tertiary"`
	Magnitudes          *Magnitudes `json:"magnitudes,omitempty" mapstructure:"magnitudes"`
	Exotic              bool        `json:"exotic,omitempty" mapstructure:"exotic"`
	LetCalculatorChoose bool        `json:"letCalculatorChoose,omitempty" mapstructure:"let-calculator-choose"`
}

// SearchRequest is the single entry point input of the search engine.
type SearchRequest struct {
	Targets    Stats         `json:"targets"`
	Tier       int           `json:"tier"`
	Tiers      TierTable     `json:"-"`
	Slots      SlotBudget    `json:"slots"`
	Fixed      []FixedSpec   `json:"fixed,omitempty"`
	Factorize  bool          `json:"factorize"`
	// TimeBudget bounds the whole search. Zero means no deadline.
	TimeBudget time.Duration `json:"-"`
}

// SearchOutcome wraps the ranked results with bookkeeping about the run.
type SearchOutcome struct {
	Results   []SearchResult `json:"results"`
	Evaluated int            `json:"evaluated"`
	Truncated bool           `json:"truncated"`
	Duration  time.Duration  `json:"duration"`
}

// Achieved reports whether the outcome holds target-achieving results.
func (o SearchOutcome) Achieved() bool {
	return len(o.Results) > 0 && o.Results[0].TargetAchieved
}
