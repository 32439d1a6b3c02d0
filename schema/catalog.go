package schema

import (
	"maps"
	"slices"
	"strings"
)

// archetypes is the fixed reference catalog. Order is significant: it breaks
// ties when the generator ranks archetypes.
var archetypes = []Archetype{
	{Name: "Grenadier", Primary: Grenade, Secondary: Super, Tertiaries: []Attribute{Weapon, Health, Class, Melee}},
	{Name: "Brawler", Primary: Melee, Secondary: Health, Tertiaries: []Attribute{Weapon, Class, Grenade, Super}},
	{Name: "Gunner", Primary: Weapon, Secondary: Grenade, Tertiaries: []Attribute{Health, Class, Melee, Super}},
	{Name: "Specialist", Primary: Class, Secondary: Weapon, Tertiaries: []Attribute{Health, Grenade, Melee, Super}},
	{Name: "Paragon", Primary: Super, Secondary: Melee, Tertiaries: []Attribute{Weapon, Health, Class, Grenade}},
	{Name: "Bulwark", Primary: Health, Secondary: Class, Tertiaries: []Attribute{Weapon, Grenade, Melee, Super}},
}

// Archetypes returns a copy of the reference catalog.
func Archetypes() []Archetype {
	out := make([]Archetype, len(archetypes))
	for i, a := range archetypes {
		out[i] = a.Clone()
	}
	return out
}

// FindArchetype looks up a catalog archetype by case-insensitive name.
func FindArchetype(name string) (Archetype, bool) {
	for _, a := range archetypes {
		if strings.EqualFold(a.Name, strings.TrimSpace(name)) {
			return a.Clone(), true
		}
	}
	return Archetype{}, false
}

// CustomArchetypeFor builds an ad-hoc archetype for a fixed component whose
// attributes are chosen by the user rather than the catalog.
func CustomArchetypeFor(primary, secondary, tertiary Attribute) Archetype {
	tertiaries := []Attribute{tertiary}
	if !tertiary.Valid() || tertiary == primary || tertiary == secondary {
		tertiaries = tertiaries[:0]
		for _, a := range AllAttributes {
			if a != primary && a != secondary {
				tertiaries = append(tertiaries, a)
			}
		}
	}
	return Archetype{Name: CustomArchetype, Primary: primary, Secondary: secondary, Tertiaries: tertiaries}
}

// TierTable maps tier ids to magnitudes. Values are never mutated after
// construction; WithCustom returns an extended copy.
type TierTable struct {
	tiers map[int]Magnitudes
}

// DefaultTierTable returns the standard tiers 1 to 5.
func DefaultTierTable() TierTable {
	return TierTable{tiers: map[int]Magnitudes{
		1: {Primary: 25, Secondary: 15, Tertiary: 10},
		2: {Primary: 30, Secondary: 15, Tertiary: 10},
		3: {Primary: 30, Secondary: 20, Tertiary: 10},
		4: {Primary: 30, Secondary: 25, Tertiary: 15},
		5: {Primary: 30, Secondary: 25, Tertiary: 20},
	}}
}

// DefaultCustomTier is the custom tier preset.
var DefaultCustomTier = Magnitudes{Primary: 30, Secondary: 25, Tertiary: 20}

// WithCustom returns a copy of the table extended with the custom tier entry.
func (t TierTable) WithCustom(m Magnitudes) TierTable {
	tiers := make(map[int]Magnitudes, len(t.tiers)+1)
	maps.Copy(tiers, t.tiers)
	tiers[CustomTierID] = m
	return TierTable{tiers: tiers}
}

// Has reports whether the table defines tier id.
func (t TierTable) Has(id int) bool {
	_, ok := t.tiers[id]
	return ok
}

// Lookup returns the magnitudes for id, falling back to the default tier.
// A zero-value table behaves like DefaultTierTable.
func (t TierTable) Lookup(id int) Magnitudes {
	if t.tiers == nil {
		return DefaultTierTable().Lookup(id)
	}
	if m, ok := t.tiers[id]; ok {
		return m
	}
	return t.tiers[DefaultTier]
}

// IDs returns the tier ids in ascending order.
func (t TierTable) IDs() []int {
	if t.tiers == nil {
		return DefaultTierTable().IDs()
	}
	return slices.Sorted(maps.Keys(t.tiers))
}
