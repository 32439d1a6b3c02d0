package algo

import (
	"iter"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/loadout/schema"
)

// Pair is one (archetype, tertiary attribute) choice for a free component slot.
type Pair struct {
	Archetype schema.Archetype
	Tertiary  schema.Attribute
}

// RankArchetypes orders archetypes so that those whose primary and secondary
// attributes are most in demand come first. Catalog order breaks ties.
func RankArchetypes(catalog []schema.Archetype, targets schema.Stats) []schema.Archetype {
	ranked := slices.Clone(catalog)
	heuristic := func(a schema.Archetype) int {
		return -(targets.Get(a.Primary) + targets.Get(a.Secondary))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return heuristic(ranked[i]) < heuristic(ranked[j])
	})
	return ranked
}

// TertiaryChoices returns the tertiary attributes worth trying for an archetype:
// the allowed ones with a nonzero target, or every allowed one when none has.
func TertiaryChoices(a schema.Archetype, targets schema.Stats) []schema.Attribute {
	var wanted []schema.Attribute
	for _, t := range a.Tertiaries {
		if !a.AllowsTertiary(t) {
			continue
		}
		if targets.Get(t) > 0 {
			wanted = append(wanted, t)
		}
	}
	if len(wanted) > 0 {
		return wanted
	}
	var all []schema.Attribute
	for _, t := range a.Tertiaries {
		if a.AllowsTertiary(t) {
			all = append(all, t)
		}
	}
	return all
}

// BuildPairs expands ranked archetypes into the ordered pair list used by the generator.
func BuildPairs(catalog []schema.Archetype, targets schema.Stats) []Pair {
	var pairs []Pair
	for _, a := range RankArchetypes(catalog, targets) {
		for _, t := range TertiaryChoices(a, targets) {
			pairs = append(pairs, Pair{Archetype: a, Tertiary: t})
		}
	}
	return pairs
}

// CombinationKey is the order-independent identity of an assortment's
// (archetype, tertiary) choices.
func CombinationKey(components []schema.Component) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = c.Archetype.Name + "-" + string(c.Tertiary)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// Generator lazily enumerates candidate assortments: every multiset of pairs
// filling the free slots, followed by the fixed components.
type Generator struct {
	pairs     []Pair
	fixed     []schema.Component
	free      int
	tier      int
	deadline  time.Time
	truncated bool
}

// NewGenerator creates a generator for the given targets and fixed components.
// A zero deadline disables the wall-clock cutoff.
func NewGenerator(catalog []schema.Archetype, targets schema.Stats, tier int, fixed []schema.Component, deadline time.Time) *Generator {
	free := max(schema.AssortmentSize-len(fixed), 0)
	return &Generator{
		pairs:    BuildPairs(catalog, targets),
		fixed:    fixed,
		free:     free,
		tier:     tier,
		deadline: deadline,
	}
}

// Truncated reports whether enumeration stopped because the deadline passed.
func (g *Generator) Truncated() bool {
	return g.truncated
}

// Candidates yields each distinct candidate assortment in generator order.
// Indices are enumerated non-decreasing, which visits every multiset once at
// the position of its first ordered occurrence.
func (g *Generator) Candidates() iter.Seq[[]schema.Component] {
	return func(yield func([]schema.Component) bool) {
		if g.free == 0 {
			yield(schema.CloneComponents(g.fixed))
			return
		}
		if len(g.pairs) == 0 {
			return
		}

		seen := make(map[string]struct{})
		idx := make([]int, g.free)
		for {
			if !g.deadline.IsZero() && time.Now().After(g.deadline) {
				g.truncated = true
				return
			}

			selection := make([]schema.Component, 0, schema.AssortmentSize)
			for _, i := range idx {
				p := g.pairs[i]
				selection = append(selection, schema.Component{
					Archetype: p.Archetype.Clone(),
					Tier:      g.tier,
					Tertiary:  p.Tertiary,
					Source:    schema.Standard(),
				})
			}

			key := CombinationKey(selection)
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				selection = append(selection, schema.CloneComponents(g.fixed)...)
				if !yield(selection) {
					return
				}
			}

			if !advance(idx, len(g.pairs)) {
				return
			}
		}
	}
}

// advance moves idx to the next non-decreasing tuple over [0, n). It returns
// false once every tuple has been produced.
func advance(idx []int, n int) bool {
	pos := len(idx) - 1
	for pos >= 0 && idx[pos] == n-1 {
		pos--
	}
	if pos < 0 {
		return false
	}
	idx[pos]++
	for i := pos + 1; i < len(idx); i++ {
		idx[i] = idx[pos]
	}
	return true
}
