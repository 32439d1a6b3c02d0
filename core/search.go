package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/loadout/core/algo"
	"github.com/huangsam/loadout/schema"
)

// searcher carries the state shared by every branch of one search.
type searcher struct {
	req       schema.SearchRequest
	catalog   []schema.Archetype
	choices   []algo.Pair
	deadline  time.Time
	evaluated int
	truncated bool
	achieving []schema.SearchResult
	fallback  *schema.SearchResult
}

// Search runs the combination search for a request. It never fails: inputs are
// clamped first, and unsatisfiable targets yield the single best attempt.
func Search(req schema.SearchRequest) schema.SearchOutcome {
	start := time.Now()
	req = NormalizeRequest(req)

	s := &searcher{req: req, catalog: schema.Archetypes()}
	s.choices = openChoices(s.catalog)
	if req.TimeBudget > 0 {
		s.deadline = start.Add(req.TimeBudget)
	}

	fixed, open := resolveFixedSpecs(req.Fixed, req.Tier)
	s.branch(fixed, open, 0)

	outcome := schema.SearchOutcome{
		Evaluated: s.evaluated,
		Truncated: s.truncated,
	}
	switch {
	case len(s.achieving) > 0:
		results := dedupeMerged(s.achieving)
		if req.Factorize {
			results = algo.Factorize(results, req.Tiers)
		}
		outcome.Results = algo.RankResults(results, schema.MaxResults)
	case s.fallback != nil:
		outcome.Results = []schema.SearchResult{*s.fallback}
	default:
		outcome.Results = []schema.SearchResult{}
	}
	outcome.Duration = time.Since(start)
	return outcome
}

// expired reports whether the shared deadline has passed.
func (s *searcher) expired() bool {
	if s.deadline.IsZero() || time.Now().Before(s.deadline) {
		return false
	}
	s.truncated = true
	return true
}

// branch expands the first open spec over every archetype and allowed tertiary,
// then recurses until only fully specified components remain. Identical open
// specs are adjacent, and a run of them only takes non-decreasing choices so
// each multiset of choices is searched once.
func (s *searcher) branch(fixed []schema.Component, open []schema.FixedSpec, start int) {
	if len(open) == 0 {
		s.searchFixed(fixed)
		return
	}
	spec, rest := open[0], open[1:]
	sameNext := len(rest) > 0 && openSpecKey(rest[0]) == openSpecKey(spec)
	for i := start; i < len(s.choices); i++ {
		if s.expired() {
			return
		}
		choice := s.choices[i]
		c := schema.Component{
			Archetype:        choice.Archetype.Clone(),
			Tier:             s.req.Tier,
			Tertiary:         choice.Tertiary,
			Source:           sourceFor(spec),
			Fixed:            true,
			Exotic:           spec.Exotic,
			CalculatorChosen: true,
		}
		next := append(schema.CloneComponents(fixed), c)
		nextStart := 0
		if sameNext {
			nextStart = i
		}
		s.branch(next, rest, nextStart)
	}
}

// searchFixed runs one generator pass around a fixed component set.
func (s *searcher) searchFixed(fixed []schema.Component) {
	gen := algo.NewGenerator(s.catalog, s.req.Targets, s.req.Tier, fixed, s.deadline)

	var seen map[string]struct{}
	if s.req.Factorize {
		seen = make(map[string]struct{})
	}
	found := 0
	for candidate := range gen.Candidates() {
		result := algo.Evaluate(candidate, s.req.Targets, s.req.Slots, s.req.Tiers)
		s.evaluated++

		if !result.TargetAchieved {
			if s.fallback == nil || result.Score < s.fallback.Score {
				r := result
				s.fallback = &r
			}
			continue
		}

		if seen != nil {
			key := algo.FactorKey(result, s.req.Tiers)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		s.achieving = append(s.achieving, result)
		found++
		if found >= schema.MaxResults {
			break
		}
	}
	if gen.Truncated() {
		s.truncated = true
	}
}

// openChoices lists every archetype and allowed tertiary in catalog order.
func openChoices(catalog []schema.Archetype) []algo.Pair {
	var choices []algo.Pair
	for _, a := range catalog {
		for _, t := range a.Tertiaries {
			if a.AllowsTertiary(t) {
				choices = append(choices, algo.Pair{Archetype: a, Tertiary: t})
			}
		}
	}
	return choices
}

// openSpecKey identifies open specs that produce interchangeable components.
func openSpecKey(spec schema.FixedSpec) string {
	m := "tier"
	if spec.Magnitudes != nil {
		m = spec.Magnitudes.String()
	}
	return fmt.Sprintf("%s|%t", m, spec.Exotic)
}

// dedupeMerged drops results that repeat an earlier assortment with the same
// totals. Different fixed sets can reach the same assortment.
func dedupeMerged(results []schema.SearchResult) []schema.SearchResult {
	seen := make(map[string]struct{}, len(results))
	kept := make([]schema.SearchResult, 0, len(results))
	for _, r := range results {
		key := algo.PinKey(r.Components) + "#" + r.Totals.Format()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}
	return kept
}

// resolveFixedSpecs turns caller specs into fixed components. Specs that leave
// the archetype to the calculator are returned separately for branching.
func resolveFixedSpecs(specs []schema.FixedSpec, tier int) ([]schema.Component, []schema.FixedSpec) {
	var fixed []schema.Component
	var open []schema.FixedSpec
	for _, spec := range specs {
		if spec.LetCalculatorChoose || (spec.Archetype == "" && spec.Primary == "") {
			open = append(open, spec)
			continue
		}
		fixed = append(fixed, resolveSpec(spec, tier))
	}
	sort.SliceStable(open, func(i, j int) bool {
		return openSpecKey(open[i]) < openSpecKey(open[j])
	})
	return fixed, open
}

// resolveSpec builds a component from a fully specified spec. Unknown archetype
// names are treated as custom archetypes built from the spec's attributes.
func resolveSpec(spec schema.FixedSpec, tier int) schema.Component {
	a, ok := schema.FindArchetype(spec.Archetype)
	if !ok {
		a = schema.CustomArchetypeFor(spec.Primary, spec.Secondary, spec.Tertiary)
	}
	tertiary := spec.Tertiary
	if !a.AllowsTertiary(tertiary) {
		tertiary = firstAllowedTertiary(a)
	}
	return schema.Component{
		Archetype: a,
		Tier:      tier,
		Tertiary:  tertiary,
		Source:    sourceFor(spec),
		Fixed:     true,
		Exotic:    spec.Exotic,
	}
}

func sourceFor(spec schema.FixedSpec) schema.MagnitudeSource {
	if spec.Magnitudes != nil {
		return schema.Custom(*spec.Magnitudes)
	}
	return schema.Standard()
}

func firstAllowedTertiary(a schema.Archetype) schema.Attribute {
	for _, t := range a.Tertiaries {
		if a.AllowsTertiary(t) {
			return t
		}
	}
	return ""
}
