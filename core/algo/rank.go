package algo

import (
	"sort"

	"github.com/huangsam/loadout/schema"
)

// RankResults sorts results by distinct archetype count, then shortfall score,
// both ascending, and returns at most 'limit' of them. The sort is stable so
// generator order breaks remaining ties.
func RankResults(results []schema.SearchResult, limit int) []schema.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ArchetypeCount != results[j].ArchetypeCount {
			return results[i].ArchetypeCount < results[j].ArchetypeCount
		}
		return results[i].Score < results[j].Score
	})
	if limit >= 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
