package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/schema"
)

// WriteJSONSearch marshals the search outcome to JSON and writes it. The MCP
// server and the lambda handler share this layout with --output json.
func WriteJSONSearch(w io.Writer, outcome schema.SearchOutcome, targets schema.Stats, pinned []bool) error {
	type JSONSearchResult struct {
		Rank     int     `json:"rank"`
		Label    string  `json:"label"`
		Coverage float64 `json:"coverage"`
		Pinned   bool    `json:"pinned"`
		schema.SearchResult
	}
	type JSONSearchOutput struct {
		Targets    schema.Stats       `json:"targets"`
		Results    []JSONSearchResult `json:"results"`
		Evaluated  int                `json:"evaluated"`
		Truncated  bool               `json:"truncated"`
		DurationMS int64              `json:"duration_ms"`
	}

	results := make([]JSONSearchResult, len(outcome.Results))
	for i, r := range outcome.Results {
		results[i] = JSONSearchResult{
			Rank:         i + 1,
			Label:        contract.GetPlainLabel(r.TargetAchieved),
			Coverage:     targetCoverage(r.Totals, targets),
			Pinned:       i < len(pinned) && pinned[i],
			SearchResult: r,
		}
	}

	return writeJSON(w, JSONSearchOutput{
		Targets:    targets,
		Results:    results,
		Evaluated:  outcome.Evaluated,
		Truncated:  outcome.Truncated,
		DurationMS: outcome.Duration.Milliseconds(),
	})
}

// writeCSVSearch writes ranked results as CSV with one column per attribute.
func writeCSVSearch(w io.Writer, results []schema.SearchResult, targets schema.Stats, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"rank", "components"}
	header = append(header, statsColumns()...)
	header = append(header, "score", "coverage", "small_remaining", "large_remaining", "archetype_count", "label")

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			row := []string{strconv.Itoa(i + 1), componentsCell(r.Components)}
			row = append(row, statsCells(r.Totals, intFmt)...)
			row = append(row,
				fmt.Sprintf(intFmt, r.Score),
				fmtFloat(targetCoverage(r.Totals, targets)),
				fmt.Sprintf(intFmt, r.Remaining.Small),
				fmt.Sprintf(intFmt, r.Remaining.Large),
				fmt.Sprintf(intFmt, r.ArchetypeCount),
				contract.GetPlainLabel(r.TargetAchieved),
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
