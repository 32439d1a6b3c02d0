package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/internal/parquet"
	"github.com/huangsam/loadout/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSearchResults outputs the search outcome, dispatching based on the output format configured.
// pinned marks which results are already saved; it may be nil.
func PrintSearchResults(outcome schema.SearchOutcome, cfg *contract.Config, pinned []bool) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteJSONSearch(w, outcome, cfg.Targets, pinned)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSearch(w, outcome.Results, cfg.Targets, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteResultsParquet(w, parquet.ConvertResults(outcome.Results))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := WriteSearchTable(os.Stdout, outcome, cfg, pinned); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// WriteSearchTable renders ranked results as a table followed by a summary.
func WriteSearchTable(w io.Writer, outcome schema.SearchOutcome, cfg *contract.Config, pinned []bool) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	maxWidth := getMaxComponentWidth(cfg)

	if len(outcome.Results) == 0 {
		fmt.Fprintln(w, "No combinations found.")
		fmt.Fprintf(w, "Search completed in %v (%d evaluated)\n", outcome.Duration, outcome.Evaluated)
		return nil
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Components"}
	headers = append(headers, statsColumns()...)
	headers = append(headers, "Score", "Cover", "Slots", "Label")
	table.Header(headers)

	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
		c.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight, tw.AlignLeft}
	})

	var data [][]string
	for i, r := range outcome.Results {
		rank := strconv.Itoa(i + 1)
		if i < len(pinned) && pinned[i] {
			rank += " *"
		}
		row := []string{rank, componentLines(r.Components, maxWidth)}
		row = append(row, statsTableCells(r.Totals, cfg.Targets, cfg.UseColors)...)
		row = append(row,
			strconv.Itoa(r.Score),
			fmtFloat(targetCoverage(r.Totals, cfg.Targets))+"%",
			formatSlots(r.Remaining),
			targetLabel(r.TargetAchieved, cfg.UseColors),
		)
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if outcome.Achieved() {
		fmt.Fprintf(w, "Showing %d combinations that meet every target\n", len(outcome.Results))
	} else {
		best := outcome.Results[0]
		fmt.Fprintf(w, "No combination meets every target. Closest option is %s short in total\n",
			strconv.Itoa(totalGap(best.Totals, cfg.Targets)))
	}
	if outcome.Truncated {
		fmt.Fprintln(w, "Time budget exhausted; results may be incomplete")
	}
	fmt.Fprintf(w, "Search completed in %v (%d evaluated)\n", outcome.Duration, outcome.Evaluated)
	return nil
}

// totalGap sums the shortfall across attributes.
func totalGap(totals, targets schema.Stats) int {
	gap := 0
	for i := range targets {
		gap += max(0, targets[i]-totals[i])
	}
	return gap
}
