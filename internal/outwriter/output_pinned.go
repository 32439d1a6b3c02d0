package outwriter

import (
	"encoding/csv"
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

// pinnedTimeFormat is the creation time layout shown in tables.
const pinnedTimeFormat = "2006-01-02 15:04"

// PrintPinned outputs pinned combinations, dispatching based on the output format configured.
func PrintPinned(pins []schema.PinnedCombination, cfg *contract.Config) error {
	_, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, pins)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVPinned(w, pins, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WritePinnedParquet(parquet.ConvertPinned(pins), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		if err := WritePinnedTable(os.Stdout, pins, cfg); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// WritePinnedTable renders pinned combinations as a table.
func WritePinnedTable(w io.Writer, pins []schema.PinnedCombination, cfg *contract.Config) error {
	if len(pins) == 0 {
		fmt.Fprintln(w, "No pinned combinations.")
		return nil
	}

	maxWidth := getMaxComponentWidth(cfg)
	table := tablewriter.NewWriter(w)
	headers := []string{"ID", "Name", "Components"}
	headers = append(headers, statsColumns()...)
	headers = append(headers, "Tier", "Created", "Label")
	table.Header(headers)

	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, p := range pins {
		row := []string{
			shortID(p.ID),
			contract.TruncateName(p.Name, 24),
			componentLines(p.Components, maxWidth),
		}
		row = append(row, statsCells(p.TotalStats, "%d")...)
		row = append(row,
			pinnedTierLabel(p),
			p.CreatedAt.Local().Format(pinnedTimeFormat),
			targetLabel(p.TargetAchieved, cfg.UseColors),
		)
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d pinned combination(s)\n", len(pins))
	return nil
}

// writeCSVPinned writes pinned combinations as CSV.
func writeCSVPinned(w io.Writer, pins []schema.PinnedCombination, intFmt string) error {
	header := []string{"id", "name", "created_at", "components"}
	header = append(header, statsColumns()...)
	header = append(header, "score", "archetype_count", "custom_tier", "label")

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range pins {
			row := []string{p.ID, p.Name, p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), componentsCell(p.Components)}
			row = append(row, statsCells(p.TotalStats, intFmt)...)
			customTier := ""
			if p.IsCustomTier && p.CustomTierValues != nil {
				customTier = p.CustomTierValues.String()
			}
			row = append(row,
				strconv.Itoa(p.Score),
				strconv.Itoa(p.ArchetypeCount),
				customTier,
				contract.GetPlainLabel(p.TargetAchieved),
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// pinnedTierLabel shows the custom magnitudes when the pin used them.
func pinnedTierLabel(p schema.PinnedCombination) string {
	if p.IsCustomTier && p.CustomTierValues != nil {
		return p.CustomTierValues.String()
	}
	if len(p.Components) > 0 {
		return "T" + strconv.Itoa(p.Components[0].Tier)
	}
	return "-"
}

// shortID keeps the leading segment of a uuid.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
