package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	return writeRows(csvWriter)
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// targetCoverage returns how much of the requested targets the totals cover,
// as a percentage. Overshoot on one attribute never compensates another.
func targetCoverage(totals, targets schema.Stats) float64 {
	want, got := 0, 0
	for i := range targets {
		want += targets[i]
		got += min(totals[i], targets[i])
	}
	if want == 0 {
		return 100
	}
	return float64(got) * 100 / float64(want)
}

// statsColumns returns one header per attribute in display order.
func statsColumns() []string {
	cols := make([]string, 0, schema.AttributeCount)
	for _, a := range schema.DisplayOrder {
		cols = append(cols, string(a))
	}
	return cols
}

// statsCells renders the totals in display order.
func statsCells(totals schema.Stats, intFmt string) []string {
	cells := make([]string, 0, schema.AttributeCount)
	for _, a := range schema.DisplayOrder {
		cells = append(cells, fmt.Sprintf(intFmt, totals.Get(a)))
	}
	return cells
}

// statsTableCells renders the totals in display order, highlighting
// attributes that fall short of their target.
func statsTableCells(totals, targets schema.Stats, useColors bool) []string {
	cells := make([]string, 0, schema.AttributeCount)
	for _, a := range schema.DisplayOrder {
		cell := fmt.Sprintf("%d", totals.Get(a))
		if gap := targets.Get(a) - totals.Get(a); gap > 0 {
			cell = fmt.Sprintf("%s (-%d)", cell, gap)
			if useColors {
				cell = contract.GapColor.Sprint(cell)
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

// componentLines renders every component label on its own line.
func componentLines(components []schema.Component, maxWidth int) string {
	lines := make([]string, len(components))
	for i, c := range components {
		lines[i] = contract.TruncateName(schema.ComponentLabel(c), maxWidth)
	}
	return strings.Join(lines, "\n")
}

// componentsCell joins component labels for single-line formats.
func componentsCell(components []schema.Component) string {
	labels := make([]string, len(components))
	for i, c := range components {
		labels[i] = schema.ComponentLabel(c)
	}
	return strings.Join(labels, " | ")
}

// formatSlots renders a slot budget as "small/large".
func formatSlots(b schema.SlotBudget) string {
	return fmt.Sprintf("%d/%d", b.Small, b.Large)
}

// targetLabel returns the achieved label, colored when requested.
func targetLabel(achieved, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(achieved)
	}
	return contract.GetPlainLabel(achieved)
}
