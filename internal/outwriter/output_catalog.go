package outwriter

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/schema"
	"github.com/olekukonko/tablewriter"
)

// CatalogView is the serializable form of the archetype catalog and tier table.
type CatalogView struct {
	Archetypes []schema.Archetype          `json:"archetypes"`
	Tiers      map[string]schema.Magnitudes `json:"tiers"`
}

// NewCatalogView snapshots the catalog and tier table for output.
func NewCatalogView(archetypes []schema.Archetype, tiers schema.TierTable) CatalogView {
	view := CatalogView{Archetypes: archetypes, Tiers: map[string]schema.Magnitudes{}}
	for _, id := range tiers.IDs() {
		view.Tiers[strconv.Itoa(id)] = tiers.Lookup(id)
	}
	return view
}

// PrintCatalog outputs the archetype catalog and tier table.
func PrintCatalog(view CatalogView, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, view)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	default:
		if err := WriteCatalogTable(os.Stdout, view); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// WriteCatalogTable renders the archetypes and then the tier magnitudes.
func WriteCatalogTable(w io.Writer, view CatalogView) error {
	archetypes := tablewriter.NewWriter(w)
	archetypes.Header([]string{"Archetype", "Primary", "Secondary", "Tertiary Options"})
	var rows [][]string
	for _, a := range view.Archetypes {
		thirds := make([]string, len(a.Tertiaries))
		for i, t := range a.Tertiaries {
			thirds[i] = string(t)
		}
		rows = append(rows, []string{a.Name, string(a.Primary), string(a.Secondary), strings.Join(thirds, ", ")})
	}
	if err := archetypes.Bulk(rows); err != nil {
		return err
	}
	if err := archetypes.Render(); err != nil {
		return err
	}

	tiers := tablewriter.NewWriter(w)
	tiers.Header([]string{"Tier", "Primary", "Secondary", "Tertiary"})
	rows = nil
	ids := make([]int, 0, len(view.Tiers))
	for key := range view.Tiers {
		if id, err := strconv.Atoi(key); err == nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		m := view.Tiers[strconv.Itoa(id)]
		label := strconv.Itoa(id)
		if id == schema.CustomTierID {
			label += " (custom)"
		}
		rows = append(rows, []string{label, strconv.Itoa(m.Primary), strconv.Itoa(m.Secondary), strconv.Itoa(m.Tertiary)})
	}
	if err := tiers.Bulk(rows); err != nil {
		return err
	}
	return tiers.Render()
}
