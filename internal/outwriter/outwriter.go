// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSearch prints search results using the configured output format.
func (ow *OutWriter) WriteSearch(outcome schema.SearchOutcome, cfg *contract.Config, pinned []bool) error {
	return PrintSearchResults(outcome, cfg, pinned)
}

// WritePinned prints pinned combinations using the configured output format.
func (ow *OutWriter) WritePinned(pins []schema.PinnedCombination, cfg *contract.Config) error {
	return PrintPinned(pins, cfg)
}

// WriteCatalog prints the archetype catalog and tier table.
func (ow *OutWriter) WriteCatalog(view CatalogView, cfg *contract.Config) error {
	return PrintCatalog(view, cfg)
}

// LogSearchHeader prints a concise, 2-line header describing the search.
func LogSearchHeader(w io.Writer, cfg *contract.Config) {
	tier := fmt.Sprintf("T%d", cfg.Tier)
	if cfg.Tier == schema.CustomTierID {
		tier = fmt.Sprintf("custom %s", cfg.Tiers.Lookup(schema.CustomTierID))
	}

	// Line 1: tier, slots and fixed components
	fmt.Fprintf(w, "🔎 Tier: %s (Slots: %d small / %d large, Fixed: %d)\n",
		tier, cfg.Slots.Small, cfg.Slots.Large, len(cfg.Fixed))

	// Line 2: the targets in display order
	parts := make([]string, 0, schema.AttributeCount)
	for _, a := range schema.DisplayOrder {
		parts = append(parts, fmt.Sprintf("%s %d", a, cfg.Targets.Get(a)))
	}
	fmt.Fprintf(w, "🎯 Targets: %s\n", strings.Join(parts, ", "))
}
