// Package parquet provides data structures and functions for exporting loadout
// search results and pinned combinations to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/loadout/schema"
	"github.com/parquet-go/parquet-go"
)

// PinnedRecord represents a single pinned combination.
// This struct maps to the pinned_combinations database table.
type PinnedRecord struct {
	ID             string    `parquet:"id,snappy"`
	Name           string    `parquet:"name,snappy"`
	CreatedAt      time.Time `parquet:"created_at,snappy"`
	Score          int32     `parquet:"score,snappy"`
	TargetAchieved bool      `parquet:"target_achieved"`
	ArchetypeCount int32     `parquet:"archetype_count,snappy"`

	// Components is a "|" separated list of component labels
	Components string `parquet:"components,snappy"`

	Weapon  int32 `parquet:"weapon,snappy"`
	Health  int32 `parquet:"health,snappy"`
	Class   int32 `parquet:"class,snappy"`
	Grenade int32 `parquet:"grenade,snappy"`
	Melee   int32 `parquet:"melee,snappy"`
	Super   int32 `parquet:"super,snappy"`

	SmallRemaining int32 `parquet:"small_remaining,snappy"`
	LargeRemaining int32 `parquet:"large_remaining,snappy"`

	// CustomTier holds "main/sub/third" when the combination used custom magnitudes (nullable)
	CustomTier *string `parquet:"custom_tier,optional,snappy"`
}

// ResultRecord represents one ranked search result.
type ResultRecord struct {
	Rank           int32  `parquet:"rank,snappy"`
	Score          int32  `parquet:"score,snappy"`
	TargetAchieved bool   `parquet:"target_achieved"`
	ArchetypeCount int32  `parquet:"archetype_count,snappy"`
	Components     string `parquet:"components,snappy"`

	Weapon  int32 `parquet:"weapon,snappy"`
	Health  int32 `parquet:"health,snappy"`
	Class   int32 `parquet:"class,snappy"`
	Grenade int32 `parquet:"grenade,snappy"`
	Melee   int32 `parquet:"melee,snappy"`
	Super   int32 `parquet:"super,snappy"`

	SmallRemaining int32 `parquet:"small_remaining,snappy"`
	LargeRemaining int32 `parquet:"large_remaining,snappy"`
}

// WritePinnedParquet writes a slice of PinnedRecord structs to a Parquet file.
func WritePinnedParquet(data []PinnedRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return writeRecords(file, data)
}

// WriteResultsParquet writes ranked results to w.
func WriteResultsParquet(w io.Writer, data []ResultRecord) error {
	return writeRecords(w, data)
}

// writeRecords infers the schema from T's struct tags and writes every row.
func writeRecords[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// componentsLabel joins the labels of every component.
func componentsLabel(components []schema.Component) string {
	labels := make([]string, len(components))
	for i, c := range components {
		labels[i] = schema.ComponentLabel(c)
	}
	return strings.Join(labels, " | ")
}

// ConvertPinned converts schema.PinnedCombination to PinnedRecord for Parquet export.
func ConvertPinned(pins []schema.PinnedCombination) []PinnedRecord {
	result := make([]PinnedRecord, len(pins))
	for i, pin := range pins {
		t := pin.TotalStats
		record := PinnedRecord{
			ID:             pin.ID,
			Name:           pin.Name,
			CreatedAt:      pin.CreatedAt,
			Score:          int32(pin.Score),
			TargetAchieved: pin.TargetAchieved,
			ArchetypeCount: int32(pin.ArchetypeCount),
			Components:     componentsLabel(pin.Components),
			Weapon:         int32(t.Get(schema.Weapon)),
			Health:         int32(t.Get(schema.Health)),
			Class:          int32(t.Get(schema.Class)),
			Grenade:        int32(t.Get(schema.Grenade)),
			Melee:          int32(t.Get(schema.Melee)),
			Super:          int32(t.Get(schema.Super)),
			SmallRemaining: int32(pin.Remaining.Small),
			LargeRemaining: int32(pin.Remaining.Large),
		}
		if pin.IsCustomTier && pin.CustomTierValues != nil {
			tier := pin.CustomTierValues.String()
			record.CustomTier = &tier
		}
		result[i] = record
	}
	return result
}

// ConvertResults converts ranked schema.SearchResult values to ResultRecord.
func ConvertResults(results []schema.SearchResult) []ResultRecord {
	out := make([]ResultRecord, len(results))
	for i, r := range results {
		t := r.Totals
		out[i] = ResultRecord{
			Rank:           int32(i + 1),
			Score:          int32(r.Score),
			TargetAchieved: r.TargetAchieved,
			ArchetypeCount: int32(r.ArchetypeCount),
			Components:     componentsLabel(r.Components),
			Weapon:         int32(t.Get(schema.Weapon)),
			Health:         int32(t.Get(schema.Health)),
			Class:          int32(t.Get(schema.Class)),
			Grenade:        int32(t.Get(schema.Grenade)),
			Melee:          int32(t.Get(schema.Melee)),
			Super:          int32(t.Get(schema.Super)),
			SmallRemaining: int32(r.Remaining.Small),
			LargeRemaining: int32(r.Remaining.Large),
		}
	}
	return out
}
