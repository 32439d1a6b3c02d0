package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/loadout/internal/parquet"
)

// ExecutePinnedDump writes every pinned combination to a Parquet file.
func ExecutePinnedDump(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for dump command")
	}

	store := Manager.GetPinnedStore()
	if store == nil {
		return errors.New("pinned store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get pinned status: %w", err)
	}
	if status.TotalPinned == 0 {
		return errors.New("no pinned combinations found to dump")
	}

	fmt.Printf("Dumping data from %s backend...\n", status.Backend)

	pins, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to retrieve pinned combinations: %w", err)
	}

	records := parquet.ConvertPinned(pins)
	if err := parquet.WritePinnedParquet(records, outputFile); err != nil {
		return fmt.Errorf("failed to write pinned combinations: %w", err)
	}
	fmt.Printf("Exported %d pinned combinations to: %s\n", len(records), outputFile)
	return nil
}
