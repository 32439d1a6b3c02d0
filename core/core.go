// Package core has core logic for searching, ranking and pinning loadouts.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/internal/outwriter"
	"github.com/huangsam/loadout/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ErrNoPinnedStore is returned when pinned operations run without a store.
var ErrNoPinnedStore = errors.New("pinned store is not initialized")

// GetSearchResults runs the search described by cfg and returns the outcome
// trimmed to the result limit, along with which results are already pinned.
func GetSearchResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.SearchOutcome, []bool, error) {
	if err := ctx.Err(); err != nil {
		return schema.SearchOutcome{}, nil, err
	}
	if !shouldSuppressHeader(ctx) {
		outwriter.LogSearchHeader(os.Stderr, cfg)
	}

	req := cfg.SearchRequest()
	if deadline, ok := ctx.Deadline(); ok {
		remaining := max(time.Until(deadline), time.Millisecond)
		if req.TimeBudget <= 0 || remaining < req.TimeBudget {
			req.TimeBudget = remaining
		}
	}

	outcome := Search(req)
	if cfg.ResultLimit > 0 && len(outcome.Results) > cfg.ResultLimit {
		outcome.Results = outcome.Results[:cfg.ResultLimit]
	}

	return outcome, pinnedMarks(mgr, outcome.Results), nil
}

// ExecuteSearch runs the search and prints results using the configured output.
func ExecuteSearch(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	outcome, pinned, err := GetSearchResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintSearchResults(outcome, cfg, pinned)
}

// ExecuteCatalog prints the archetype catalog and tier table.
func ExecuteCatalog(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.PrintCatalog(outwriter.NewCatalogView(schema.Archetypes(), cfg.Tiers), cfg)
}

// ExecutePinnedList prints every pinned combination.
func ExecutePinnedList(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := pinnedStore(mgr)
	if err != nil {
		return err
	}
	pins, err := ListPinned(store)
	if err != nil {
		return err
	}
	return outwriter.PrintPinned(pins, cfg)
}

// ExecutePinnedAdd reruns the search and pins the result at the given 1-based rank.
func ExecutePinnedAdd(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, rank int, name string) (schema.PinnedCombination, error) {
	store, err := pinnedStore(mgr)
	if err != nil {
		return schema.PinnedCombination{}, err
	}
	outcome, _, err := GetSearchResults(WithSuppressHeader(ctx), cfg, mgr)
	if err != nil {
		return schema.PinnedCombination{}, err
	}
	if rank < 1 || rank > len(outcome.Results) {
		return schema.PinnedCombination{}, fmt.Errorf("rank %d is out of range (1-%d)", rank, len(outcome.Results))
	}

	result := outcome.Results[rank-1]
	pins, err := ListPinned(store)
	if err != nil {
		return schema.PinnedCombination{}, err
	}
	if IsPinned(pins, result) {
		return schema.PinnedCombination{}, fmt.Errorf("combination at rank %d is already pinned", rank)
	}
	return AddPinned(store, result, name, cfg.Tiers)
}

// ExecutePinnedExport writes every pinned combination as JSON to outputFile or stdout.
func ExecutePinnedExport(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := pinnedStore(mgr)
	if err != nil {
		return err
	}
	text, err := ExportPinned(store)
	if err != nil {
		return err
	}

	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}
	if _, err := fmt.Fprintln(file, text); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 Exported pinned combinations to %s\n", cfg.OutputFile)
	}
	return nil
}

// ExecutePinnedImport merges pinned combinations exported earlier.
func ExecutePinnedImport(_ context.Context, cfg *contract.Config, mgr contract.StoreManager, text string) (schema.ImportReport, error) {
	store, err := pinnedStore(mgr)
	if err != nil {
		return schema.ImportReport{}, err
	}
	return ImportPinned(store, text, cfg.Tiers)
}

// pinnedStore fetches the pinned store or reports it is missing.
func pinnedStore(mgr contract.StoreManager) (contract.PinnedStore, error) {
	if mgr == nil {
		return nil, ErrNoPinnedStore
	}
	store := mgr.GetPinnedStore()
	if store == nil {
		return nil, ErrNoPinnedStore
	}
	return store, nil
}

// pinnedMarks flags results already pinned. Storage errors only warn.
func pinnedMarks(mgr contract.StoreManager, results []schema.SearchResult) []bool {
	store, err := pinnedStore(mgr)
	if err != nil {
		return nil
	}
	pins, err := store.List()
	if err != nil {
		contract.LogWarn("Cannot read pinned combinations", err)
		return nil
	}
	marks := make([]bool, len(results))
	for i, r := range results {
		marks[i] = IsPinned(pins, r)
	}
	return marks
}
