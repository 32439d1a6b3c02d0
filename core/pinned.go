package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/loadout/core/algo"
	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/schema"
	"github.com/tidwall/gjson"
)

// Import report messages.
const (
	importNotArrayMsg   = "JSON must contain an array of combinations"
	importBadFormatMsg  = "Invalid combination format in JSON"
	importParseErrorMsg = "Error parsing JSON"
	importSuccessFormat = "%d combination(s) imported successfully"
)

// ErrPinNotFound is returned when a pinned combination id does not exist.
var ErrPinNotFound = errors.New("pinned combination not found")

var defaultNamePattern = regexp.MustCompile(`^Combination (\d+)$`)

// ListPinned returns every pinned combination ordered by creation time.
func ListPinned(store contract.PinnedStore) ([]schema.PinnedCombination, error) {
	return store.List()
}

// AddPinned saves a search result. An empty name picks "Combination N" where
// N follows the largest number already in use.
func AddPinned(store contract.PinnedStore, result schema.SearchResult, name string, tiers schema.TierTable) (schema.PinnedCombination, error) {
	existing, err := store.List()
	if err != nil {
		return schema.PinnedCombination{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPinName(existing)
	}

	components := freezeMagnitudes(result.Components, tiers)
	pin := schema.PinnedCombination{
		ID:             uuid.New().String(),
		Name:           name,
		Components:     components,
		Remaining:      result.Remaining,
		Score:          result.Score,
		TargetAchieved: result.TargetAchieved,
		ArchetypeCount: algo.CountArchetypes(components),
		CreatedAt:      nextCreatedAt(existing),
		TotalStats:     algo.TotalStats(components, tiers),
	}
	pin.IsCustomTier, pin.CustomTierValues = customTierOf(components, tiers)

	if err := store.Add(pin); err != nil {
		return schema.PinnedCombination{}, err
	}
	return pin, nil
}

// RemovePinned deletes a pinned combination.
func RemovePinned(store contract.PinnedStore, id string) error {
	ok, err := store.Remove(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrPinNotFound, id)
	}
	return nil
}

// RenamePinned changes the name of a pinned combination.
func RenamePinned(store contract.PinnedStore, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("name cannot be empty")
	}
	ok, err := store.Rename(id, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrPinNotFound, id)
	}
	return nil
}

// ExportPinned renders every pinned combination as an indented JSON array.
func ExportPinned(store contract.PinnedStore) (string, error) {
	pins, err := store.List()
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(pins, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal pinned combinations: %w", err)
	}
	return string(data), nil
}

// ImportPinned merges exported combinations into the store. Entries whose id
// already exists are skipped. Malformed input is reported, not returned as an
// error; the error is reserved for storage failures.
func ImportPinned(store contract.PinnedStore, text string, tiers schema.TierTable) (schema.ImportReport, error) {
	if !gjson.Valid(text) {
		return schema.ImportReport{Message: importParseErrorMsg}, nil
	}
	parsed := gjson.Parse(text)
	if !parsed.IsArray() {
		return schema.ImportReport{Message: importNotArrayMsg}, nil
	}

	valid := true
	parsed.ForEach(func(_, entry gjson.Result) bool {
		if !entry.Get("id").Exists() || entry.Get("id").String() == "" ||
			!entry.Get("name").Exists() || entry.Get("name").String() == "" ||
			!entry.Get("combination").IsArray() {
			valid = false
		}
		return valid
	})
	if !valid {
		return schema.ImportReport{Message: importBadFormatMsg}, nil
	}

	var imported []schema.PinnedCombination
	if err := json.Unmarshal([]byte(text), &imported); err != nil {
		return schema.ImportReport{Message: importParseErrorMsg}, nil
	}

	existing, err := store.List()
	if err != nil {
		return schema.ImportReport{}, err
	}
	seen := make(map[string]struct{}, len(existing)+len(imported))
	for _, pin := range existing {
		seen[pin.ID] = struct{}{}
	}

	added := 0
	for _, pin := range imported {
		if _, dup := seen[pin.ID]; dup {
			continue
		}
		seen[pin.ID] = struct{}{}
		if err := store.Add(completePin(pin, tiers)); err != nil {
			return schema.ImportReport{}, err
		}
		added++
	}

	return schema.ImportReport{
		Success:  true,
		Message:  fmt.Sprintf(importSuccessFormat, len(imported)),
		Imported: len(imported),
		Added:    added,
	}, nil
}

// IsPinned reports whether an equivalent assortment is already pinned.
func IsPinned(pins []schema.PinnedCombination, result schema.SearchResult) bool {
	key := algo.PinKey(result.Components)
	for _, pin := range pins {
		if algo.PinKey(pin.Components) == key {
			return true
		}
	}
	return false
}

// defaultPinName returns the next free "Combination N" name.
func defaultPinName(pins []schema.PinnedCombination) string {
	highest := 0
	for _, pin := range pins {
		m := defaultNamePattern.FindStringSubmatch(pin.Name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("Combination %d", highest+1)
}

// nextCreatedAt returns the current time at storage precision, moved past the
// newest existing pin so that listing order matches insertion order.
func nextCreatedAt(pins []schema.PinnedCombination) time.Time {
	now := time.Now().UTC().Truncate(time.Microsecond)
	for _, pin := range pins {
		if !now.After(pin.CreatedAt) {
			now = pin.CreatedAt.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
		}
	}
	return now
}

// freezeMagnitudes records the resolved magnitudes on every component so a
// pin keeps its values even if the tier table changes later. Components that
// already carry values are left alone.
func freezeMagnitudes(components []schema.Component, tiers schema.TierTable) []schema.Component {
	out := schema.CloneComponents(components)
	for i, c := range out {
		if c.Source.Kind != schema.CustomMagnitudes && !c.Source.Frozen() {
			out[i].Source = schema.MagnitudeSource{
				Kind:   schema.StandardMagnitudes,
				Values: tiers.Lookup(c.Tier),
			}
		}
	}
	return out
}

// customTierOf reports whether a pin used caller-supplied magnitudes and which.
func customTierOf(components []schema.Component, tiers schema.TierTable) (bool, *schema.Magnitudes) {
	for _, c := range components {
		if c.CalculatorChosen {
			m := c.Source.Resolve(tiers, c.Tier)
			return true, &m
		}
	}
	for _, c := range components {
		if c.Tier == schema.CustomTierID {
			m := tiers.Lookup(schema.CustomTierID)
			return true, &m
		}
	}
	return false, nil
}

// completePin fills fields an older export may lack.
func completePin(pin schema.PinnedCombination, tiers schema.TierTable) schema.PinnedCombination {
	if pin.CreatedAt.IsZero() {
		pin.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	pin.Components = freezeMagnitudes(pin.Components, tiers)
	if pin.ArchetypeCount == 0 {
		pin.ArchetypeCount = algo.CountArchetypes(pin.Components)
	}
	if pin.TotalStats == (schema.Stats{}) {
		pin.TotalStats = algo.TotalStats(pin.Components, tiers)
	}
	return pin
}
