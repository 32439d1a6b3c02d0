package schema

import "time"

// PinnedCombination is a search result saved under a user-facing name.
// The JSON layout is the export/import format.
type PinnedCombination struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Components       []Component `json:"combination"`
	Remaining        SlotBudget  `json:"remainingMods"`
	Score            int         `json:"score"`
	TargetAchieved   bool        `json:"isTargetAchieved"`
	ArchetypeCount   int         `json:"archetypeCount"`
	CreatedAt        time.Time   `json:"createdAt"`
	TotalStats       Stats       `json:"totalStats"`
	IsCustomTier     bool        `json:"isCustomTier"`
	CustomTierValues *Magnitudes `json:"customTierValues,omitempty"`
}

// PinnedStatus holds status information about the pinned store.
type PinnedStatus struct {
	Backend     string    `json:"backend"`
	Connected   bool      `json:"connected"`
	TotalPinned int       `json:"total_pinned"`
	NewestPin   time.Time `json:"newest_pin"`
	OldestPin   time.Time `json:"oldest_pin"`
	Achieving   int       `json:"achieving"`
	TableSize   int64     `json:"table_size_bytes"`
}

// ImportReport summarizes an import of pinned combinations.
type ImportReport struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Added    int    `json:"added"`
}
