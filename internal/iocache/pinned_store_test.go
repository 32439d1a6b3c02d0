package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/loadout/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPin(id, name string, created time.Time, achieved bool) schema.PinnedCombination {
	gunner, _ := schema.FindArchetype("Gunner")
	return schema.PinnedCombination{
		ID:   id,
		Name: name,
		Components: []schema.Component{
			{Archetype: gunner, Tier: 5, Tertiary: schema.Health, Source: schema.Standard()},
		},
		Score:          7,
		TargetAchieved: achieved,
		ArchetypeCount: 1,
		CreatedAt:      created,
		TotalStats:     schema.Stats{30, 20, 5, 25, 5, 5},
	}
}

func TestPinnedStore_SQLiteMicrosecondOrder(t *testing.T) {
	store, err := NewPinnedStore(pinnedTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Reverse-sorted ids so only the timestamps decide the order.
	ids := []string{"h", "g", "f", "e", "d", "c", "b", "a"}
	for i, id := range ids {
		require.NoError(t, store.Add(newTestPin(id, id, base.Add(time.Duration(i)*time.Microsecond), true)))
	}

	pins, err := store.List()
	require.NoError(t, err)
	got := make([]string, len(pins))
	for i, p := range pins {
		got[i] = p.ID
	}
	assert.Equal(t, ids, got)
	assert.True(t, pins[1].CreatedAt.Equal(base.Add(time.Microsecond)))
}

func TestPinnedStore_NoneBackend(t *testing.T) {
	store, err := NewPinnedStore(pinnedTable, schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// Operations should not error
	assert.NoError(t, store.Add(newTestPin("a", "A", time.Now(), true)))

	pins, err := store.List()
	assert.NoError(t, err)
	assert.Empty(t, pins)

	removed, err := store.Remove("a")
	assert.NoError(t, err)
	assert.False(t, removed)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestPinnedStore_SQLite(t *testing.T) {
	store, err := NewPinnedStore(pinnedTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Add(newTestPin("late", "Late", base.Add(time.Hour), false)))
	require.NoError(t, store.Add(newTestPin("early", "Early", base, true)))

	pins, err := store.List()
	require.NoError(t, err)
	require.Len(t, pins, 2)
	assert.Equal(t, "early", pins[0].ID, "pins are ordered by creation time")
	assert.Equal(t, "late", pins[1].ID)
	assert.Equal(t, schema.Health, pins[0].Components[0].Tertiary)
	assert.True(t, pins[0].CreatedAt.Equal(base))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalPinned)
	assert.Equal(t, 1, status.Achieving)
	assert.True(t, status.OldestPin.Equal(base))
	assert.True(t, status.NewestPin.Equal(base.Add(time.Hour)))

	renamed, err := store.Rename("early", "First")
	require.NoError(t, err)
	assert.True(t, renamed)

	renamed, err = store.Rename("missing", "Nope")
	require.NoError(t, err)
	assert.False(t, renamed)

	pins, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, "First", pins[0].Name)

	removed, err := store.Remove("late")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove("late")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, store.Clear())
	pins, err = store.List()
	require.NoError(t, err)
	assert.Empty(t, pins)
}

func TestPinnedStore_DuplicateID(t *testing.T) {
	store, err := NewPinnedStore(pinnedTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	pin := newTestPin("dup", "Dup", time.Now(), true)
	require.NoError(t, store.Add(pin))
	assert.Error(t, store.Add(pin))
}

func TestPinnedStore_CorruptPayload(t *testing.T) {
	s, err := NewPinnedStore(pinnedTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	store := s.(*PinnedStoreImpl)
	require.NoError(t, store.Add(newTestPin("ok", "Ok", time.Now(), true)))
	_, err = store.db.Exec(`INSERT INTO "pinned_combinations" (id, name, created_at, archetype_count, score, target_achieved, custom_tier, payload)
		VALUES ('bad', 'Bad', '2026-01-01T00:00:00.000000Z', 1, 0, 0, 0, '{not json')`)
	require.NoError(t, err)

	pins, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, pins, "a corrupt payload empties the listing")
}

func TestPinnedStore_UnsupportedBackend(t *testing.T) {
	_, err := NewPinnedStore(pinnedTable, schema.DatabaseBackend("redis"), "")
	assert.Error(t, err)
}

// TestValidateTableName tests the validateTableName function with various inputs.
func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"simple", "pinned_combinations", false},
		{"leading underscore", "_pins", false},
		{"mixed case with digits", "Pins2026", false},
		{"empty", "", true},
		{"leading digit", "1pins", true},
		{"sql injection", "pins; DROP TABLE users", true},
		{"quote", `pins"`, true},
		{"too long", "a123456789012345678901234567890123456789012345678901234567890123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err, "validateTableName should error for %q", tt.tableName)
			} else {
				assert.NoError(t, err, "validateTableName should not error for %q", tt.tableName)
			}
		})
	}
}

// TestQuoteTableName tests the quoteTableName function for all backends.
func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		expected string
	}{
		{schema.SQLiteBackend, `"pins"`},
		{schema.MySQLBackend, "`pins`"},
		{schema.PostgreSQLBackend, `"pins"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.expected, quoteTableName("pins", tt.backend))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	pg := &PinnedStoreImpl{backend: schema.PostgreSQLBackend}
	assert.Equal(t, []any{"$1", "$2"}, pg.placeholders(2))

	my := &PinnedStoreImpl{backend: schema.MySQLBackend}
	assert.Equal(t, []any{"?", "?"}, my.placeholders(2))
}

func TestTimeRoundTrip(t *testing.T) {
	ts := time.Date(2026, 10, 18, 9, 30, 15, 123456000, time.FixedZone("X", 3600))
	formatted := formatTime(ts)
	assert.Len(t, formatted, len(timeLayout))

	parsed, err := parseTime(formatted)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
}
