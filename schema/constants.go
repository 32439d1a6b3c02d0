package schema

// Custom string types for type safety.
type (
	// Attribute is one of the six stat dimensions a component contributes to.
	Attribute string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for pinned storage.
	DatabaseBackend string

	// MagnitudeKind tags how a component resolves its magnitudes.
	MagnitudeKind string
)

// All attributes supported.
const (
	Weapon  Attribute = "weapon"
	Health  Attribute = "health"
	Class   Attribute = "class"
	Grenade Attribute = "grenade"
	Melee   Attribute = "melee"
	Super   Attribute = "super"
)

// AttributeCount is the number of attribute dimensions.
const AttributeCount = 6

// AllAttributes lists attributes in canonical order. Iteration order matters
// for tie-breaking in the search, so do not reorder.
var AllAttributes = [AttributeCount]Attribute{Weapon, Health, Class, Grenade, Melee, Super}

// DisplayOrder is the order attributes are shown to humans.
var DisplayOrder = [AttributeCount]Attribute{Health, Melee, Grenade, Super, Class, Weapon}

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Magnitude sources.
const (
	StandardMagnitudes MagnitudeKind = "standard" // tier-derived
	CustomMagnitudes   MagnitudeKind = "custom"   // explicit values
)

// Engine constants.
const (
	AttributeFloor   = 5   // base value of an attribute a component does not target
	SmallSlotBonus   = 5   // bonus granted by a small slot
	LargeSlotBonus   = 10  // bonus granted by a large slot
	AssortmentSize   = 5   // components per assortment
	MaxSlots         = 5   // one slot opportunity per component
	MaxResults       = 50  // cap on returned results
	MaxTarget        = 200 // upper clamp for targets
	MaxCustomValue   = 30  // upper clamp for custom magnitudes
	DefaultTier      = 5   // fallback tier
	CustomTierID     = 6   // id of the caller-supplied custom tier
	CustomArchetype  = "Custom"
	CalculatorChoice = "Any"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
