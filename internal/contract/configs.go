package contract

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/loadout/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = schema.MaxResults
	DefaultPrecision   = 1
	DefaultTimeBudget  = 5 * time.Second
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a search.
// This struct remains the "final, validated" config.
type Config struct {
	Targets    schema.Stats
	Tier       int
	Tiers      schema.TierTable
	CustomTier schema.Magnitudes
	Slots      schema.SlotBudget
	Fixed      []schema.FixedSpec
	Factorize  bool
	TimeBudget time.Duration

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	PinnedBackend   schema.DatabaseBackend
	PinnedDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Search inputs ---
	Tier       int    `mapstructure:"tier"`
	CustomTier string `mapstructure:"custom-tier"`
	SmallSlots int    `mapstructure:"small-slots"`
	LargeSlots int    `mapstructure:"large-slots"`
	Weapon     int    `mapstructure:"weapon"`
	Health     int    `mapstructure:"health"`
	Class      int    `mapstructure:"class"`
	Grenade    int    `mapstructure:"grenade"`
	Melee      int    `mapstructure:"melee"`
	Super      int    `mapstructure:"super"`
	Factorize  bool   `mapstructure:"factorize"`
	TimeBudget string `mapstructure:"time-budget"`

	// Fixed comes from the config file; Fix from repeated --fix flags.
	Fixed []schema.FixedSpec `mapstructure:"fixed"`
	Fix   []string           `mapstructure:"fix"`

	// --- Output and storage ---
	Limit           int    `mapstructure:"limit"`
	Precision       int    `mapstructure:"precision"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	PinnedBackend   string `mapstructure:"pinned-backend"`
	PinnedDBConnect string `mapstructure:"pinned-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Fixed = slices.Clone(c.Fixed)
	return &clone
}

// SearchRequest builds the engine request described by the config.
func (c *Config) SearchRequest() schema.SearchRequest {
	return schema.SearchRequest{
		Targets:    c.Targets,
		Tier:       c.Tier,
		Tiers:      c.Tiers,
		Slots:      c.Slots,
		Fixed:      slices.Clone(c.Fixed),
		Factorize:  c.Factorize,
		TimeBudget: c.TimeBudget,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSearchInputs(cfg, input); err != nil {
		return err
	}
	if err := processFixedSpecs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("pinned-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("pinned-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the pinned store backend.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.PinnedBackend = schema.DatabaseBackend(strings.ToLower(input.PinnedBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.PinnedBackend]; !ok {
		return fmt.Errorf("invalid pinned backend '%s'. must be sqlite, mysql, postgresql, none", input.PinnedBackend)
	}
	cfg.PinnedDBConnect = input.PinnedDBConnect
	return ValidateDatabaseConnectionString(cfg.PinnedBackend, cfg.PinnedDBConnect)
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > schema.MaxResults {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", schema.MaxResults, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processSearchInputs clamps the numeric search inputs and builds the tier table.
// Out-of-range values are clamped rather than rejected.
func processSearchInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.CustomTier = schema.DefaultCustomTier
	if strings.TrimSpace(input.CustomTier) != "" {
		m, err := schema.ParseMagnitudes(input.CustomTier)
		if err != nil {
			return fmt.Errorf("invalid --custom-tier value: %w", err)
		}
		cfg.CustomTier = schema.ClampMagnitudes(m)
	}
	cfg.Tiers = schema.DefaultTierTable().WithCustom(cfg.CustomTier)

	cfg.Tier = input.Tier
	if !cfg.Tiers.Has(cfg.Tier) {
		cfg.Tier = schema.DefaultTier
	}

	cfg.Slots = schema.ClampSlots(schema.SlotBudget{Small: input.SmallSlots, Large: input.LargeSlots})

	cfg.Targets = schema.ClampTargets(schema.StatsFromMap(map[schema.Attribute]int{
		schema.Weapon:  input.Weapon,
		schema.Health:  input.Health,
		schema.Class:   input.Class,
		schema.Grenade: input.Grenade,
		schema.Melee:   input.Melee,
		schema.Super:   input.Super,
	}))

	cfg.Factorize = input.Factorize

	cfg.TimeBudget = DefaultTimeBudget
	if input.TimeBudget != "" {
		d, err := time.ParseDuration(input.TimeBudget)
		if err != nil {
			return fmt.Errorf("invalid --time-budget value: %w", err)
		}
		cfg.TimeBudget = max(d, 0)
	}
	return nil
}

// processFixedSpecs merges config file specs with --fix flags. Extra specs
// beyond the assortment size are dropped.
func processFixedSpecs(cfg *Config, input *ConfigRawInput) error {
	specs := make([]schema.FixedSpec, 0, len(input.Fixed)+len(input.Fix))
	for i, spec := range input.Fixed {
		spec, err := normalizeFixedSpec(spec)
		if err != nil {
			return fmt.Errorf("invalid fixed entry %d: %w", i+1, err)
		}
		specs = append(specs, spec)
	}
	for _, s := range input.Fix {
		spec, err := ParseFixedSpec(s)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}
	if len(specs) > schema.AssortmentSize {
		specs = specs[:schema.AssortmentSize]
	}
	cfg.Fixed = specs
	return nil
}

// normalizeFixedSpec lowercases attribute names and checks them.
func normalizeFixedSpec(spec schema.FixedSpec) (schema.FixedSpec, error) {
	for _, attr := range []*schema.Attribute{&spec.Primary, &spec.Secondary, &spec.Tertiary} {
		if *attr == "" {
			continue
		}
		parsed, err := schema.ParseAttribute(string(*attr))
		if err != nil {
			return spec, err
		}
		*attr = parsed
	}
	if strings.EqualFold(spec.Archetype, schema.CalculatorChoice) {
		spec.Archetype = ""
		spec.LetCalculatorChoose = true
	}
	if strings.EqualFold(spec.Archetype, schema.CustomArchetype) && (spec.Primary == "" || spec.Secondary == "") {
		return spec, fmt.Errorf("custom archetype needs primary and secondary attributes")
	}
	if spec.Primary != "" || spec.Secondary != "" {
		if err := distinctAttributes(spec.Primary, spec.Secondary, spec.Tertiary); err != nil {
			return spec, err
		}
	}
	if spec.Magnitudes != nil {
		m := schema.ClampMagnitudes(*spec.Magnitudes)
		spec.Magnitudes = &m
	}
	return spec, nil
}

// ParseFixedSpec parses a --fix value. The first field names the archetype,
// "any" to let the calculator choose, or "custom". Remaining colon separated
// fields are a tertiary attribute, main/sub/third magnitudes, "exotic", or for
// custom archetypes a primary/secondary/tertiary attribute triple.
//
//	gunner:health
//	any:30/25/20:exotic
//	custom:weapon/grenade/super:30/30/30
func ParseFixedSpec(s string) (schema.FixedSpec, error) {
	var spec schema.FixedSpec
	fields := strings.Split(strings.TrimSpace(s), ":")
	head := strings.TrimSpace(fields[0])
	switch {
	case head == "":
		return spec, fmt.Errorf("invalid --fix value %q. archetype is required", s)
	case strings.EqualFold(head, schema.CalculatorChoice):
		spec.LetCalculatorChoose = true
	case strings.EqualFold(head, schema.CustomArchetype):
		spec.Archetype = schema.CustomArchetype
	default:
		a, ok := schema.FindArchetype(head)
		if !ok {
			return spec, fmt.Errorf("invalid --fix value %q. unknown archetype %q", s, head)
		}
		spec.Archetype = a.Name
	}

	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		switch {
		case f == "":
			continue
		case strings.EqualFold(f, "exotic"):
			spec.Exotic = true
		case strings.Contains(f, "/"):
			if m, err := schema.ParseMagnitudes(f); err == nil {
				m = schema.ClampMagnitudes(m)
				spec.Magnitudes = &m
				continue
			}
			if spec.Archetype != schema.CustomArchetype {
				return spec, fmt.Errorf("invalid --fix value %q. bad magnitudes %q", s, f)
			}
			if err := parseAttributeTriple(&spec, f); err != nil {
				return spec, fmt.Errorf("invalid --fix value %q: %w", s, err)
			}
		default:
			attr, err := schema.ParseAttribute(f)
			if err != nil {
				return spec, fmt.Errorf("invalid --fix value %q: %w", s, err)
			}
			spec.Tertiary = attr
		}
	}

	if spec.Archetype == schema.CustomArchetype && (spec.Primary == "" || spec.Secondary == "") {
		return spec, fmt.Errorf("invalid --fix value %q. custom needs primary/secondary/tertiary attributes", s)
	}
	return spec, nil
}

func parseAttributeTriple(spec *schema.FixedSpec, s string) error {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return fmt.Errorf("expected primary/secondary/tertiary, got %q", s)
	}
	attrs := make([]schema.Attribute, 3)
	for i, p := range parts {
		a, err := schema.ParseAttribute(p)
		if err != nil {
			return err
		}
		attrs[i] = a
	}
	if err := distinctAttributes(attrs...); err != nil {
		return fmt.Errorf("invalid attribute triple %q: %w", s, err)
	}
	spec.Primary, spec.Secondary, spec.Tertiary = attrs[0], attrs[1], attrs[2]
	return nil
}

// distinctAttributes rejects a repeated attribute. Empty entries are ignored.
func distinctAttributes(attrs ...schema.Attribute) error {
	seen := make(map[schema.Attribute]struct{}, len(attrs))
	for _, a := range attrs {
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			return fmt.Errorf("attribute %s is used more than once", a)
		}
		seen[a] = struct{}{}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// SearchOverrides carries the per-request fields the MCP server and the
// lambda handler accept. Nil and zero fields keep the base config value.
type SearchOverrides struct {
	Targets   map[schema.Attribute]int
	Tier      int
	Slots     *schema.SlotBudget
	Fixed     []string
	Factorize *bool
	Limit     int
}

// RevalidateSearch applies overrides on top of an already validated config.
// Numeric values are clamped like their flag counterparts and fixed specs
// use the --fix syntax.
func RevalidateSearch(cfg *Config, o SearchOverrides) error {
	if o.Targets != nil {
		cfg.Targets = schema.ClampTargets(schema.StatsFromMap(o.Targets))
	}
	if o.Tier != 0 {
		cfg.Tier = o.Tier
		if !cfg.Tiers.Has(cfg.Tier) {
			cfg.Tier = schema.DefaultTier
		}
	}
	if o.Slots != nil {
		cfg.Slots = schema.ClampSlots(*o.Slots)
	}
	if len(o.Fixed) > 0 {
		specs := make([]schema.FixedSpec, 0, len(o.Fixed))
		for _, s := range o.Fixed {
			spec, err := ParseFixedSpec(s)
			if err != nil {
				return err
			}
			specs = append(specs, spec)
		}
		if len(specs) > schema.AssortmentSize {
			specs = specs[:schema.AssortmentSize]
		}
		cfg.Fixed = specs
	}
	if o.Factorize != nil {
		cfg.Factorize = *o.Factorize
	}
	if o.Limit > 0 {
		cfg.ResultLimit = min(o.Limit, schema.MaxResults)
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	return nil
}
