package schema

import (
	"fmt"
	"strings"
)

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampMagnitudes bounds custom magnitudes to [0, MaxCustomValue].
func ClampMagnitudes(m Magnitudes) Magnitudes {
	return Magnitudes{
		Primary:   ClampInt(m.Primary, 0, MaxCustomValue),
		Secondary: ClampInt(m.Secondary, 0, MaxCustomValue),
		Tertiary:  ClampInt(m.Tertiary, 0, MaxCustomValue),
	}
}

// ClampSlots keeps each count non-negative and the total within MaxSlots.
// Large slots give way first.
func ClampSlots(b SlotBudget) SlotBudget {
	small := ClampInt(b.Small, 0, MaxSlots)
	large := ClampInt(b.Large, 0, MaxSlots-small)
	return SlotBudget{Small: small, Large: large}
}

// ClampTargets bounds every target to [0, MaxTarget].
func ClampTargets(s Stats) Stats {
	for i := range s {
		s[i] = ClampInt(s[i], 0, MaxTarget)
	}
	return s
}

// ParseMagnitudes parses "main/sub/third", e.g. "30/25/20".
func ParseMagnitudes(s string) (Magnitudes, error) {
	var m Magnitudes
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return m, fmt.Errorf("invalid magnitudes %q. expected main/sub/third", s)
	}
	if _, err := fmt.Sscanf(strings.Join(parts, " "), "%d %d %d", &m.Primary, &m.Secondary, &m.Tertiary); err != nil {
		return m, fmt.Errorf("invalid magnitudes %q: %w", s, err)
	}
	return m, nil
}

// String renders magnitudes as "main/sub/third".
func (m Magnitudes) String() string {
	return fmt.Sprintf("%d/%d/%d", m.Primary, m.Secondary, m.Tertiary)
}

// ComponentLabel renders a short description such as "Gunner (health) T5 +L weapon".
func ComponentLabel(c Component) string {
	var b strings.Builder
	b.WriteString(c.Archetype.Name)
	fmt.Fprintf(&b, " (%s)", c.Tertiary)
	if c.Source.Kind == CustomMagnitudes {
		fmt.Fprintf(&b, " [%s]", c.Source.Values)
	} else {
		fmt.Fprintf(&b, " T%d", c.Tier)
	}
	if c.Exotic {
		b.WriteString(" exotic")
	}
	switch {
	case c.SmallSlot != "":
		fmt.Fprintf(&b, " +S %s", c.SmallSlot)
	case c.LargeSlot != "":
		fmt.Fprintf(&b, " +L %s", c.LargeSlot)
	}
	return b.String()
}
