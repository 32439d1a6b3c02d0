package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Index returns the position of the attribute in AllAttributes, or -1.
func (a Attribute) Index() int {
	switch a {
	case Weapon:
		return 0
	case Health:
		return 1
	case Class:
		return 2
	case Grenade:
		return 3
	case Melee:
		return 4
	case Super:
		return 5
	default:
		return -1
	}
}

// Valid reports whether a is one of the six known attributes.
func (a Attribute) Valid() bool {
	return a.Index() >= 0
}

// ParseAttribute parses a case-insensitive attribute name.
func ParseAttribute(s string) (Attribute, error) {
	a := Attribute(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown attribute %q. must be weapon, health, class, grenade, melee, super", s)
	}
	return a, nil
}

// Stats is a per-attribute integer vector indexed like AllAttributes.
type Stats [AttributeCount]int

// Get returns the value for attribute a. Unknown attributes read as zero.
func (s Stats) Get(a Attribute) int {
	if i := a.Index(); i >= 0 {
		return s[i]
	}
	return 0
}

// Set assigns v to attribute a. Unknown attributes are ignored.
func (s *Stats) Set(a Attribute, v int) {
	if i := a.Index(); i >= 0 {
		s[i] = v
	}
}

// AddTo adds v to attribute a. Unknown attributes are ignored.
func (s *Stats) AddTo(a Attribute, v int) {
	if i := a.Index(); i >= 0 {
		s[i] += v
	}
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	for i := range s {
		s[i] += o[i]
	}
	return s
}

// Sum returns the total across all attributes.
func (s Stats) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// ToMap converts the vector into an attribute keyed map.
func (s Stats) ToMap() map[Attribute]int {
	m := make(map[Attribute]int, AttributeCount)
	for i, a := range AllAttributes {
		m[a] = s[i]
	}
	return m
}

// StatsFromMap builds a vector from a map. Unknown keys are dropped.
func StatsFromMap(m map[Attribute]int) Stats {
	var s Stats
	for a, v := range m {
		s.Set(a, v)
	}
	return s
}

// MarshalJSON encodes the vector as an object keyed by attribute name.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// UnmarshalJSON decodes an object keyed by attribute name.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var m map[Attribute]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = StatsFromMap(m)
	return nil
}

// Format renders the vector in display order, e.g. "hea 30 mel 25 ...".
func (s Stats) Format() string {
	parts := make([]string, 0, AttributeCount)
	for _, a := range DisplayOrder {
		parts = append(parts, fmt.Sprintf("%s %d", string(a)[:3], s.Get(a)))
	}
	return strings.Join(parts, " ")
}
