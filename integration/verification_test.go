//go:build basic

// Package integration contains integration tests for loadout.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var attributes = []string{"weapon", "health", "class", "grenade", "melee", "super"}

// TestSearchVerification runs loadout search --output json and checks each
// result against its own targets and slot budget.
func TestSearchVerification(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "two targets", args: []string{"--weapon", "100", "--health", "60"}},
		{name: "slots", args: []string{"--melee", "120", "--small-slots", "2", "--large-slots", "2"}},
		{name: "fixed exotic", args: []string{"--super", "90", "--fix", "bulwark:super:exotic"}},
		{name: "custom tier", args: []string{"--tier", "6", "--custom-tier", "30/30/30", "--class", "120"}},
		{name: "unreachable", args: []string{"--weapon", "200", "--health", "200", "--class", "200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"search", "--output", "json", "--pinned-backend", "none"}, tt.args...)
			out, err := runLoadout(t, t.TempDir(), args...)
			require.NoError(t, err)
			require.True(t, gjson.Valid(out))

			doc := gjson.Parse(out)
			results := doc.Get("results").Array()
			require.NotEmpty(t, results)

			anyAchieved := false
			for _, r := range results {
				assert.Len(t, r.Get("combination").Array(), 5)
				achieved := r.Get("isTargetAchieved").Bool()
				anyAchieved = anyAchieved || achieved
				if !achieved {
					continue
				}
				for _, attr := range attributes {
					target := doc.Get("targets." + attr).Int()
					assert.GreaterOrEqual(t, r.Get("totalStats."+attr).Int(), target, "attribute %s", attr)
				}
			}
			if !anyAchieved {
				assert.Len(t, results, 1, "only the closest option is shown")
			}

			// Fewest archetypes first.
			for i := 1; i < len(results); i++ {
				assert.LessOrEqual(t, results[i-1].Get("archetypeCount").Int(), results[i].Get("archetypeCount").Int())
			}
		})
	}
}

// TestCatalogVerification checks the catalog output lists every archetype.
func TestCatalogVerification(t *testing.T) {
	out, err := runLoadout(t, t.TempDir(), "catalog", "--output", "json", "--pinned-backend", "none")
	require.NoError(t, err)
	assert.Equal(t, int64(6), gjson.Get(out, "archetypes.#").Int())
	assert.Equal(t, "30/25/20", gjson.Get(out, "tiers.6.main").String()+"/"+gjson.Get(out, "tiers.6.sub").String()+"/"+gjson.Get(out, "tiers.6.third").String())
}
