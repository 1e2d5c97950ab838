package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	ligue1, ok := c.Competition("FD:2015")
	require.True(t, ok)
	assert.Equal(t, int64(301), ligue1.SportMonksLeagueID)
	assert.Equal(t, "Ligue 1", ligue1.Name)

	id, ok := c.TeamID("rc   lens")
	require.True(t, ok)
	assert.Equal(t, int64(271), id)

	alias, ok := c.TeamID("Olympique Marseille")
	require.True(t, ok)
	assert.Equal(t, int64(44), alias)

	_, ok = c.TeamID("Unknown United")
	assert.False(t, ok)
}

func TestCatalog_RecordsAreTaggedAndTyped(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	records := c.Records()
	require.Len(t, records, len(c.Competitions()))
	for _, r := range records {
		assert.Equal(t, source.Catalog, r.Source)
		require.NotNil(t, r.Name)
	}

	var faCup competition.Competition
	for _, r := range records {
		if r.ID == "FD:2055" {
			faCup = r
		}
	}
	assert.Equal(t, competition.TypeCup, faCup.Type)
	assert.Equal(t, int64(24), faCup.ProviderID)
}

func TestParse_RejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"missing id":        "competitions:\n  - {name: X, sportmonks_league_id: 1}\n",
		"missing league id": "competitions:\n  - {id: 'FD:1', name: X}\n",
		"duplicate id":      "competitions:\n  - {id: 'FD:1', sportmonks_league_id: 1}\n  - {id: 'FD:1', sportmonks_league_id: 2}\n",
		"conflicting club":  "clubs:\n  - {name: A, sportmonks_team_id: 1}\n  - {name: B, aliases: [a], sportmonks_team_id: 2}\n",
		"broken yaml":       "competitions: [",
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestLoad_ReadsFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	raw := "competitions:\n  - {id: 'SM:999', name: Test League, country: Nowhere, sportmonks_league_id: 999}\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Competitions(), 1)

	name, ok := c.LeagueName(999)
	assert.True(t, ok)
	assert.Equal(t, "Test League", name)
}
