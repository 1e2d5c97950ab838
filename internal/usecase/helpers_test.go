package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/grounder-api/internal/domain/catalog"
	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int        { return &v }

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func testLogger() *logging.Logger {
	return logging.NewNop()
}

func fixture(tag source.Tag, id, home, away string, kickoff time.Time, score *[2]int) match.Match {
	m := match.Match{
		ID:       id,
		Source:   tag,
		Kickoff:  &kickoff,
		Status:   match.StatusScheduled,
		HomeTeam: match.TeamRef{Name: strPtr(home)},
		AwayTeam: match.TeamRef{Name: strPtr(away)},
	}
	if score != nil {
		m.Score = match.Score{Home: intPtr(score[0]), Away: intPtr(score[1])}.DeriveWinner()
		m.Status = match.StatusFinished
	}
	return m
}

func league(tag source.Tag, id, name, country string) competition.Competition {
	return competition.Competition{
		ID:      id,
		Source:  tag,
		Name:    strPtr(name),
		Type:    competition.TypeLeague,
		Country: country,
	}
}
