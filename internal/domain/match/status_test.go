package match

import "testing"

func TestSportMonksStates(t *testing.T) {
	table := SportMonksStates()
	cases := map[int64]Status{
		1:   StatusScheduled,
		2:   StatusInPlay,
		3:   StatusHalftime,
		4:   StatusInPlay,
		5:   StatusFinished,
		6:   StatusFinished,
		7:   StatusFinished,
		8:   StatusPaused,
		9:   StatusCancelled,
		10:  StatusPostponed,
		11:  StatusAwarded,
		12:  StatusLive,
		17:  StatusInPlay,
		26:  StatusInPlay,
		31:  StatusCancelled,
		44:  StatusScheduled,
		999: StatusScheduled,
		0:   StatusScheduled,
	}
	for code, want := range cases {
		if got := table.FromCode(code); got != want {
			t.Fatalf("FromCode(%d) = %s, want %s", code, got, want)
		}
	}
}

func TestTheSportsDBText(t *testing.T) {
	table := TheSportsDBText()
	cases := map[string]Status{
		"Match Finished":   StatusFinished,
		"FT":               StatusFinished,
		"After Extra Time": StatusFinished,
		"Live":             StatusLive,
		"In Progress":      StatusLive,
		"Not Started":      StatusScheduled,
		"":                 StatusScheduled,
		"   ":              StatusScheduled,
		"Postponed":        StatusScheduled,
	}
	for raw, want := range cases {
		if got := table.FromText(raw); got != want {
			t.Fatalf("FromText(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestFootballDataLabels(t *testing.T) {
	table := FootballDataLabels()
	if got := table.FromText("timed"); got != StatusScheduled {
		t.Fatalf("expected TIMED to map to SCHEDULED, got %s", got)
	}
	if got := table.FromText("SUSPENDED"); got != StatusPaused {
		t.Fatalf("expected SUSPENDED to map to PAUSED, got %s", got)
	}
	if got := table.FromText("EXTRA_TIME"); got != StatusScheduled {
		t.Fatalf("expected unknown label to default to SCHEDULED, got %s", got)
	}
}

func TestNewStatusTable_CopiesInputs(t *testing.T) {
	codes := map[int64]Status{1: StatusLive}
	table := NewStatusTable(codes, nil, nil)
	codes[1] = StatusCancelled

	if got := table.FromCode(1); got != StatusLive {
		t.Fatalf("table must not observe caller mutation, got %s", got)
	}
}
