package source

import "testing"

func TestTag_IDAndCountKey(t *testing.T) {
	if got := FootballData.ID("2015"); got != "FD:2015" {
		t.Fatalf("unexpected id: %q", got)
	}
	if got := TheSportsDB.ID(" "); got != "" {
		t.Fatalf("expected empty id for blank raw id, got %q", got)
	}
	if got := TheSportsDB.CountKey(); got != "theSportsDB" {
		t.Fatalf("unexpected count key: %q", got)
	}
}

func TestParse(t *testing.T) {
	cases := map[string]Tag{
		"football-data": FootballData,
		"footballData":  FootballData,
		" TheSportsDB ": TheSportsDB,
		"sportmonks":    SportMonks,
	}
	for raw, want := range cases {
		got, ok := Parse(raw)
		if !ok || got != want {
			t.Fatalf("Parse(%q) = %q,%v want %q", raw, got, ok, want)
		}
	}
	if _, ok := Parse("espn"); ok {
		t.Fatalf("expected unknown source to be rejected")
	}
}
