package id

import "testing"

func TestRandomGenerator_NewID(t *testing.T) {
	g := NewRandomGenerator()
	a, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct ids")
	}
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"  abc-123_x.y ": "abc-123_x.y",
		"":               "",
		"has space":      "",
		"line\nbreak":    "",
		"<script>":       "",
	}
	for in, want := range tests {
		if got := Sanitize(in); got != want {
			t.Fatalf("Sanitize(%q)=%q want=%q", in, got, want)
		}
	}

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	if got := Sanitize(string(long)); got != "" {
		t.Fatalf("expected long id to be rejected")
	}
}
