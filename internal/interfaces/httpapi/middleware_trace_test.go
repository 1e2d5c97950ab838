package httpapi

import "testing"

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /HEALTHZ ", want: false},
		{path: "/readyz", want: false},
		{path: "/api/matches_global", want: true},
		{path: "/api/catalog_global", want: true},
		{path: "/api/crest", want: true},
		{path: "/docs/openapi.yaml", want: true},
	}

	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}
