package industry

import (
	"sort"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		id       string
		wantName string
	}{
		{"adtech", "adtech"},
		{"advertising", "adtech"},
		{"identity_resolution", "adtech"},
		{"fintech", "fintech"},
		{"financial_services", "fintech"},
		{"banking", "fintech"},
		{"social", "social"},
		{"social_network", "social"},
		{"community", "social"},
		{"generic", "generic"},
		{"default", "generic"},
		{"biotech", "generic"},
		{"", "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := Lookup(tt.id); got.Name != tt.wantName {
				t.Errorf("Lookup(%q).Name = %q, want %q", tt.id, got.Name, tt.wantName)
			}
		})
	}
}

func TestLookupNormalizesIdentifier(t *testing.T) {
	if got := Lookup("  FinTech  "); got.Name != "fintech" {
		t.Errorf("expected padded mixed-case id to resolve to fintech, got %q", got.Name)
	}
}

func TestProfileThresholds(t *testing.T) {
	adtech := Lookup("adtech")
	if adtech.MinConfidence != 0.25 {
		t.Errorf("adtech MinConfidence = %v, want 0.25", adtech.MinConfidence)
	}
	if adtech.RequireQuantification {
		t.Error("adtech should not require quantification")
	}

	fintech := Lookup("fintech")
	if fintech.MinConfidence != 0.4 {
		t.Errorf("fintech MinConfidence = %v, want 0.4", fintech.MinConfidence)
	}
	if !fintech.RequireQuantification {
		t.Error("fintech should require quantification")
	}

	generic := Lookup("generic")
	if generic.MinConfidence != 0.3 {
		t.Errorf("generic MinConfidence = %v, want 0.3", generic.MinConfidence)
	}
	if len(generic.DomainTerms) != 0 {
		t.Errorf("generic profile should carry no domain terms, got %v", generic.DomainTerms)
	}
}

func TestSupported(t *testing.T) {
	ids := Supported()
	if len(ids) == 0 {
		t.Fatal("expected at least one supported industry")
	}
	if !sort.StringsAreSorted(ids) {
		t.Errorf("expected sorted identifiers, got %v", ids)
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for _, want := range []string{"adtech", "fintech", "social", "generic"} {
		if !seen[want] {
			t.Errorf("expected %q in supported industries", want)
		}
	}
}
