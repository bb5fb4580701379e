package heuristic

import (
	"strings"
	"testing"
)

func rankingFixture() []map[string]interface{} {
	return []map[string]interface{}{
		{"_key": "P1", "result": 0.28},
		{"_key": "P2", "result": 0.15},
		{"_key": "P3", "result": 0.12},
		{"_key": "P4", "result": 0.10},
		{"_key": "P5", "result": 0.08},
		{"_key": "P6", "result": 0.05},
		{"_key": "P7", "result": 0.04},
		{"_key": "P8", "result": 0.03},
		{"_key": "P9", "result": 0.02},
		{"_key": "P10", "result": 0.01},
	}
}

func TestRankingInsights_Concentration(t *testing.T) {
	insights := RankingInsights(rankingFixture())

	if len(insights) < 2 {
		t.Fatalf("expected at least 2 insights, got %d", len(insights))
	}

	// Every heuristic insight must embed numeric evidence
	hasPercent := false
	for _, in := range insights {
		if strings.Contains(in.Title, "%") || strings.Contains(in.Description, "%") {
			hasPercent = true
		}
	}
	if !hasPercent {
		t.Error("expected at least one insight with a percentage")
	}

	// Must name the top entity and state its share
	namesLeader := false
	for _, in := range insights {
		if strings.Contains(in.Description, "P1") {
			namesLeader = true
		}
	}
	if !namesLeader {
		t.Error("expected an insight naming top entity P1")
	}
}

func TestRankingInsights_TopShareValue(t *testing.T) {
	insights := RankingInsights(rankingFixture())

	// Top 5 hold 0.73 of 0.88 total = 83%
	found := false
	for _, in := range insights {
		if strings.Contains(in.Title, "Top 5") && strings.Contains(in.Title, "83%") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected top-5 concentration title with 83%% share, got %+v", titles(insights))
	}
}

func TestRankingInsights_Empty(t *testing.T) {
	if got := RankingInsights(nil); len(got) != 0 {
		t.Errorf("expected no insights for empty input, got %d", len(got))
	}
	if got := RankingInsights([]map[string]interface{}{}); len(got) != 0 {
		t.Errorf("expected no insights for empty slice, got %d", len(got))
	}
}

func TestRankingInsights_NoScoreField(t *testing.T) {
	results := []map[string]interface{}{
		{"_key": "A", "label": "no numeric field"},
	}
	if got := RankingInsights(results); len(got) != 0 {
		t.Errorf("expected no insights without a score field, got %d", len(got))
	}
}

func TestRankingInsights_ConfidenceRange(t *testing.T) {
	for _, in := range RankingInsights(rankingFixture()) {
		if in.Confidence < 0.0 || in.Confidence > 1.0 {
			t.Errorf("confidence out of range: %v (%s)", in.Confidence, in.Title)
		}
	}
}
