package parse

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParse_MultipleBlocks(t *testing.T) {
	response := `
- Title: Top 5 Nodes Control 82% of Network Influence
  Description: Analysis reveals extreme concentration. The top 5 nodes account for 82% of total PageRank score.
  Business Impact: Focus marketing efforts on these nodes. Their performance affects revenue.
  Confidence: 0.95

- Title: Network Fragmented into 3 Major Clusters
  Description: WCC analysis reveals 3 large connected clusters with 127 isolated nodes.
  Business Impact: Investigate why clusters are disconnected. Connect isolated nodes.
  Confidence: 0.88
`

	parser := NewInsightParser()
	insights := parser.Parse(response)

	if len(insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(insights))
	}

	if insights[0].Title != "Top 5 Nodes Control 82% of Network Influence" {
		t.Errorf("unexpected first title: %q", insights[0].Title)
	}
	if insights[0].Confidence != 0.95 {
		t.Errorf("expected confidence 0.95, got %v", insights[0].Confidence)
	}
	if !strings.Contains(strings.ToLower(insights[0].Description), "extreme concentration") {
		t.Errorf("unexpected description: %q", insights[0].Description)
	}
	if !strings.Contains(strings.ToLower(insights[0].BusinessImpact), "marketing") {
		t.Errorf("unexpected business impact: %q", insights[0].BusinessImpact)
	}

	if insights[1].Title != "Network Fragmented into 3 Major Clusters" {
		t.Errorf("unexpected second title: %q", insights[1].Title)
	}
	if insights[1].Confidence != 0.88 {
		t.Errorf("expected confidence 0.88, got %v", insights[1].Confidence)
	}
}

func TestParse_SingleBlock(t *testing.T) {
	response := `
- Title: Critical Bridge Nodes Identified
  Description: Found 7 nodes with high betweenness centrality acting as bottlenecks.
  Business Impact: Ensure redundancy for these nodes to prevent communication breakdown.
  Confidence: 0.91
`

	insights := NewInsightParser().Parse(response)

	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Title != "Critical Bridge Nodes Identified" {
		t.Errorf("unexpected title: %q", insights[0].Title)
	}
	if insights[0].Confidence != 0.91 {
		t.Errorf("expected confidence 0.91, got %v", insights[0].Confidence)
	}
}

func TestParse_Fallback(t *testing.T) {
	response := `This is an unstructured response that doesn't follow the expected format.
It contains some analysis but no clear sections.`

	insights := NewInsightParser().Parse(response)

	if len(insights) != 1 {
		t.Fatalf("expected exactly 1 fallback insight, got %d", len(insights))
	}
	if insights[0].Title != FallbackTitle {
		t.Errorf("expected fallback title %q, got %q", FallbackTitle, insights[0].Title)
	}
	if insights[0].Confidence > 0.6 {
		t.Errorf("fallback confidence must be <= 0.6, got %v", insights[0].Confidence)
	}
	if !strings.Contains(strings.ToLower(insights[0].Description), "unstructured response") {
		t.Errorf("fallback must echo the raw input, got %q", insights[0].Description)
	}
}

func TestParse_FallbackTruncatesOnRuneBoundary(t *testing.T) {
	// 3-byte runes ensure the byte limit lands mid-rune
	response := strings.Repeat("世", 400)

	insights := NewInsightParser().Parse(response)

	if len(insights) != 1 {
		t.Fatalf("expected exactly 1 fallback insight, got %d", len(insights))
	}
	if !utf8.ValidString(insights[0].Description) {
		t.Error("fallback description contains invalid UTF-8 after truncation")
	}
	if !strings.HasSuffix(insights[0].Description, "...") {
		t.Errorf("expected truncated echo to end with ellipsis, got %q", insights[0].Description)
	}
}

func TestParse_MultilineFields(t *testing.T) {
	response := `
- Title: Extreme Influence Distribution
  Description: Analysis of 500 nodes reveals power law distribution.
    Top nodes have disproportionate influence.
    Bottom 50% account for only 3% of total influence.
  Business Impact: Focus on top performers.
    Deprioritize long tail nodes for efficiency.
  Confidence: 0.89
`

	insights := NewInsightParser().Parse(response)

	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	desc := strings.ToLower(insights[0].Description)
	if !strings.Contains(desc, "power law distribution") || !strings.Contains(desc, "bottom 50%") {
		t.Errorf("continuation lines not folded into description: %q", insights[0].Description)
	}
	if !strings.Contains(strings.ToLower(insights[0].BusinessImpact), "focus on top performers") {
		t.Errorf("continuation lines not folded into impact: %q", insights[0].BusinessImpact)
	}
}

func TestParse_Idempotent(t *testing.T) {
	response := `
- Title: Top 5 Nodes Control 82% of Network Influence
  Description: Extreme concentration detected across the network.
  Business Impact: Focus on these nodes.
  Confidence: 0.95

- Title: Network Fragmented into 3 Major Clusters
  Description: Three large clusters with isolated nodes.
  Business Impact: Connect the clusters.
  Confidence: 0.88
`

	parser := NewInsightParser()
	first := parser.Parse(response)
	second := parser.Parse(response)

	if len(first) != len(second) {
		t.Fatalf("parse not idempotent: %d vs %d insights", len(first), len(second))
	}
	for i := range first {
		if first[i].Title != second[i].Title || first[i].Confidence != second[i].Confidence {
			t.Errorf("insight %d differs between parses: (%q, %v) vs (%q, %v)",
				i, first[i].Title, first[i].Confidence, second[i].Title, second[i].Confidence)
		}
	}
}

func TestParse_ConfidenceClamping(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"1.7", 1.0},
		{"-0.3", 0.0},
		{"0.42", 0.42},
		{"not-a-number", defaultConfidence},
	}

	for _, tt := range tests {
		response := "- Title: A Sufficiently Specific Insight Title\n  Description: Something measured.\n  Confidence: " + tt.raw
		insights := NewInsightParser().Parse(response)
		if len(insights) != 1 {
			t.Fatalf("confidence %q: expected 1 insight, got %d", tt.raw, len(insights))
		}
		if insights[0].Confidence != tt.want {
			t.Errorf("confidence %q: expected %v, got %v", tt.raw, tt.want, insights[0].Confidence)
		}
	}
}

func TestParse_LabelsCaseInsensitive(t *testing.T) {
	response := `
- TITLE: Uppercase Labels Still Parse Correctly
  DESCRIPTION: Labels are matched without case sensitivity.
  BUSINESS IMPACT: None beyond parsing.
  CONFIDENCE: 0.8
`

	insights := NewInsightParser().Parse(response)
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Title != "Uppercase Labels Still Parse Correctly" {
		t.Errorf("unexpected title: %q", insights[0].Title)
	}
	if insights[0].Confidence != 0.8 {
		t.Errorf("expected 0.8, got %v", insights[0].Confidence)
	}
}

func TestParseWithReasoning_SkipsPreamble(t *testing.T) {
	response := `
## Reasoning:
Looking at the data, I observe that the top 5 nodes have significantly higher scores
than the rest of the population, which suggests concentration.

## Insights:

- Title: Top 5 Control 80% of Influence
  Description: Extreme concentration detected in the network.
  Business Impact: Focus on these nodes.
  Confidence: 0.92
`

	insights := NewInsightParser().ParseWithReasoning(response)

	if len(insights) < 1 {
		t.Fatal("expected at least 1 insight")
	}
	if insights[0].Title != "Top 5 Control 80% of Influence" {
		t.Errorf("unexpected title: %q", insights[0].Title)
	}
	if insights[0].Confidence != 0.92 {
		t.Errorf("expected 0.92, got %v", insights[0].Confidence)
	}
}

func TestParseWithReasoning_NoPreamble(t *testing.T) {
	response := `
- Title: Plain Blocks Without Any Preamble
  Description: The reasoning-aware path must handle plain block output too.
  Confidence: 0.7
`

	insights := NewInsightParser().ParseWithReasoning(response)
	if len(insights) != 1 || insights[0].Title != "Plain Blocks Without Any Preamble" {
		t.Fatalf("unexpected parse result: %+v", insights)
	}
}
