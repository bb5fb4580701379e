package parse

import (
	"strings"

	"graphlens/internal/model"
)

// Ordered classification rules: the first matching rule wins, so a title
// can never land in two categories. Opportunity/risk/problem language has
// no category of its own and falls through to the key-finding default.
var typeRules = []struct {
	keywords []string
	insight  model.InsightType
}{
	{[]string{"unusual", "unexpected", "outlier", "spike", "anomal"}, model.InsightAnomaly},
	{[]string{"pattern", "trend", "distribution"}, model.InsightPattern},
}

// InferType assigns an insight category from its title text using ordered
// case-insensitive keyword matching. Pure function: the same title always
// yields the same type.
func InferType(title string) model.InsightType {
	lower := strings.ToLower(title)

	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.insight
			}
		}
	}
	return model.InsightKeyFinding
}

// Classify annotates each insight in place with the type inferred from its
// title
func Classify(insights []model.Insight) {
	for i := range insights {
		insights[i].Type = InferType(insights[i].Title)
	}
}
