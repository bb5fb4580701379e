package heuristic

import (
	"fmt"

	"graphlens/internal/model"
)

// GenericInsights summarizes output from algorithms with no dedicated
// analyzer. It reports record counts and, when a numeric field is present,
// basic range statistics, so assembly always has a quantified candidate.
func GenericInsights(results []map[string]interface{}) []model.Insight {
	if len(results) == 0 {
		return nil
	}

	records := extractScores(results, "result", "score", "value")
	description := fmt.Sprintf("The analysis produced %d result records.", len(results))
	if len(records) > 0 {
		sortDescending(records)
		description += fmt.Sprintf(
			" Scores range from %.4f ('%s') down to %.4f across %d scored entities, with a median of %.4f.",
			records[0].Score, records[0].Key, records[len(records)-1].Score, len(records), medianScore(records))
	}

	return []model.Insight{{
		Title:       fmt.Sprintf("Analysis Produced %d Result Records", len(results)),
		Description: description,
		BusinessImpact: "Review the raw results with a domain expert; no specialized analyzer exists for this " +
			"algorithm family yet.",
		Confidence: 0.5,
		Type:       model.InsightKeyFinding,
	}}
}
