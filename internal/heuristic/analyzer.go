// Package heuristic generates insights directly from raw result records,
// with no text-generation dependency. One analyzer per algorithm family, so
// a report can always be produced even with no model access.
package heuristic

import (
	"sort"
	"strings"

	"graphlens/internal/model"
)

// AnalyzeFunc computes candidate insights from the ordered result records of
// one execution. Empty input yields empty output, never an error.
type AnalyzeFunc func(results []map[string]interface{}) []model.Insight

// ForAlgorithm selects the analyzer for an algorithm family. Unrecognized
// algorithms get a generic record-count analyzer so downstream assembly
// still has something to validate.
func ForAlgorithm(algorithm string) AnalyzeFunc {
	alg := strings.ToLower(algorithm)

	switch {
	case strings.Contains(alg, "betweenness"):
		return BetweennessInsights
	case strings.Contains(alg, "wcc"), strings.Contains(alg, "scc"),
		strings.Contains(alg, "component"), strings.Contains(alg, "connected"):
		return ComponentInsights
	case strings.Contains(alg, "pagerank"), strings.Contains(alg, "rank"),
		strings.Contains(alg, "centrality"), strings.Contains(alg, "degree"),
		strings.Contains(alg, "hits"):
		return RankingInsights
	default:
		return GenericInsights
	}
}

// scoredRecord pairs an entity key with its extracted numeric score
type scoredRecord struct {
	Key   string
	Score float64
}

// extractScores pulls (key, score) pairs out of raw records, trying the
// given field names in order and skipping records with no usable score
func extractScores(results []map[string]interface{}, fields ...string) []scoredRecord {
	var records []scoredRecord
	for _, rec := range results {
		for _, field := range fields {
			if v, ok := model.NumericField(rec, field); ok {
				records = append(records, scoredRecord{Key: model.EntityKey(rec), Score: v})
				break
			}
		}
	}
	return records
}

func sortDescending(records []scoredRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
}

func sumScores(records []scoredRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Score
	}
	return total
}

// medianScore expects records sorted descending
func medianScore(records []scoredRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	return records[len(records)/2].Score
}
