package heuristic

import (
	"fmt"

	"graphlens/internal/model"
)

// rankingScoreFields are tried in order when extracting a ranking score
// from a raw record
var rankingScoreFields = []string{"result", "rank", "score", "pagerank", "value"}

// RankingInsights analyzes ranking-score output (PageRank and friends).
// It flags score concentration in the top entities and always names at
// least one specific entity key with its percentage share.
func RankingInsights(results []map[string]interface{}) []model.Insight {
	records := extractScores(results, rankingScoreFields...)
	if len(records) == 0 {
		return nil
	}

	sortDescending(records)
	total := sumScores(records)
	if total <= 0 {
		return nil
	}

	topK := 5
	if topK > len(records) {
		topK = len(records)
	}
	topShare := sumScores(records[:topK]) / total

	leader := records[0]
	leaderShare := leader.Score / total
	median := medianScore(records)

	var insights []model.Insight

	description := fmt.Sprintf(
		"Analysis of %d entities shows the top %d account for %.1f%% of the cumulative score. "+
			"Leading entity '%s' scores %.4f (%.1f%% of total)",
		len(records), topK, topShare*100, leader.Key, leader.Score, leaderShare*100)
	if median > 0 {
		description += fmt.Sprintf(", %.1fx the median of %.4f", leader.Score/median, median)
	}
	description += "."

	confidence := 0.8
	if topShare >= 0.5 {
		confidence = 0.85
		description += fmt.Sprintf(" This concentration indicates winner-take-most dynamics across the remaining %d entities.",
			len(records)-topK)
	}

	insights = append(insights, model.Insight{
		Title:       fmt.Sprintf("Top %d Entities Hold %.0f%% of Total Score", topK, topShare*100),
		Description: description,
		BusinessImpact: fmt.Sprintf(
			"Concentrate resources on the top %d entities; they drive %.0f%% of the measured influence. "+
				"Monitor them as potential single points of failure.", topK, topShare*100),
		Confidence: confidence,
		Type:       model.InsightKeyFinding,
	})

	// Long-tail distribution, only meaningful with a reasonable sample
	if len(records) >= 10 {
		tailStart := len(records) / 2
		tail := records[tailStart:]
		tailShare := sumScores(tail) / total

		insights = append(insights, model.Insight{
			Title: fmt.Sprintf("Bottom %d Entities Contribute Only %.0f%% of Score", len(tail), tailShare*100),
			Description: fmt.Sprintf(
				"The score distribution has a long tail: the bottom %d of %d entities (%.0f%%) collectively hold "+
					"%.1f%% of the total score, while entity '%s' alone holds %.1f%%. The distribution pattern is "+
					"strongly skewed toward the head.",
				len(tail), len(records), float64(len(tail))/float64(len(records))*100,
				tailShare*100, leader.Key, leaderShare*100),
			BusinessImpact: fmt.Sprintf(
				"Deprioritize the long tail for efficiency, or treat the %d low-scoring entities as a pool for "+
					"targeted growth experiments.", len(tail)),
			Confidence: 0.75,
			Type:       model.InsightPattern,
		})
	}

	// Dominant leader stands apart from the rest of the head
	if median > 0 && leader.Score >= 3*median {
		insights = append(insights, model.Insight{
			Title: fmt.Sprintf("Outlier: '%s' Scores %.1fx Above the Median", leader.Key, leader.Score/median),
			Description: fmt.Sprintf(
				"Entity '%s' scores %.4f against a median of %.4f across %d entities, a %.1fx gap. "+
					"No other entity exceeds %.4f. Such separation usually marks a structural hub rather than "+
					"ordinary variance.",
				leader.Key, leader.Score, median, len(records), leader.Score/median,
				records[min(1, len(records)-1)].Score),
			BusinessImpact: fmt.Sprintf(
				"Audit '%s' for hub behavior: its removal or failure would disproportionately affect the network.",
				leader.Key),
			Confidence: 0.78,
			Type:       model.InsightAnomaly,
		})
	}

	return insights
}
