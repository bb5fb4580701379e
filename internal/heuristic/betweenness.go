package heuristic

import (
	"fmt"
	"strings"

	"graphlens/internal/model"
)

// betweennessFields are tried in order when extracting a betweenness value
// from a raw record
var betweennessFields = []string{"betweenness", "centrality", "result", "score"}

// bottleneckFactor marks entities an order of magnitude above the median
const bottleneckFactor = 10.0

// BetweennessInsights analyzes betweenness-centrality output, identifying
// structural bridges and entities far enough above the median to act as
// bottlenecks.
func BetweennessInsights(results []map[string]interface{}) []model.Insight {
	records := extractScores(results, betweennessFields...)
	if len(records) == 0 {
		return nil
	}

	sortDescending(records)
	median := medianScore(records)

	topK := 5
	if topK > len(records) {
		topK = len(records)
	}
	top := records[:topK]

	names := make([]string, 0, len(top))
	for _, r := range top {
		names = append(names, fmt.Sprintf("'%s' (%.3f)", r.Key, r.Score))
	}

	insights := []model.Insight{{
		Title: fmt.Sprintf("Critical Bridge Entities: Top %d of %d by Betweenness", topK, len(records)),
		Description: fmt.Sprintf(
			"The %d highest-betweenness entities - %s - carry a disproportionate share of shortest paths "+
				"through the network (%d entities analyzed, median betweenness %.3f). These entities connect "+
				"regions that would otherwise communicate poorly or not at all.",
			topK, strings.Join(names, ", "), len(records), median),
		BusinessImpact: fmt.Sprintf(
			"Ensure redundancy for these %d bridge entities; losing one would fragment cross-network flows. "+
				"They are also the highest-leverage points for monitoring.", topK),
		Confidence: 0.8,
		Type:       model.InsightKeyFinding,
	}}

	if median > 0 {
		var bottlenecks []string
		for _, r := range records {
			if r.Score >= bottleneckFactor*median {
				bottlenecks = append(bottlenecks, fmt.Sprintf("'%s' (%.1fx median)", r.Key, r.Score/median))
			}
		}
		if len(bottlenecks) > 0 {
			insights = append(insights, model.Insight{
				Title: fmt.Sprintf("Unusual Bottleneck Concentration in %d Entities", len(bottlenecks)),
				Description: fmt.Sprintf(
					"%d of %d entities (%.0f%%) sit at least %.0fx above the median betweenness of %.3f: %s. "+
						"An order-of-magnitude gap marks genuine structural chokepoints rather than ordinary "+
						"high-traffic entities.",
					len(bottlenecks), len(records), float64(len(bottlenecks))/float64(len(records))*100,
					bottleneckFactor, median, strings.Join(bottlenecks, ", ")),
				BusinessImpact: "Treat these as the network's single points of failure. Plan alternate paths " +
					"before any maintenance or decommissioning that touches them.",
				Confidence: 0.82,
				Type:       model.InsightAnomaly,
			})
		}
	}

	return insights
}
