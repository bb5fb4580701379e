package heuristic

import (
	"fmt"

	"graphlens/internal/model"
)

// componentIDFields are tried in order when extracting a component
// assignment from a raw record
var componentIDFields = []string{"component", "cluster", "community"}

const (
	fragmentationThreshold   = 0.5 // singleton components / total components
	overAggregationThreshold = 0.4 // largest component share of all entities
)

// ComponentInsights analyzes connected-component output. It flags
// fragmentation (many singleton components) and over-aggregation (one
// component absorbing a disproportionate share of entities).
func ComponentInsights(results []map[string]interface{}) []model.Insight {
	sizes := make(map[string]int)
	order := make([]string, 0)

	for _, rec := range results {
		var id string
		for _, field := range componentIDFields {
			if v, ok := rec[field]; ok {
				id = fmt.Sprintf("%v", v)
				break
			}
		}
		if id == "" {
			continue
		}
		if _, seen := sizes[id]; !seen {
			order = append(order, id)
		}
		sizes[id]++
	}

	totalEntities := 0
	singletons := 0
	largestID := ""
	largestSize := 0
	for _, id := range order {
		size := sizes[id]
		totalEntities += size
		if size == 1 {
			singletons++
		}
		if size > largestSize {
			largestID, largestSize = id, size
		}
	}
	if totalEntities == 0 {
		return nil
	}

	totalComponents := len(sizes)
	largestShare := float64(largestSize) / float64(totalEntities)
	singletonRatio := float64(singletons) / float64(totalComponents)

	insights := []model.Insight{{
		Title: fmt.Sprintf("Network Partitioned into %d Components Across %d Entities", totalComponents, totalEntities),
		Description: fmt.Sprintf(
			"Component analysis grouped %d entities into %d connected components. The largest component (id %s) "+
				"holds %d entities (%.1f%% of the network); %d components are singletons containing a single entity.",
			totalEntities, totalComponents, largestID, largestSize, largestShare*100, singletons),
		BusinessImpact: fmt.Sprintf(
			"Use the %d-component structure as the baseline for cluster-level reporting and segmentation.",
			totalComponents),
		Confidence: 0.8,
		Type:       model.InsightKeyFinding,
	}}

	if singletonRatio > fragmentationThreshold {
		insights = append(insights, model.Insight{
			Title: fmt.Sprintf("Fragmentation: %d Isolated Entities Out of %d Components", singletons, totalComponents),
			Description: fmt.Sprintf(
				"%d of %d components (%.0f%%) are singletons - isolated entities not connected to anything else. "+
					"High singleton ratios usually indicate missing link data or an aggregation window that is too "+
					"short, rather than genuinely disconnected populations.",
				singletons, totalComponents, singletonRatio*100),
			BusinessImpact: "Investigate why these entities are isolated: likely data quality or onboarding gaps. " +
				"Extending the linking window often reconnects a large share of singletons.",
			Confidence: 0.75,
			Type:       model.InsightPattern,
		})
	}

	if largestShare > overAggregationThreshold {
		insights = append(insights, model.Insight{
			Title: fmt.Sprintf("One Component Absorbs %.0f%% of All Entities", largestShare*100),
			Description: fmt.Sprintf(
				"Component %s contains %d of %d entities (%.1f%%), far above the %.0f%% over-aggregation threshold. "+
					"A single dominant component at this scale often means a shared hub (public IP, publisher, "+
					"service account) is falsely bridging otherwise unrelated clusters.",
				largestID, largestSize, totalEntities, largestShare*100, overAggregationThreshold*100),
			BusinessImpact: "Identify and exclude the bridging hub from clustering, then re-run the analysis. " +
				"Until then, treat aggregate metrics for this component as unreliable.",
			Confidence: 0.8,
			Type:       model.InsightAnomaly,
		})
	}

	return insights
}
