package model

// Insight represents a single quantified observation derived from algorithm output
type Insight struct {
	Title          string      `json:"title"`                     // Short, quantified headline
	Description    string      `json:"description"`               // Detailed analysis with numeric evidence
	BusinessImpact string      `json:"business_impact,omitempty"` // Actionable recommendation
	Confidence     float64     `json:"confidence"`                // 0.0-1.0, adjusted downward by validation
	Type           InsightType `json:"insight_type"`              // Category assigned after creation
}

// InsightType categorizes the nature of the insight
type InsightType string

const (
	InsightKeyFinding     InsightType = "key_finding"    // Default, catch-all category
	InsightPattern        InsightType = "pattern"        // Recurring structure in the data
	InsightAnomaly        InsightType = "anomaly"        // Irregularity or outlier
	InsightCorrelation    InsightType = "correlation"    // Relationship between metrics
	InsightRecommendation InsightType = "recommendation" // Direct call to action
)

// ClampConfidence forces confidence back into [0.0, 1.0]
func (i *Insight) ClampConfidence() {
	if i.Confidence < 0.0 {
		i.Confidence = 0.0
	}
	if i.Confidence > 1.0 {
		i.Confidence = 1.0
	}
}
