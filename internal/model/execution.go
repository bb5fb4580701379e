package model

import (
	"sort"
	"time"
)

// ExecutionStatus tracks the lifecycle of an analysis job
type ExecutionStatus string

const (
	StatusPending   ExecutionStatus = "pending"
	StatusSubmitted ExecutionStatus = "submitted"
	StatusRunning   ExecutionStatus = "running"
	StatusCompleted ExecutionStatus = "completed"
	StatusFailed    ExecutionStatus = "failed"
	StatusCancelled ExecutionStatus = "cancelled"
)

// AnalysisJob carries metadata about a submitted graph-analytics job
type AnalysisJob struct {
	JobID            string            `json:"job_id"`
	TemplateName     string            `json:"template_name"`
	Algorithm        string            `json:"algorithm"`
	Status           ExecutionStatus   `json:"status"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	StartedAt        *time.Time        `json:"started_at,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	ExecutionSeconds float64           `json:"execution_time_seconds,omitempty"`
	ResultCount      int               `json:"result_count,omitempty"`
	ResultCollection string            `json:"result_collection,omitempty"`
	ErrorMessage     string            `json:"error_message,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// ExecutionResult is an immutable snapshot of a finished (or failed) job.
// Each result record maps field names to values; records carry at minimum an
// entity key ("_key") plus the numeric or categorical field relevant to the
// algorithm ("result" for ranking scores, "component" for connected
// components, "betweenness" for centrality).
type ExecutionResult struct {
	Job     AnalysisJob              `json:"job"`
	Success bool                     `json:"success"`
	Results []map[string]interface{} `json:"results,omitempty"`
	Metrics map[string]interface{}   `json:"metrics,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

// TopResults returns the n highest-scoring records ordered by the given
// numeric field, descending. Records without the field sort last.
func (r ExecutionResult) TopResults(field string, n int) []map[string]interface{} {
	out := make([]map[string]interface{}, len(r.Results))
	copy(out, r.Results)

	sort.SliceStable(out, func(i, j int) bool {
		vi, oki := NumericField(out[i], field)
		vj, okj := NumericField(out[j], field)
		if oki != okj {
			return oki
		}
		return vi > vj
	})

	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// NumericField extracts a numeric value from a result record, tolerating the
// numeric types JSON decoding and drivers produce
func NumericField(record map[string]interface{}, field string) (float64, bool) {
	v, ok := record[field]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// EntityKey extracts the entity identifier from a result record
func EntityKey(record map[string]interface{}) string {
	for _, field := range []string{"_key", "_id", "key", "id", "node"} {
		if v, ok := record[field]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
