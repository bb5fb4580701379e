package model

import "time"

// AnalysisReport is the final artifact of one report build. Immutable once
// returned by the generator.
type AnalysisReport struct {
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Algorithm    string    `json:"algorithm"`
	Insights     []Insight `json:"insights"`
	JobID        string    `json:"job_id,omitempty"`
	TemplateName string    `json:"template_name,omitempty"`
	ResultCount  int       `json:"result_count"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// ReportFormat selects the serialization format for a rendered report
type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatJSON     ReportFormat = "json"
	FormatHTML     ReportFormat = "html"
	FormatText     ReportFormat = "text"
)
