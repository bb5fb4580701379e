package model

import (
	"fmt"
	"time"

	"graphlens/internal/industry"
)

// ReportingConfig controls model-driven insight generation and the quality
// bar applied to candidates. Constructed once per report-generation call (or
// reused across calls), read-only thereafter.
type ReportingConfig struct {
	UseLLMInterpretation bool          `json:"use_llm_interpretation" yaml:"use_llm_interpretation"`
	MinConfidence        float64       `json:"min_confidence" yaml:"min_confidence"`
	UseReasoningChain    bool          `json:"use_reasoning_chain" yaml:"use_reasoning_chain"`
	MaxInsightsPerReport int           `json:"max_insights_per_report" yaml:"max_insights_per_report"`
	LLMTimeout           time.Duration `json:"llm_timeout" yaml:"llm_timeout"`

	MinDescriptionLength  int  `json:"min_description_length" yaml:"min_description_length"`
	MinTitleLength        int  `json:"min_title_length" yaml:"min_title_length"`
	RequireQuantification bool `json:"require_quantification" yaml:"require_quantification"`
	FilterGenericImpacts  bool `json:"filter_generic_impacts" yaml:"filter_generic_impacts"`

	Industry    string   `json:"industry" yaml:"industry"`
	DomainTerms []string `json:"domain_terms,omitempty" yaml:"domain_terms,omitempty"`
}

// DefaultReportingConfig returns the generic-industry defaults
func DefaultReportingConfig() ReportingConfig {
	return ReportingConfig{
		UseLLMInterpretation:  true,
		MinConfidence:         0.3,
		UseReasoningChain:     false,
		MaxInsightsPerReport:  5,
		LLMTimeout:            30 * time.Second,
		MinDescriptionLength:  100,
		MinTitleLength:        15,
		RequireQuantification: true,
		FilterGenericImpacts:  true,
		Industry:              "generic",
	}
}

// ReportingConfigForIndustry builds a config from the named industry profile.
// The profile lookup happens here, once, at construction time.
func ReportingConfigForIndustry(id string) ReportingConfig {
	profile := industry.Lookup(id)

	cfg := DefaultReportingConfig()
	cfg.Industry = profile.Name
	cfg.MinConfidence = profile.MinConfidence
	cfg.RequireQuantification = profile.RequireQuantification
	cfg.FilterGenericImpacts = profile.FilterGenericImpacts
	cfg.DomainTerms = profile.DomainTerms
	return cfg
}

// Validate rejects malformed configuration. Violations are fatal at
// construction time, never deferred to report-build time.
func (c ReportingConfig) Validate() error {
	if c.MinConfidence < 0.0 || c.MinConfidence > 1.0 {
		return fmt.Errorf("min_confidence must be between 0.0 and 1.0, got %v", c.MinConfidence)
	}
	if c.MaxInsightsPerReport < 1 {
		return fmt.Errorf("max_insights_per_report must be >= 1, got %d", c.MaxInsightsPerReport)
	}
	if c.LLMTimeout < time.Second {
		return fmt.Errorf("llm_timeout must be >= 1s, got %v", c.LLMTimeout)
	}
	return nil
}
