// Package validate scores and filters candidate insights against
// industry-aware quality thresholds. Quality problems deduct confidence
// rather than rejecting outright, and a retention floor guarantees the
// validated list is never empty when candidates exist.
package validate

import (
	"regexp"
	"sort"
	"strings"

	"graphlens/internal/model"
)

// Weights are the additive confidence deductions applied per quality
// criterion. The magnitudes are tuned, not principled; callers that need
// different trade-offs pass their own.
type Weights struct {
	ShortTitle            float64
	GenericTitle          float64
	ShortDescription      float64
	MissingQuantification float64
	GenericImpact         float64
}

// DefaultWeights returns the standard penalty magnitudes
func DefaultWeights() Weights {
	return Weights{
		ShortTitle:            0.10,
		GenericTitle:          0.20,
		ShortDescription:      0.10,
		MissingQuantification: 0.15,
		GenericImpact:         0.10,
	}
}

// retentionFloor: validation never returns fewer than min(3, candidates)
// insights, so a report is never emptied by over-filtering
const retentionFloor = 3

// genericTitles are sentinel titles that carry no information
var genericTitles = map[string]bool{
	"insight":                     true,
	"insights":                    true,
	"llm analysis":                true,
	"analysis":                    true,
	"analysis results":            true,
	"analysis results (unparsed)": true,
	"key finding":                 true,
	"summary":                     true,
	"results":                     true,
}

// genericImpactPhrases are filler recommendations; an impact composed
// entirely of these says nothing actionable
var genericImpactPhrases = []string{
	"further analysis",
	"further investigation",
	"requires investigation",
	"additional investigation",
	"derived from",
	"needs review",
	"more data needed",
	"continue monitoring",
	"investigate further",
}

var quantifiedPattern = regexp.MustCompile(`[0-9%]`)

// fillerWords carry no meaning on their own when judging whether an impact
// string says anything beyond its generic phrases
var fillerWords = map[string]bool{
	"recommended": true,
	"required":    true,
	"requires":    true,
	"needed":      true,
	"suggested":   true,
	"advised":     true,
	"warranted":   true,
	"should":      true,
	"consider":    true,
	"results":     true,
	"data":        true,
}

// Validator applies the quality pipeline to candidate insights
type Validator struct {
	cfg     model.ReportingConfig
	weights Weights
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg model.ReportingConfig, weights Weights) *Validator {
	return &Validator{cfg: cfg, weights: weights}
}

// Validate caps, penalizes, orders, and filters the candidates. Penalties
// are additive confidence deductions; an insight is dropped only when its
// adjusted confidence falls below the configured minimum AND dropping it
// leaves at least min(3, N) insights retained. Output is ordered by
// descending adjusted confidence.
func (v *Validator) Validate(candidates []model.Insight) []model.Insight {
	if len(candidates) == 0 {
		return nil
	}

	if len(candidates) > v.cfg.MaxInsightsPerReport {
		candidates = candidates[:v.cfg.MaxInsightsPerReport]
	}

	scored := make([]model.Insight, len(candidates))
	copy(scored, candidates)
	for i := range scored {
		scored[i].Confidence -= v.penalty(scored[i])
		scored[i].ClampConfidence()
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})

	floor := retentionFloor
	if len(scored) < floor {
		floor = len(scored)
	}

	kept := len(scored)
	for kept > floor && scored[kept-1].Confidence < v.cfg.MinConfidence {
		kept--
	}

	return scored[:kept]
}

// penalty sums the confidence deductions for one insight
func (v *Validator) penalty(in model.Insight) float64 {
	var total float64

	if len(in.Title) < v.cfg.MinTitleLength {
		total += v.weights.ShortTitle
	}
	if genericTitles[strings.ToLower(strings.TrimSpace(in.Title))] {
		total += v.weights.GenericTitle
	}
	if len(in.Description) < v.cfg.MinDescriptionLength {
		total += v.weights.ShortDescription
	}
	if v.cfg.RequireQuantification && !quantifiedPattern.MatchString(in.Title+in.Description) {
		total += v.weights.MissingQuantification
	}
	if v.cfg.FilterGenericImpacts && v.impactIsGeneric(in.BusinessImpact) {
		total += v.weights.GenericImpact
	}

	return total
}

// impactIsGeneric reports whether a business impact consists entirely of
// filler phrases. Configured domain terms exempt an impact outright:
// industry vocabulary is not filler.
func (v *Validator) impactIsGeneric(impact string) bool {
	lower := strings.ToLower(strings.TrimSpace(impact))
	if lower == "" {
		return true
	}

	for _, term := range v.cfg.DomainTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return false
		}
	}

	matched := false
	stripped := lower
	for _, phrase := range genericImpactPhrases {
		if strings.Contains(stripped, phrase) {
			stripped = strings.ReplaceAll(stripped, phrase, " ")
			matched = true
		}
	}
	if !matched {
		return false
	}

	// Generic only if nothing substantive survives the stripping
	if quantifiedPattern.MatchString(stripped) {
		return false
	}
	for _, word := range strings.Fields(nonLetters.ReplaceAllString(stripped, " ")) {
		if len(word) > 3 && !fillerWords[word] {
			return false
		}
	}
	return true
}

var nonLetters = regexp.MustCompile(`[^a-z]+`)
