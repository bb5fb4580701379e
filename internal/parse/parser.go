// Package parse turns free-form model output into structured insight
// candidates, tolerating format drift. Malformed input degrades to a single
// fallback insight rather than an error.
package parse

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"graphlens/internal/model"
)

// FallbackTitle is the sentinel title of the single insight produced when no
// labeled block can be found in the model output
const FallbackTitle = "Analysis Results (Unparsed)"

const (
	fallbackConfidence = 0.5
	defaultConfidence  = 0.7
	fallbackEchoLimit  = 500
)

// field labels recognized at the start of a line, matched case-insensitively
const (
	labelTitle       = "title:"
	labelDescription = "description:"
	labelImpact      = "business impact:"
	labelConfidence  = "confidence:"
)

// InsightParser extracts insight blocks from generated text
type InsightParser struct{}

// NewInsightParser creates a new insight parser
func NewInsightParser() *InsightParser {
	return &InsightParser{}
}

// Parse extracts insights from text following the repeated labeled-block
// pattern (Title / Description / Business Impact / Confidence). Field values
// may span multiple indented lines; continuation lines belong to the
// preceding field until the next label. If no labeled block is found
// anywhere, Parse returns exactly one low-confidence fallback insight
// echoing a prefix of the raw input.
func (p *InsightParser) Parse(text string) []model.Insight {
	var insights []model.Insight

	var current *blockBuilder
	flush := func() {
		if current != nil {
			if in, ok := current.build(); ok {
				insights = append(insights, in)
			}
			current = nil
		}
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		line = strings.TrimLeft(line, "-*")
		line = strings.TrimSpace(line)

		label, value := matchLabel(line)
		switch {
		case label == labelTitle:
			// A repeated Title label starts the next block
			flush()
			current = &blockBuilder{}
			current.set(label, value)
		case label != "":
			if current == nil {
				current = &blockBuilder{}
			}
			current.set(label, value)
		default:
			// Continuation line for the most recent field; text before the
			// first label (e.g. a reasoning preamble) is ignored
			if current != nil && line != "" {
				current.appendToLast(line)
			}
		}
	}
	flush()

	if len(insights) == 0 {
		return []model.Insight{fallbackInsight(text)}
	}
	return insights
}

// matchLabel checks whether the line starts with a recognized field label
// and returns the label plus the remainder of the line
func matchLabel(line string) (string, string) {
	lower := strings.ToLower(line)
	for _, label := range []string{labelTitle, labelDescription, labelImpact, labelConfidence} {
		if strings.HasPrefix(lower, label) {
			return label, strings.TrimSpace(line[len(label):])
		}
	}
	return "", ""
}

// blockBuilder accumulates the fields of one insight block
type blockBuilder struct {
	title       string
	description string
	impact      string
	confidence  string
	last        *string
}

func (b *blockBuilder) set(label, value string) {
	switch label {
	case labelTitle:
		b.title = value
		b.last = &b.title
	case labelDescription:
		b.description = value
		b.last = &b.description
	case labelImpact:
		b.impact = value
		b.last = &b.impact
	case labelConfidence:
		b.confidence = value
		b.last = &b.confidence
	}
}

func (b *blockBuilder) appendToLast(line string) {
	if b.last == nil {
		return
	}
	if *b.last == "" {
		*b.last = line
	} else {
		*b.last += " " + line
	}
}

func (b *blockBuilder) build() (model.Insight, bool) {
	if strings.TrimSpace(b.title) == "" {
		return model.Insight{}, false
	}

	confidence := defaultConfidence
	if b.confidence != "" {
		if v, err := strconv.ParseFloat(strings.Fields(b.confidence)[0], 64); err == nil {
			confidence = v
		}
	}

	in := model.Insight{
		Title:          strings.TrimSpace(b.title),
		Description:    strings.TrimSpace(b.description),
		BusinessImpact: strings.TrimSpace(b.impact),
		Confidence:     confidence,
		Type:           model.InsightKeyFinding,
	}
	in.ClampConfidence()
	return in, true
}

// fallbackInsight wraps unparseable output in a single low-trust insight so
// the model's raw analysis is preserved rather than discarded
func fallbackInsight(text string) model.Insight {
	echo := strings.TrimSpace(text)
	if len(echo) > fallbackEchoLimit {
		cut := fallbackEchoLimit
		// Back up to a rune boundary so the echo stays valid UTF-8
		for cut > 0 && !utf8.RuneStart(echo[cut]) {
			cut--
		}
		echo = echo[:cut] + "..."
	}

	return model.Insight{
		Title: FallbackTitle,
		Description: "The model response did not follow the structured insight format. Raw output: " +
			echo,
		BusinessImpact: "Review the raw model output manually before acting on it.",
		Confidence:     fallbackConfidence,
		Type:           model.InsightKeyFinding,
	}
}
