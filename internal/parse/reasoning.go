package parse

import (
	"strings"

	"graphlens/internal/model"
)

// ParseWithReasoning handles reasoning-augmented output: a free-text
// chain-of-thought preamble followed by the labeled insight blocks. The
// preamble is skipped and the block section parsed with the same rules as
// Parse.
func (p *InsightParser) ParseWithReasoning(text string) []model.Insight {
	return p.Parse(stripReasoningPreamble(text))
}

// stripReasoningPreamble drops everything before the insights section. It
// anchors on an explicit "Insights" heading when present, otherwise on the
// first Title label; with neither anchor the full text is returned and the
// parser's own fallback applies.
func stripReasoningPreamble(text string) string {
	lower := strings.ToLower(text)

	for _, marker := range []string{"## insights", "insights:"} {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return text[idx+len(marker):]
		}
	}
	if idx := strings.Index(lower, labelTitle); idx >= 0 {
		return text[idx:]
	}
	return text
}
