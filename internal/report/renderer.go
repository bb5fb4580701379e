package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"strings"

	"graphlens/internal/model"
)

// Renderer serializes a finished report to a presentation format. It is a
// pure transform: rendering never mutates the report.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// Render serializes the report in the requested format
func (r *Renderer) Render(rep *model.AnalysisReport, format model.ReportFormat) ([]byte, error) {
	switch format {
	case model.FormatJSON:
		return r.renderJSON(rep)
	case model.FormatMarkdown:
		return []byte(r.renderMarkdown(rep)), nil
	case model.FormatHTML:
		return r.renderHTML(rep)
	case model.FormatText:
		return []byte(r.renderText(rep)), nil
	default:
		return nil, fmt.Errorf("unknown report format: %s", format)
	}
}

// WriteFile renders the report and writes it to path
func (r *Renderer) WriteFile(rep *model.AnalysisReport, format model.ReportFormat, path string) error {
	data, err := r.Render(rep, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (r *Renderer) renderJSON(rep *model.AnalysisReport) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

func (r *Renderer) renderMarkdown(rep *model.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rep.Title)
	fmt.Fprintf(&b, "%s\n\n", rep.Summary)

	fmt.Fprintf(&b, "**Algorithm:** %s  \n", rep.Algorithm)
	if rep.JobID != "" {
		fmt.Fprintf(&b, "**Job:** %s  \n", rep.JobID)
	}
	fmt.Fprintf(&b, "**Result records:** %d  \n", rep.ResultCount)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	if len(rep.Insights) == 0 {
		b.WriteString("_No insights were generated for this result set._\n")
	} else {
		b.WriteString("## Insights\n\n")
		for i, in := range rep.Insights {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, in.Title)
			if in.Type != "" {
				fmt.Fprintf(&b, "**Type:** %s | **Confidence:** %.2f\n\n", in.Type, in.Confidence)
			} else {
				fmt.Fprintf(&b, "**Confidence:** %.2f\n\n", in.Confidence)
			}
			fmt.Fprintf(&b, "%s\n\n", in.Description)
			if in.BusinessImpact != "" {
				fmt.Fprintf(&b, "**Business Impact:** %s\n\n", in.BusinessImpact)
			}
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n*Generated by graphlens*\n")
	}

	return b.String()
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Summary}}</p>
<p><strong>Algorithm:</strong> {{.Algorithm}} | <strong>Result records:</strong> {{.ResultCount}}</p>
{{if .Insights}}
<h2>Insights</h2>
{{range $i, $in := .Insights}}
<section>
<h3>{{$in.Title}}</h3>
<p><strong>Confidence:</strong> {{printf "%.2f" $in.Confidence}}{{if $in.Type}} | <strong>Type:</strong> {{$in.Type}}{{end}}</p>
<p>{{$in.Description}}</p>
{{if $in.BusinessImpact}}<p><strong>Business Impact:</strong> {{$in.BusinessImpact}}</p>{{end}}
</section>
{{end}}
{{else}}
<p><em>No insights were generated for this result set.</em></p>
{{end}}
</body>
</html>
`))

func (r *Renderer) renderHTML(rep *model.AnalysisReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, rep); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderText(rep *model.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(rep.Title + "\n")
	b.WriteString(strings.Repeat("=", len(rep.Title)) + "\n\n")
	b.WriteString(rep.Summary + "\n\n")

	for i, in := range rep.Insights {
		fmt.Fprintf(&b, "%d. %s (confidence %.2f)\n", i+1, in.Title, in.Confidence)
		fmt.Fprintf(&b, "   %s\n", in.Description)
		if in.BusinessImpact != "" {
			fmt.Fprintf(&b, "   Impact: %s\n", in.BusinessImpact)
		}
		b.WriteString("\n")
	}

	if len(rep.Insights) == 0 {
		b.WriteString("No insights were generated for this result set.\n")
	}

	return b.String()
}

// ParseFormat converts a user-supplied format string to a ReportFormat
func ParseFormat(s string) (model.ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return model.FormatMarkdown, nil
	case "json":
		return model.FormatJSON, nil
	case "html":
		return model.FormatHTML, nil
	case "text", "txt", "plain":
		return model.FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format: %s (supported: markdown, json, html, text)", s)
	}
}
