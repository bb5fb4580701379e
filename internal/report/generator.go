package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"graphlens/internal/heuristic"
	"graphlens/internal/llm"
	"graphlens/internal/model"
	"graphlens/internal/parse"
	"graphlens/internal/validate"
)

// Generator orchestrates one report build: model attempt (optional), parse,
// heuristic fallback, validation, assembly. A single build is synchronous;
// each stage fully completes before the next begins.
type Generator struct {
	provider  llm.Provider // nil disables the model path
	parser    *parse.InsightParser
	validator *validate.Validator
	config    model.ReportingConfig
	logger    zerolog.Logger
}

// NewGenerator creates a generator. Configuration violations are fatal here,
// never deferred to report-build time.
func NewGenerator(provider llm.Provider, cfg model.ReportingConfig, logger zerolog.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("reporting config: %w", err)
	}

	return &Generator{
		provider:  provider,
		parser:    parse.NewInsightParser(),
		validator: validate.NewValidator(cfg, validate.DefaultWeights()),
		config:    cfg,
		logger:    logger,
	}, nil
}

// candidatePath records which branch produced the candidate insights. The
// fallback is an explicit branch merge, not exception suppression, so the
// trigger conditions stay testable.
type candidatePath string

const (
	pathModel     candidatePath = "model"
	pathHeuristic candidatePath = "heuristic"
)

type candidateSet struct {
	insights []model.Insight
	path     candidatePath
}

// GenerateReport builds a complete report for one execution result. It always
// returns a report: model failures trigger the heuristic path silently, empty
// results produce a zero-insight report. It errors only for genuine defects.
func (g *Generator) GenerateReport(ctx context.Context, exec model.ExecutionResult, businessContext string) (*model.AnalysisReport, error) {
	// Empty raw results short-circuit to assembly
	if len(exec.Results) == 0 {
		return g.assemble(exec, nil), nil
	}

	candidates := g.collectCandidates(ctx, exec, businessContext)

	parse.Classify(candidates.insights)
	validated := g.validator.Validate(candidates.insights)

	g.logger.Debug().
		Str("job_id", exec.Job.JobID).
		Str("algorithm", exec.Job.Algorithm).
		Str("path", string(candidates.path)).
		Int("candidates", len(candidates.insights)).
		Int("retained", len(validated)).
		Msg("report build complete")

	return g.assemble(exec, validated), nil
}

// collectCandidates runs the model branch when enabled and falls back to the
// heuristic branch on any model failure.
func (g *Generator) collectCandidates(ctx context.Context, exec model.ExecutionResult, businessContext string) candidateSet {
	if g.config.UseLLMInterpretation && g.provider != nil {
		insights, err := g.modelCandidates(ctx, exec, businessContext)
		if err == nil {
			return candidateSet{insights: insights, path: pathModel}
		}
		// Fallback is unconditional and silent to the caller
		g.logger.Warn().
			Err(err).
			Str("job_id", exec.Job.JobID).
			Str("provider", g.provider.Name()).
			Msg("model interpretation failed, using heuristic analysis")
	}

	analyze := heuristic.ForAlgorithm(exec.Job.Algorithm)
	return candidateSet{insights: analyze(exec.Results), path: pathHeuristic}
}

// modelCandidates invokes the generation provider within the configured
// timeout and parses the response into candidate insights.
func (g *Generator) modelCandidates(ctx context.Context, exec model.ExecutionResult, businessContext string) ([]model.Insight, error) {
	var prompt string
	if g.config.UseReasoningChain {
		prompt = llm.BuildReasoningPrompt(exec, g.config.Industry, businessContext)
	} else {
		prompt = llm.BuildInsightPrompt(exec, g.config.Industry, businessContext)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.config.LLMTimeout)
	defer cancel()

	resp, err := g.provider.Generate(callCtx, llm.GenerateRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, fmt.Errorf("empty response from %s", g.provider.Name())
	}

	if g.config.UseReasoningChain {
		return g.parser.ParseWithReasoning(resp.Content), nil
	}
	return g.parser.Parse(resp.Content), nil
}

// assemble builds the final report artifact
func (g *Generator) assemble(exec model.ExecutionResult, insights []model.Insight) *model.AnalysisReport {
	if insights == nil {
		insights = []model.Insight{}
	}

	return &model.AnalysisReport{
		Title:        reportTitle(exec.Job),
		Summary:      reportSummary(exec, insights),
		Algorithm:    exec.Job.Algorithm,
		Insights:     insights,
		JobID:        exec.Job.JobID,
		TemplateName: exec.Job.TemplateName,
		ResultCount:  len(exec.Results),
		GeneratedAt:  time.Now().UTC(),
	}
}

func reportTitle(job model.AnalysisJob) string {
	name := job.TemplateName
	if name == "" {
		name = job.Algorithm
	}
	if name == "" {
		return "Graph Analysis Report"
	}
	return fmt.Sprintf("%s Analysis Report", humanize(name))
}

func reportSummary(exec model.ExecutionResult, insights []model.Insight) string {
	if len(exec.Results) == 0 {
		return fmt.Sprintf("The %s analysis returned no result records. No insights could be generated from an empty result set.", algorithmLabel(exec.Job))
	}
	return fmt.Sprintf("The %s analysis produced %d result records, yielding %d validated insights.",
		algorithmLabel(exec.Job), len(exec.Results), len(insights))
}

func algorithmLabel(job model.AnalysisJob) string {
	if job.Algorithm != "" {
		return job.Algorithm
	}
	return "graph"
}

// humanize turns snake_case template names into title-cased labels
func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
