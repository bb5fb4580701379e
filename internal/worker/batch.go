package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"graphlens/internal/cache"
	"graphlens/internal/model"
	"graphlens/internal/report"
)

// Builder builds one report from one execution result. Satisfied by
// report.Generator; batch jobs hold it as an interface so tests can stub it.
type Builder interface {
	GenerateReport(ctx context.Context, exec model.ExecutionResult, businessContext string) (*model.AnalysisReport, error)
}

// ReportJob builds a report for a single execution result
type ReportJob struct {
	Source          string // file path or job id, for attribution in results
	Exec            model.ExecutionResult
	Builder         Builder
	BusinessContext string

	// Provider is the model provider name used for rate limiting; empty
	// when the model path is disabled.
	Provider string
	Limiter  *Limiter
}

// Execute builds the report
func (j *ReportJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Provider); err != nil {
			return &ReportResult{Source: j.Source, Error: err}
		}
	}

	rep, err := j.Builder.GenerateReport(ctx, j.Exec, j.BusinessContext)
	if err != nil {
		return &ReportResult{Source: j.Source, Error: err}
	}
	return &ReportResult{Source: j.Source, Report: rep}
}

// ReportResult represents the result of one report build
type ReportResult struct {
	Source string
	Report *model.AnalysisReport
	Error  error
}

// GetError returns the error from the report result
func (r *ReportResult) GetError() error {
	return r.Error
}

// BatchProcessor builds reports for many execution results concurrently.
// Each build is independent; the only shared state is the read-only
// configuration inside the builder.
type BatchProcessor struct {
	builder         Builder
	renderer        *report.Renderer
	concurrency     int
	limiter         *Limiter
	provider        string
	businessContext string
	reportCache     cache.Cache
	cacheTTL        time.Duration
	logger          zerolog.Logger
}

// BatchOption configures a BatchProcessor
type BatchOption func(*BatchProcessor)

// WithLimiter rate-limits model invocations across the batch
func WithLimiter(limiter *Limiter, provider string) BatchOption {
	return func(b *BatchProcessor) {
		b.limiter = limiter
		b.provider = provider
	}
}

// WithBusinessContext passes caller-supplied context into every prompt
func WithBusinessContext(bc string) BatchOption {
	return func(b *BatchProcessor) {
		b.businessContext = bc
	}
}

// WithReportCache caches rendered reports by job id so re-running a batch
// over unchanged results skips the rebuild
func WithReportCache(c cache.Cache, ttl time.Duration) BatchOption {
	return func(b *BatchProcessor) {
		b.reportCache = c
		b.cacheTTL = ttl
	}
}

// WithLogger attaches a logger for batch progress
func WithLogger(logger zerolog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(builder Builder, concurrency int, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		builder:     builder,
		renderer:    report.NewRenderer(false),
		concurrency: concurrency,
		cacheTTL:    24 * time.Hour,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ProcessResults builds reports for the given execution results
// concurrently. Cancelling the context stops the batch: queued builds are
// dropped and in-flight builds are cancelled.
func (b *BatchProcessor) ProcessResults(ctx context.Context, execs []model.ExecutionResult) []*ReportResult {
	if len(execs) == 0 {
		return []*ReportResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	var hits []*ReportResult
	for _, exec := range execs {
		if rr, ok := b.cachedResult(exec.Job.JobID, exec.Job.JobID); ok {
			hits = append(hits, rr)
			continue
		}
		pool.Submit(&ReportJob{
			Source:          exec.Job.JobID,
			Exec:            exec,
			Builder:         b.builder,
			BusinessContext: b.businessContext,
			Provider:        b.provider,
			Limiter:         b.limiter,
		})
	}

	return b.collect(hits, pool.Wait())
}

// ProcessFiles reads execution results from JSON files and builds reports
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*ReportResult {
	if len(paths) == 0 {
		return []*ReportResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	var hits []*ReportResult
	for _, path := range paths {
		exec, err := ReadResultFile(path)
		if err != nil {
			b.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable result file")
			pool.Submit(&failedJob{source: path, err: err})
			continue
		}
		if rr, ok := b.cachedResult(path, exec.Job.JobID); ok {
			hits = append(hits, rr)
			continue
		}
		pool.Submit(&ReportJob{
			Source:          path,
			Exec:            exec,
			Builder:         b.builder,
			BusinessContext: b.businessContext,
			Provider:        b.provider,
			Limiter:         b.limiter,
		})
	}

	return b.collect(hits, pool.Wait())
}

// collect merges cache hits with pool results, caching fresh builds
func (b *BatchProcessor) collect(hits []*ReportResult, built []Result) []*ReportResult {
	out := make([]*ReportResult, 0, len(hits)+len(built))
	out = append(out, hits...)
	for _, result := range built {
		rr := result.(*ReportResult)
		out = append(out, rr)
		b.cacheRendered(rr)
	}
	return out
}

// cachedResult rebuilds a report from its cached JSON rendering. Corrupt
// entries are evicted and treated as a miss.
func (b *BatchProcessor) cachedResult(source, jobID string) (*ReportResult, bool) {
	if b.reportCache == nil || jobID == "" {
		return nil, false
	}

	key := cache.ReportKey(jobID, string(model.FormatJSON))
	data, ok := b.reportCache.Get(key)
	if !ok {
		return nil, false
	}

	var rep model.AnalysisReport
	if err := json.Unmarshal(data, &rep); err != nil {
		_ = b.reportCache.Delete(key)
		return nil, false
	}

	b.logger.Debug().Str("job_id", jobID).Msg("report served from cache")
	return &ReportResult{Source: source, Report: &rep}, true
}

// cacheRendered stores the JSON rendering of a successful build
func (b *BatchProcessor) cacheRendered(rr *ReportResult) {
	if b.reportCache == nil || rr.Error != nil || rr.Report == nil || rr.Report.JobID == "" {
		return
	}
	data, err := b.renderer.Render(rr.Report, model.FormatJSON)
	if err != nil {
		return
	}
	key := cache.ReportKey(rr.Report.JobID, string(model.FormatJSON))
	if err := b.reportCache.Set(key, data, b.cacheTTL); err != nil {
		b.logger.Warn().Err(err).Str("job_id", rr.Report.JobID).Msg("failed to cache report")
	}
}

// CachedReport returns the cached JSON rendering for a job, if present
func (b *BatchProcessor) CachedReport(jobID string) ([]byte, bool) {
	if b.reportCache == nil {
		return nil, false
	}
	return b.reportCache.Get(cache.ReportKey(jobID, string(model.FormatJSON)))
}

// failedJob carries a pre-build failure through the pool so batch results
// stay positionally complete
type failedJob struct {
	source string
	err    error
}

func (j *failedJob) Execute(ctx context.Context) Result {
	return &ReportResult{Source: j.source, Error: j.err}
}

// ReadResultFile reads one execution result from a JSON file. Accepts either
// a full ExecutionResult document or a bare array of result records.
func ReadResultFile(path string) (model.ExecutionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ExecutionResult{}, fmt.Errorf("read result file: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var records []map[string]interface{}
		if err := json.Unmarshal(data, &records); err != nil {
			return model.ExecutionResult{}, fmt.Errorf("parse result records: %w", err)
		}
		return model.ExecutionResult{
			Job:     model.AnalysisJob{Status: model.StatusCompleted},
			Success: true,
			Results: records,
		}, nil
	}

	var exec model.ExecutionResult
	if err := json.Unmarshal(data, &exec); err != nil {
		return model.ExecutionResult{}, fmt.Errorf("parse execution result: %w", err)
	}
	return exec, nil
}

// ReadResultPaths reads result-file paths from a list file (one per line).
// Empty lines and #-comments are skipped; duplicates are dropped.
func ReadResultPaths(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
