package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"graphlens/internal/cache"
	"graphlens/internal/model"
	"graphlens/internal/report"
	"graphlens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	noCache      bool
	providerRPS  float64
	// noFooter and the LLM flags are defined in report.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Build reports for multiple result files in parallel",
	Long: `Batch builds insight reports for many execution results concurrently:
- Read result-file paths from a list file (one per line)
- Build reports in parallel with a configurable worker count
- Rate-limit model invocations per provider
- Cache rendered reports by job id across runs

Example:
  graphlens batch results.txt
  graphlens batch results.txt --concurrency 8 --output-dir ./reports
  graphlens batch results.txt --llm openai --rps 2`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./graphlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	batchCmd.Flags().Float64Var(&providerRPS, "rps", 2, "model invocations per second per provider")

	batchCmd.Flags().StringVar(&outFormat, "format", "markdown", "output format (markdown, json, html, text)")
	batchCmd.Flags().StringVar(&industryID, "industry", "generic", "industry profile (adtech, fintech, social, generic)")
	batchCmd.Flags().StringVar(&businessContext, "context", "", "business context embedded in the model prompt")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in markdown reports")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable model interpretation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "model provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "model name (provider default if empty)")
	batchCmd.Flags().DurationVar(&llmTimeout, "llm-timeout", 30*time.Second, "per-call model timeout")
	batchCmd.Flags().BoolVar(&useReasoning, "reasoning", false, "use chain-of-thought prompting")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	format, err := report.ParseFormat(outFormat)
	if err != nil {
		return err
	}

	paths, err := worker.ReadResultPaths(listFile)
	if err != nil {
		return fmt.Errorf("read list file: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "  Graphlens Batch Processing\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  List file:    %s (%d results)\n", listFile, len(paths))
		fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
		fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
		fmt.Fprintf(os.Stderr, "  Industry:     %s\n", industryID)
		if llmEnabled {
			fmt.Fprintf(os.Stderr, "  Model:        %s/%s\n", llmProvider, llmModel)
		}
		fmt.Fprintf(os.Stderr, "\n")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	gen, err := buildGenerator()
	if err != nil {
		return err
	}

	opts := []worker.BatchOption{
		worker.WithBusinessContext(businessContext),
		worker.WithLogger(newLogger()),
	}
	if llmEnabled {
		opts = append(opts, worker.WithLimiter(worker.NewLimiter(providerRPS, 1), llmProvider))
	}
	if !noCache {
		home, err := os.UserHomeDir()
		if err == nil {
			c := cache.NewLayeredCache(time.Hour, filepath.Join(home, ".graphlens", "cache"), 24*time.Hour)
			opts = append(opts, worker.WithReportCache(c, 24*time.Hour))
		}
	}

	processor := worker.NewBatchProcessor(gen, concurrency, opts...)
	results := processor.ProcessFiles(ctx, paths)

	renderer := report.NewRenderer(!noFooter)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		outPath := filepath.Join(outputDir, reportFilename(result.Source, format))
		if err := renderer.WriteFile(result.Report, format, outPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", result.Source, err)
			continue
		}

		successCount++
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (%d insights)\n", result.Report.Title, len(result.Report.Insights))
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "  Batch Complete\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  Total:     %d results\n", len(results))
		fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
		fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
		fmt.Fprintf(os.Stderr, "\n")
	} else {
		fmt.Fprintf(os.Stderr, "Processed %d results: %d succeeded, %d failed (output: %s)\n",
			len(results), successCount, failureCount, outputDir)
	}

	return nil
}

var formatExtensions = map[model.ReportFormat]string{
	model.FormatMarkdown: ".md",
	model.FormatJSON:     ".json",
	model.FormatHTML:     ".html",
	model.FormatText:     ".txt",
}

// reportFilename derives an output filename from the result source path
func reportFilename(source string, format model.ReportFormat) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "report"
	}

	ext := formatExtensions[format]
	if ext == "" {
		ext = ".out"
	}
	return sanitizeFilename(base) + ext
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}

	return s
}
