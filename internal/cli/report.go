package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"graphlens/internal/llm"
	"graphlens/internal/model"
	"graphlens/internal/report"
	"graphlens/internal/worker"
)

var (
	outPath         string
	outFormat       string
	industryID      string
	businessContext string
	minConfidence   float64
	maxInsights     int
	useReasoning    bool
	noFooter        bool
	llmEnabled      bool
	llmProvider     string
	llmModel        string
	llmTimeout      time.Duration
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <results.json>",
	Short: "Generate an insight report from an execution result file",
	Long: `Report builds a validated insight report from one execution result:
- Read algorithm output records from a JSON file
- Interpret them via a language model (optional) or built-in heuristics
- Classify and quality-score the candidate insights
- Render the report as markdown, JSON, HTML, or plain text

Example:
  graphlens report results/pagerank.json
  graphlens report results/wcc.json --industry adtech --format markdown -o report.md
  graphlens report results/pagerank.json --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	// Output flags
	reportCmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (default: stdout)")
	reportCmd.Flags().StringVar(&outFormat, "format", "markdown", "output format (markdown, json, html, text)")
	reportCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in markdown reports")

	// Validation flags
	reportCmd.Flags().StringVar(&industryID, "industry", "generic", "industry profile (adtech, fintech, social, generic)")
	reportCmd.Flags().StringVar(&businessContext, "context", "", "business context embedded in the model prompt")
	reportCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "override the industry confidence floor")
	reportCmd.Flags().IntVar(&maxInsights, "max-insights", 0, "override the max insights per report")

	// LLM flags
	reportCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable model interpretation")
	reportCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "model provider (openai, anthropic, ollama)")
	reportCmd.Flags().StringVar(&llmModel, "llm-model", "", "model name (provider default if empty)")
	reportCmd.Flags().DurationVar(&llmTimeout, "llm-timeout", 30*time.Second, "per-call model timeout")
	reportCmd.Flags().BoolVar(&useReasoning, "reasoning", false, "use chain-of-thought prompting")
}

func runReport(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(outFormat)
	if err != nil {
		return err
	}

	exec, err := worker.ReadResultFile(args[0])
	if err != nil {
		return err
	}

	gen, err := buildGenerator()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Building report: %s (%d records, industry %s)\n",
			args[0], len(exec.Results), industryID)
	}

	rep, err := gen.GenerateReport(context.Background(), exec, businessContext)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	renderer := report.NewRenderer(!noFooter)
	if outPath != "" {
		if err := renderer.WriteFile(rep, format, outPath); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s report: %s\n", format, outPath)
		}
		return nil
	}

	data, err := renderer.Render(rep, format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// buildGenerator assembles a report generator from flags and environment.
// Environment lookup for API keys happens only here, never inside the core.
func buildGenerator() (*report.Generator, error) {
	cfg := model.ReportingConfigForIndustry(industryID)
	cfg.UseLLMInterpretation = llmEnabled
	cfg.UseReasoningChain = useReasoning
	cfg.LLMTimeout = llmTimeout
	if minConfidence > 0 {
		cfg.MinConfidence = minConfidence
	}
	if maxInsights > 0 {
		cfg.MaxInsightsPerReport = maxInsights
	}

	var provider llm.Provider
	if llmEnabled {
		llmCfg, err := buildLLMConfig()
		if err != nil {
			return nil, err
		}
		provider, err = llm.NewProvider(llmCfg)
		if err != nil {
			return nil, err
		}
	}

	return report.NewGenerator(provider, cfg, newLogger())
}

// buildLLMConfig collects provider settings from flags and environment
func buildLLMConfig() (llm.Config, error) {
	cfg := llm.DefaultConfig()
	cfg.Provider = llmProvider
	cfg.Model = llmModel
	cfg.Timeout = int(llmTimeout.Seconds())

	switch llmProvider {
	case "openai":
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.APIKey == "" {
			return cfg, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.APIKey == "" {
			return cfg, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.BaseURL = baseURL
		}
	}

	return cfg, nil
}
