package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pminsight/internal/analysis"
	"pminsight/internal/history"
	"pminsight/internal/llm"
	"pminsight/internal/report"
	"pminsight/internal/search"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [product]",
	Short: "Analyze a product along six competitive dimensions",
	Long: `Runs a full competitive analysis of the named product and prints the
report. The result is also saved to local history for later viewing
and export.

Example:
  insight analyze "Notion AI"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

const apiKeyGuidance = `No Gemini API key configured.

Get a key at https://aistudio.google.com/apikey, then either:
  export GEMINI_API_KEY=your-key
or add it to the config file:
  llm:
    api_key: your-key`

func runAnalyze(cmd *cobra.Command, args []string) error {
	product := strings.TrimSpace(strings.Join(args, " "))

	if cfg.LLM.APIKey == "" {
		fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render(apiKeyGuidance))
		return errors.New("missing API key")
	}

	client := llm.NewGeminiClientWithConfig(llm.Config{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Model:           cfg.LLM.Model,
		Timeout:         cfg.LLM.TimeoutDuration(),
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
	}, logger)

	var provider analysis.ContextProvider
	if cfg.Search.Enabled {
		provider = search.New(logger)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Web search disabled; analyzing from model knowledge only."))
	}

	analyzer := analysis.New(client, provider, logger)

	fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(fmt.Sprintf("Analyzing %s with %s...", product, cfg.LLM.Model)))

	result, err := analyzer.Analyze(cmd.Context(), product)
	if err != nil {
		return err
	}

	sections := report.Sections(result.Record, analyzer.Contract())
	md := report.Markdown(result.Product, result.CreatedAt, sections)
	fmt.Fprintln(cmd.OutOrStdout(), report.RenderTerminal(md))

	if result.Degraded {
		fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render(
			fmt.Sprintf("Note: the model response needed recovery (%s path); some sections may be incomplete.", result.Path)))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Analysis complete."))
	}

	if err := saveToHistory(result, sections); err != nil {
		// History failure should not discard a finished analysis.
		logger.Warn("failed to save analysis to history", zap.Error(err))
		fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("Warning: analysis was not saved to history: "+err.Error()))
	}
	return nil
}

func saveToHistory(result *analysis.Analysis, sections []history.Section) error {
	store, err := history.Open(cfg.History.DatabasePath, cfg.History.Capacity)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Add(history.Entry{
		ID:        result.ID,
		Product:   result.Product,
		CreatedAt: result.CreatedAt,
		Degraded:  result.Degraded,
		Sections:  sections,
	})
}

func formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
