package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"log-triage-backend/config"
	"log-triage-backend/internal/kafka"
	"log-triage-backend/internal/llm"
	"log-triage-backend/internal/metrics"
	"log-triage-backend/internal/output"
	"log-triage-backend/internal/parser"
	"log-triage-backend/internal/service"
)

type analyzeOptions struct {
	output     string
	local      bool
	maxFlagged int
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a log file and print the result",
		Long: `Run the same triage the HTTP API performs over a local file.
Use "-" to read the log from stdin.

Examples:
  logtriage analyze /var/log/app.log
  logtriage analyze app.log --local
  kubectl logs my-pod | logtriage analyze - --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json")
	cmd.Flags().BoolVar(&opts.local, "local", false, "use the local keyword summarizer even when an API key is set")
	cmd.Flags().IntVar(&opts.maxFlagged, "max-flagged", 0, "maximum flagged lines (default from TRIAGE_MAX_FLAGGED)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, path string, opts *analyzeOptions) error {
	renderer, err := output.New(opts.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	raw, source, err := readLog(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	maxFlagged := cfg.Triage.MaxFlagged
	if opts.maxFlagged > 0 {
		maxFlagged = opts.maxFlagged
	}
	backend := llm.New(cfg)
	if opts.local {
		backend = llm.NewLocalBackend()
	}

	svc := service.NewAnalysisService(
		parser.NewKeywordSelector(maxFlagged),
		backend,
		metrics.NewSignalExtractor(),
		kafka.NewNoopAnalysisEventProducer(),
	)
	result, err := svc.AnalyzeLog(cmd.Context(), source, raw)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	log.Debug().Str("source", source).Int("flagged", len(result.Flagged)).Msg("Rendering analysis")
	return renderer.Render(result)
}

func readLog(stdin io.Reader, path string) ([]byte, string, error) {
	if path == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return raw, "stdin", nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, filepath.Base(path), nil
}
