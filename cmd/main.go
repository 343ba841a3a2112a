package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// @title           Log Triage API
// @version         1.0
// @description     Upload a plain-text log, get the lines that look like errors or warnings plus a Findings/Fixes analysis. Also hosts a small chat gateway that can carry analyses into a conversation.

// @contact.name   API Support Team
// @contact.url    http://www.example.com/support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
// @schemes   http https

// @tag.name         analysis
// @tag.description  Log upload and triage
// @tag.name         chat
// @tag.description  Chat sessions relayed to the analysis backend
// @tag.name         health
// @tag.description  API health check operations

var rootCmd = &cobra.Command{
	Use:   "logtriage",
	Short: "Log triage backend",
	Long: `logtriage flags the lines of a log file that mention error, warn,
exception or fail and asks an LLM (or a local keyword summarizer when no
API key is configured) for a short Findings/Fixes analysis.

Run "logtriage serve" for the HTTP API or "logtriage analyze <file>" for a
one-off analysis in the terminal.`,
	SilenceUsage: true,
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	rootCmd.AddCommand(newServeCmd(), newAnalyzeCmd())
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
