package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaverma/subcue/internal/logging"
	"github.com/kaverma/subcue/internal/subtitle"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subcue",
	Short: "Subtitle toolkit built on timed boundary events",
	Long: `Subcue builds, aligns, translates, and embeds subtitles.

Timed word or sentence boundary events - produced by a transcription
provider or read from a JSONL stream - are grouped into SRT or VTT cues,
optionally aligned to the line breaks of a reference script.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("output", "o", "", "Output file path (use - for stdout where supported)")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
}

func parseFormat(s string) (subtitle.Format, error) {
	switch strings.ToLower(s) {
	case "srt":
		return subtitle.FormatSRT, nil
	case "vtt":
		return subtitle.FormatVTT, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use srt or vtt", s)
	}
}

// providerEnvVar names the environment variable that carries a provider's
// API key.
func providerEnvVar(provider string) string {
	switch provider {
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return "API_KEY"
	}
}
