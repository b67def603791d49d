package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaverma/subcue/internal/events"
	"github.com/kaverma/subcue/internal/submaker"
	"github.com/kaverma/subcue/internal/subtitle"
)

var alignCmd = &cobra.Command{
	Use:   "align [events_file]",
	Short: "Build subtitles from a stream of timed boundary events",
	Long: `Build subtitles from a JSONL stream of timed boundary events.

Each input line is one event: {"type","text","offset","duration"} with
offset and duration in 100-nanosecond ticks. A stream carries either
WordBoundary or SentenceBoundary events; mixing the two is an error.

Without --text every event becomes its own cue. With --text, word
events are regrouped so the emitted cue reproduces the line breaks of
the reference script, and the whole stream becomes one multi-line cue.

Examples:
  subcue align events.jsonl
  subcue align events.jsonl --text script.txt
  subcue align events.jsonl -f vtt -o subs.vtt
  subcue align events.jsonl -o -`,
	Args: cobra.ExactArgs(1),
	RunE: runAlign,
}

func init() {
	rootCmd.AddCommand(alignCmd)

	alignCmd.Flags().
		StringP("text", "t", "", "Reference text file whose line breaks the cue should match")
	alignCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt)")
}

func runAlign(cmd *cobra.Command, args []string) error {
	eventsPath := args[0]

	textPath, _ := cmd.Flags().GetString("text")
	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	format, err := parseFormat(formatStr)
	if err != nil {
		return err
	}

	evs, err := events.ReadFile(eventsPath)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	if len(evs) == 0 {
		return fmt.Errorf("event stream is empty: %s", eventsPath)
	}

	maker, err := newMaker(textPath)
	if err != nil {
		return err
	}

	for _, ev := range evs {
		if err := maker.Feed(ev); err != nil {
			return fmt.Errorf("failed to buffer event: %w", err)
		}
	}

	logger.Infow("Buffered boundary events",
		"count", len(evs),
		"kind", maker.Kind(),
	)

	cues := maker.Cues()

	if outputPath == "-" {
		if format == subtitle.FormatVTT {
			fmt.Print(subtitle.ComposeVTT(cues))
		} else {
			fmt.Print(maker.SRT())
		}
		return nil
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(eventsPath, filepath.Ext(eventsPath))
		outputPath = baseName + subtitle.GetExtensionForFormat(format)
	}

	subs := &subtitle.Subtitle{
		Entries:  cues,
		Language: language,
		Format:   string(format),
	}

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return fmt.Errorf("failed to create subtitle writer: %w", err)
	}
	if err := writer.Write(subs, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles written: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(cues))

	return nil
}

func newMaker(textPath string) (*submaker.Maker, error) {
	if textPath == "" {
		return submaker.New(), nil
	}
	data, err := os.ReadFile(textPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference text: %w", err)
	}
	return submaker.NewWithText(string(data)), nil
}
