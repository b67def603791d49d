package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaverma/subcue/internal/audio"
	"github.com/kaverma/subcue/internal/video"
)

var embedCmd = &cobra.Command{
	Use:   "embed [video_file] [subtitle_file]",
	Short: "Embed a subtitle file into a video as a soft track",
	Long: `Embed a subtitle file into a video container as a soft subtitle
track. Video and audio streams are copied, not re-encoded.

mp4-family containers carry the track as mov_text; mkv keeps the srt
stream as-is.

Examples:
  subcue embed video.mp4 video.srt
  subcue embed video.mkv video.ja.srt -o video.subbed.mkv`,
	Args: cobra.ExactArgs(2),
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	subtitlePath := args[1]
	ctx := context.Background()

	outputPath, _ := cmd.Flags().GetString("output")

	if !audio.IsVideoFile(videoPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected video file)",
			filepath.Ext(videoPath),
		)
	}

	ext := strings.ToLower(filepath.Ext(subtitlePath))
	if ext != ".srt" && ext != ".vtt" {
		return fmt.Errorf("unsupported subtitle format %q: use .srt or .vtt", ext)
	}

	if outputPath == "" {
		videoExt := filepath.Ext(videoPath)
		baseName := strings.TrimSuffix(videoPath, videoExt)
		outputPath = baseName + ".subbed" + videoExt
	}

	logger.Infow("Embedding subtitles",
		"video", videoPath,
		"subtitles", subtitlePath,
		"output", outputPath,
	)

	processor := video.NewProcessor(os.TempDir())
	if err := processor.EmbedSubtitles(ctx, videoPath, subtitlePath, outputPath); err != nil {
		return fmt.Errorf("failed to embed subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles embedded successfully: %s\n", absOutput)

	return nil
}
