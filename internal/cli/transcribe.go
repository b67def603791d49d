package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaverma/subcue/internal/audio"
	"github.com/kaverma/subcue/internal/events"
	"github.com/kaverma/subcue/internal/speech"
	"github.com/kaverma/subcue/internal/subtitle"
	"github.com/kaverma/subcue/internal/video"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [media_file]",
	Short: "Transcribe an audio or video file into subtitles",
	Long: `Transcribe the specified audio or video file into subtitles.

The command accepts both audio files (mp3, wav, aac, etc.) and video
files (mp4, mkv, etc.). For video files, audio is automatically
extracted before transcription.

The openai provider returns word-level boundary events, which --text can
align to the line breaks of a reference script. The gemini provider
returns sentence-level events; its audio is split into chunks (default
1 minute) and transcribed in parallel.

Examples:
  subcue transcribe video.mp4
  subcue transcribe audio.mp3 --provider openai
  subcue transcribe speech.wav --provider openai --text script.txt
  subcue transcribe podcast.mp3 -d 2 --concurrency 5 --events-out events.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().
		String("provider", "gemini", "Speech provider (gemini, openai)")
	transcribeCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY env var)")
	transcribeCmd.Flags().
		String("model", "", "Model to use for transcription (provider-specific defaults)")
	transcribeCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt)")
	transcribeCmd.Flags().
		StringP("text", "t", "", "Reference text file whose line breaks the cue should match")
	transcribeCmd.Flags().
		IntP("chunk-duration", "d", 1, "Chunk duration in minutes for splitting audio (gemini)")
	transcribeCmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers (gemini)")
	transcribeCmd.Flags().
		String("events-out", "", "Also write the raw boundary events as JSONL to this path")
	transcribeCmd.Flags().
		String("prompt", "", "Extra context passed to the transcription model")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	formatStr, _ := cmd.Flags().GetString("format")
	textPath, _ := cmd.Flags().GetString("text")
	chunkDuration, _ := cmd.Flags().GetInt("chunk-duration")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	eventsOut, _ := cmd.Flags().GetString("events-out")
	prompt, _ := cmd.Flags().GetString("prompt")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	provider := speech.Provider(providerStr)
	if provider != speech.ProviderGemini && provider != speech.ProviderOpenAI {
		return fmt.Errorf("unsupported provider %q: use gemini or openai", providerStr)
	}

	format, err := parseFormat(formatStr)
	if err != nil {
		return err
	}

	if apiKey == "" {
		apiKey = os.Getenv(providerEnvVar(providerStr))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			providerEnvVar(providerStr),
		)
	}

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if chunkDuration <= 0 {
		return fmt.Errorf("chunk-duration must be positive, got %d", chunkDuration)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		outputPath = baseName + subtitle.GetExtensionForFormat(format)
	}

	logger.Infow("Starting transcription",
		"input", mediaPath,
		"output", outputPath,
		"provider", providerStr,
		"format", formatStr,
	)

	tempDir, err := os.MkdirTemp("", "subcue-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath := filepath.Join(tempDir, "audio.mp3")
	compressionOpts := audio.DefaultCompressionOptions()

	if audio.IsVideoFile(mediaPath) {
		logger.Infow("Extracting audio from video")

		processor := video.NewProcessor(tempDir)
		extractOpts := video.ExtractAudioOptions{
			Format:     compressionOpts.Format,
			SampleRate: compressionOpts.SampleRate,
			Channels:   compressionOpts.Channels,
			Bitrate:    compressionOpts.Bitrate,
		}
		if err := processor.ExtractAudio(ctx, mediaPath, audioPath, extractOpts); err != nil {
			return fmt.Errorf("failed to extract audio: %w", err)
		}
	} else {
		logger.Infow("Compressing audio for transcription")

		if err := audio.CompressAudio(ctx, mediaPath, audioPath, compressionOpts); err != nil {
			return fmt.Errorf("failed to compress audio: %w", err)
		}
	}

	duration, err := audio.GetDuration(audioPath)
	if err != nil {
		return fmt.Errorf("failed to get audio duration: %w", err)
	}

	logger.Infow("Audio prepared",
		"duration", duration.String(),
	)

	opts := speech.Options{
		Language: language,
		Model:    model,
		Prompt:   prompt,
	}

	producer, err := speech.Factory(ctx, provider, apiKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create producer: %w", err)
	}

	var result *speech.Result
	if chunked, ok := producer.(speech.ChunkedProducer); ok {
		chunkDir := filepath.Join(tempDir, "chunks")
		chunkDur := time.Duration(chunkDuration) * time.Minute

		logger.Infow("Splitting audio into chunks",
			"chunk_duration", chunkDur.String(),
		)

		chunks, err := audio.ChunkAudio(ctx, audioPath, chunkDur, chunkDir)
		if err != nil {
			return fmt.Errorf("failed to split audio: %w", err)
		}
		defer audio.CleanupChunks(chunks)

		logger.Infow("Transcribing audio chunks",
			"count", len(chunks),
			"concurrency", concurrency,
		)

		result, err = chunked.ProduceFromChunks(ctx, chunks, concurrency)
		if err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}
	} else {
		logger.Infow("Transcribing audio")

		result, err = producer.Produce(ctx, audioPath)
		if err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}
	}

	logger.Infow("Transcription complete",
		"events", len(result.Events),
	)

	if eventsOut != "" {
		if err := events.WriteFile(eventsOut, result.Events); err != nil {
			return fmt.Errorf("failed to write events: %w", err)
		}
		logger.Infow("Wrote boundary events",
			"path", eventsOut,
		)
	}

	maker, err := newMaker(textPath)
	if err != nil {
		return err
	}
	for _, ev := range result.Events {
		if err := maker.Feed(ev); err != nil {
			return fmt.Errorf("failed to buffer event: %w", err)
		}
	}

	cues := maker.Cues()
	if len(cues) == 0 {
		return fmt.Errorf("transcription produced no cues")
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
	fmt.Printf("Subtitles generated successfully: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(cues))
	fmt.Printf("  Duration: %s\n", duration.String())

	return nil
}
