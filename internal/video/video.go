package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/kaverma/subcue/internal/ffmpeg"
)

// ExtractAudioOptions hold options for audio extraction.
type ExtractAudioOptions struct {
	Format     string // output format (wav, mp3, aac, flac)
	SampleRate int    // sample rate in Hz
	Channels   int    // 1 = mono, 2 = stereo
	Bitrate    string // bitrate for lossy formats, e.g. "128k"
}

// DefaultExtractAudioOptions returns sensible defaults for transcription.
func DefaultExtractAudioOptions() ExtractAudioOptions {
	return ExtractAudioOptions{
		Format:     "wav",
		SampleRate: 16000,
		Channels:   1,
	}
}

// Processor runs ffmpeg-backed video operations.
type Processor struct {
	tempDir string
}

func NewProcessor(tempDir string) *Processor {
	return &Processor{
		tempDir: tempDir,
	}
}

// ExtractAudio extracts the audio track from a video file.
func (p *Processor) ExtractAudio(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractAudioOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"vn": "",              // no video
		"ar": opts.SampleRate, // sample rate
		"ac": opts.Channels,   // channels
		"y":  "",              // overwrite output
	}

	switch opts.Format {
	case "mp3":
		kwargs["acodec"] = "libmp3lame"
	case "aac":
		kwargs["acodec"] = "aac"
	case "flac":
		kwargs["acodec"] = "flac"
	default:
		kwargs["acodec"] = "pcm_s16le"
	}
	if opts.Bitrate != "" && (opts.Format == "mp3" || opts.Format == "aac") {
		kwargs["b:a"] = opts.Bitrate
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg extraction failed: %w", err)
	}

	return nil
}

// EmbedSubtitles muxes a subtitle file into a video container as a soft
// subtitle track. Video and audio streams are copied, not re-encoded.
func (p *Processor) EmbedSubtitles(
	ctx context.Context,
	videoPath, subtitlePath, outputPath string,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"c:v": "copy",
		"c:a": "copy",
		"c:s": SubtitleCodecForContainer(outputPath),
		"y":   "",
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	video := ffmpeg.Input(videoPath)
	subs := ffmpeg.Input(subtitlePath)

	err = ffmpeg.Output(
		[]*ffmpeg.Stream{video, subs},
		outputPath,
		kwargs,
	).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg embedding failed: %w", err)
	}

	return nil
}

// SubtitleCodecForContainer picks the subtitle codec a container supports:
// mp4-family containers need mov_text, mkv can carry srt streams directly.
func SubtitleCodecForContainer(outputPath string) string {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".mp4", ".m4v", ".mov":
		return "mov_text"
	default:
		return "srt"
	}
}
