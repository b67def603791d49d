package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/kaverma/subcue/internal/audio"
	"github.com/kaverma/subcue/internal/submaker"
)

// OpenAIProducer emits WordBoundary events from Whisper word-level
// timestamps, falling back to SentenceBoundary events when the model only
// returns segments.
type OpenAIProducer struct {
	client  openai.Client
	model   string
	options Options
}

// word entry from a Whisper verbose_json response
type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// segment entry from a Whisper verbose_json response
type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperVerboseResponse struct {
	Text     string           `json:"text"`
	Words    []whisperWord    `json:"words"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
}

func NewOpenAIProducer(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAIProducer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAIProducer{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// Produce transcribes a single audio file into boundary events.
func (p *OpenAIProducer) Produce(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	duration, _ := audio.GetDuration(audioPath)

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(p.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word", "segment"},
	}

	if p.options.Language != "" {
		params.Language = openai.String(p.options.Language)
	}
	if p.options.Prompt != "" {
		params.Prompt = openai.String(p.options.Prompt)
	}

	resp, err := p.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	evs, language, err := parseBoundaryEvents(resp.RawJSON())
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription: %w", err)
	}
	if language == "" {
		language = p.options.Language
	}

	return &Result{
		Events:   evs,
		Language: language,
		Duration: duration,
	}, nil
}

// parseBoundaryEvents converts a Whisper verbose_json payload into boundary
// events: word timestamps when present, otherwise one sentence event per
// segment.
func parseBoundaryEvents(rawJSON string) ([]submaker.Event, string, error) {
	if rawJSON == "" {
		return nil, "", fmt.Errorf("empty response")
	}

	var resp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &resp); err != nil {
		return nil, "", fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	if len(resp.Words) > 0 {
		evs := make([]submaker.Event, 0, len(resp.Words))
		for _, w := range resp.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			start := ticksFromSeconds(w.Start)
			evs = append(evs, submaker.Event{
				Type:     string(submaker.KindWordBoundary),
				Text:     text,
				Offset:   start,
				Duration: ticksFromSeconds(w.End) - start,
			})
		}
		return evs, resp.Language, nil
	}

	if len(resp.Segments) == 0 {
		return nil, "", fmt.Errorf("no words or segments in response")
	}

	evs := make([]submaker.Event, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		start := ticksFromSeconds(seg.Start)
		evs = append(evs, submaker.Event{
			Type:     string(submaker.KindSentenceBoundary),
			Text:     text,
			Offset:   start,
			Duration: ticksFromSeconds(seg.End) - start,
		})
	}

	return evs, resp.Language, nil
}

func (p *OpenAIProducer) Close() error {
	return nil
}
