package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/kaverma/subcue/internal/audio"
	"github.com/kaverma/subcue/internal/submaker"
)

// Result holds the boundary events produced for one audio input. All events
// in a result share a single kind.
type Result struct {
	Events   []submaker.Event
	Language string
	Duration time.Duration
}

// Producer turns an audio file into timed boundary events.
type Producer interface {
	Produce(ctx context.Context, audioPath string) (*Result, error)
}

// ChunkedProducer is implemented by producers that can process audio chunks
// concurrently, stitching the event timeline back together.
type ChunkedProducer interface {
	Producer
	ProduceFromChunks(
		ctx context.Context,
		chunks []audio.ChunkInfo,
		concurrency int,
	) (*Result, error)
}

// Provider selects a speech service.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Options configure event production.
type Options struct {
	Language string // source language of the audio
	Model    string
	Prompt   string
}

// Factory creates a producer for the given provider.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Producer, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIProducer(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiProducer(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// ticksFromSeconds converts a floating-point second count from a provider
// response into 100ns ticks.
func ticksFromSeconds(sec float64) int64 {
	return int64(time.Duration(sec*float64(time.Second)) / submaker.Tick)
}

// ticksFromDuration converts a duration into 100ns ticks.
func ticksFromDuration(d time.Duration) int64 {
	return int64(d / submaker.Tick)
}
