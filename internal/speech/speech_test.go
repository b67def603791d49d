package speech

import (
	"context"
	"testing"
	"time"

	"github.com/kaverma/subcue/internal/submaker"
)

func TestFactoryReturnsOpenAIProducer(t *testing.T) {
	ctx := context.Background()
	producer, err := Factory(ctx, ProviderOpenAI, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := producer.(*OpenAIProducer); !ok {
		t.Errorf("expected *OpenAIProducer, got %T", producer)
	}
}

func TestFactoryReturnsGeminiProducer(t *testing.T) {
	ctx := context.Background()
	producer, err := Factory(ctx, ProviderGemini, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderGemini) returned error: %v", err)
	}
	if _, ok := producer.(*GeminiProducer); !ok {
		t.Errorf("expected *GeminiProducer, got %T", producer)
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	_, err := Factory(ctx, Provider("unknown"), "fake-key", Options{})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestOpenAIProducerRequiresAPIKey(t *testing.T) {
	ctx := context.Background()
	_, err := NewOpenAIProducer(ctx, "", Options{})
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestGeminiProducerImplementsChunkedProducer(t *testing.T) {
	ctx := context.Background()
	producer, err := Factory(ctx, ProviderGemini, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory error: %v", err)
	}
	if _, ok := producer.(ChunkedProducer); !ok {
		t.Error("GeminiProducer should implement ChunkedProducer")
	}
}

func TestParseBoundaryEventsWords(t *testing.T) {
	rawJSON := `{
		"text": "Hello world",
		"language": "en",
		"duration": 0.3,
		"words": [
			{"word": "Hello", "start": 0.0, "end": 0.1},
			{"word": "world", "start": 0.1, "end": 0.3}
		]
	}`

	evs, language, err := parseBoundaryEvents(rawJSON)
	if err != nil {
		t.Fatalf("parseBoundaryEvents failed: %v", err)
	}
	if language != "en" {
		t.Errorf("language = %q, want en", language)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	if evs[0].Type != string(submaker.KindWordBoundary) {
		t.Errorf("event 0 type = %q", evs[0].Type)
	}
	if evs[1].Offset != 1_000_000 {
		t.Errorf("event 1 offset = %d ticks, want 1000000", evs[1].Offset)
	}
	if evs[1].Duration != 2_000_000 {
		t.Errorf("event 1 duration = %d ticks, want 2000000", evs[1].Duration)
	}
}

func TestParseBoundaryEventsSegmentFallback(t *testing.T) {
	rawJSON := `{
		"text": "Hello world.",
		"segments": [
			{"start": 0.0, "end": 1.5, "text": " Hello world. "}
		]
	}`

	evs, _, err := parseBoundaryEvents(rawJSON)
	if err != nil {
		t.Fatalf("parseBoundaryEvents failed: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	if evs[0].Type != string(submaker.KindSentenceBoundary) {
		t.Errorf("event type = %q, want SentenceBoundary", evs[0].Type)
	}
	if evs[0].Text != "Hello world." {
		t.Errorf("text = %q, expected trimmed segment text", evs[0].Text)
	}
	if evs[0].Duration != 15_000_000 {
		t.Errorf("duration = %d ticks, want 15000000", evs[0].Duration)
	}
}

func TestParseBoundaryEventsEmpty(t *testing.T) {
	if _, _, err := parseBoundaryEvents(""); err == nil {
		t.Error("expected error for empty response")
	}
	if _, _, err := parseBoundaryEvents(`{"text":""}`); err == nil {
		t.Error("expected error when neither words nor segments present")
	}
}

func TestTickConversions(t *testing.T) {
	if got := ticksFromSeconds(0.3); got != 3_000_000 {
		t.Errorf("ticksFromSeconds(0.3) = %d, want 3000000", got)
	}
	if got := ticksFromDuration(time.Second); got != 10_000_000 {
		t.Errorf("ticksFromDuration(1s) = %d, want 10000000", got)
	}
}
