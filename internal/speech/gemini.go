package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/kaverma/subcue/internal/audio"
	"github.com/kaverma/subcue/internal/submaker"
)

// GeminiProducer emits SentenceBoundary events from Gemini's timestamped
// transcript segments.
type GeminiProducer struct {
	client  *genai.Client
	model   string
	options Options
}

// segment from Gemini's JSON response
type transcriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

func NewGeminiProducer(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiProducer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiProducer{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// Produce transcribes a single audio file into sentence boundary events.
func (p *GeminiProducer) Produce(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	uploadedFile, err := p.client.Files.UploadFromPath(ctx, audioPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio file: %w", err)
	}

	defer func() {
		_, _ = p.client.Files.Delete(ctx, uploadedFile.Name, nil)
	}()

	prompt := p.buildTranscriptionPrompt()

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromURI(uploadedFile.URI, uploadedFile.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	evs, err := p.parseTranscriptionResponse(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription: %w", err)
	}

	duration, _ := audio.GetDuration(audioPath)

	return &Result{
		Events:   evs,
		Language: p.options.Language,
		Duration: duration,
	}, nil
}

// produceChunk transcribes one chunk and shifts event offsets by the
// chunk's position in the original audio.
func (p *GeminiProducer) produceChunk(
	ctx context.Context,
	chunk audio.ChunkInfo,
) ([]submaker.Event, error) {
	result, err := p.Produce(ctx, chunk.Path)
	if err != nil {
		return nil, err
	}

	offset := ticksFromDuration(chunk.StartTime)
	shifted := make([]submaker.Event, len(result.Events))
	for i, ev := range result.Events {
		ev.Offset += offset
		shifted[i] = ev
	}

	return shifted, nil
}

// holds the result of transcribing one chunk
type chunkResult struct {
	Index  int
	Events []submaker.Event
	Error  error
}

// ProduceFromChunks transcribes chunks in parallel and merges the event
// streams back into chunk order.
func (p *GeminiProducer) ProduceFromChunks(
	ctx context.Context,
	chunks []audio.ChunkInfo,
	concurrency int,
) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	workChan := make(chan audio.ChunkInfo, len(chunks))
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for chunk := range workChan {
				evs, err := p.produceChunk(ctx, chunk)
				resultChan <- chunkResult{
					Index:  chunk.Index,
					Events: evs,
					Error:  err,
				}
			}
		})
	}

	for _, chunk := range chunks {
		workChan <- chunk
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]chunkResult, 0, len(chunks))
	for result := range resultChan {
		if result.Error != nil {
			return nil, fmt.Errorf("chunk %d failed: %w", result.Index, result.Error)
		}
		results = append(results, result)
	}

	// restore chunk order
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	var allEvents []submaker.Event
	for _, r := range results {
		allEvents = append(allEvents, r.Events...)
	}

	var totalDuration time.Duration
	if len(chunks) > 0 {
		totalDuration = chunks[len(chunks)-1].EndTime
	}

	return &Result{
		Events:   allEvents,
		Language: p.options.Language,
		Duration: totalDuration,
	}, nil
}

// creates the prompt for transcription
func (p *GeminiProducer) buildTranscriptionPrompt() string {
	var sb strings.Builder

	sb.WriteString("Generate a detailed transcript of this audio. ")
	sb.WriteString("For each sentence or phrase, provide the start timestamp, end timestamp, and the exact text spoken. ")
	sb.WriteString("Format your response as a JSON array with objects containing 'start', 'end', and 'text' fields, ")
	sb.WriteString("where 'start' and 'end' are timestamps in seconds (as numbers). ")

	if p.options.Language != "" {
		sb.WriteString(fmt.Sprintf("The audio is in %s. ", p.options.Language))
	}

	if p.options.Prompt != "" {
		sb.WriteString(p.options.Prompt)
		sb.WriteString(" ")
	}

	sb.WriteString("Return ONLY the JSON array, no other text or markdown formatting.")

	return sb.String()
}

// parses Gemini's response into sentence boundary events
func (p *GeminiProducer) parseTranscriptionResponse(
	result *genai.GenerateContentResponse,
) ([]submaker.Event, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				responseText += part.Text
			}
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in Gemini response")
	}

	responseText = cleanJSONResponse(responseText)

	var segments []transcriptSegment
	if err := json.Unmarshal([]byte(responseText), &segments); err != nil {
		return nil, fmt.Errorf(
			"failed to parse JSON response: %w (response: %s)",
			err,
			truncateString(responseText, 200),
		)
	}

	evs := make([]submaker.Event, 0, len(segments))
	for _, seg := range segments {
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

	return evs, nil
}

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	jsonBlockRegex := regexp.MustCompile("```(?:json)?\\s*")
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	return strings.TrimSpace(s)
}

// truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Close closes the Gemini client.
func (p *GeminiProducer) Close() error {
	return nil
}
