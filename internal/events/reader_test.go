package events

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kaverma/subcue/internal/submaker"
)

func TestReadAll(t *testing.T) {
	input := `{"type":"WordBoundary","text":"Hello","offset":0,"duration":1000000}

{"type":"WordBoundary","text":"world","offset":1000000,"duration":1000000}
`
	evs, err := ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	if evs[0].Text != "Hello" || evs[0].Offset != 0 {
		t.Errorf("event 0 wrong: %+v", evs[0])
	}
	if evs[1].Type != string(submaker.KindWordBoundary) {
		t.Errorf("event 1 type = %q", evs[1].Type)
	}
	if evs[1].Offset != 1000000 || evs[1].Duration != 1000000 {
		t.Errorf("event 1 timing wrong: %+v", evs[1])
	}
}

func TestReadAllSkipsBOM(t *testing.T) {
	input := "\ufeff" + `{"type":"SentenceBoundary","text":"Hi.","offset":0,"duration":5000000}` + "\n"
	evs, err := ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(evs) != 1 || evs[0].Text != "Hi." {
		t.Errorf("unexpected events: %+v", evs)
	}
}

func TestReadAllRejectsBadJSON(t *testing.T) {
	_, err := ReadAll(strings.NewReader("{not json}\n"))
	if err == nil {
		t.Error("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("error should name the offending line: %v", err)
	}
}

func TestWriteAllRoundTrip(t *testing.T) {
	evs := []submaker.Event{
		{Type: "WordBoundary", Text: "Hello", Offset: 0, Duration: 1000000},
		{Type: "WordBoundary", Text: "world", Offset: 1000000, Duration: 1000000},
	}

	var buf bytes.Buffer
	if err := WriteAll(&buf, evs); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	got, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != len(evs) {
		t.Fatalf("expected %d events, got %d", len(evs), len(got))
	}
	for i := range evs {
		if got[i] != evs[i] {
			t.Errorf("event %d: got %+v, want %+v", i, got[i], evs[i])
		}
	}
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "events.jsonl")
	content := `{"type":"WordBoundary","text":"foo","offset":2000000,"duration":1000000}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	evs, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(evs) != 1 || evs[0].Text != "foo" {
		t.Errorf("unexpected events: %+v", evs)
	}
}
