package submaker

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func wordEvent(text string, offset, duration int64) Event {
	return Event{
		Type:     string(KindWordBoundary),
		Text:     text,
		Offset:   offset,
		Duration: duration,
	}
}

func sentenceEvent(text string, offset, duration int64) Event {
	return Event{
		Type:     string(KindSentenceBoundary),
		Text:     text,
		Offset:   offset,
		Duration: duration,
	}
}

func TestFeedRejectsInvalidKind(t *testing.T) {
	m := New()
	err := m.Feed(Event{Type: "Viseme", Text: "x"})
	if !errors.Is(err, ErrInvalidEventKind) {
		t.Errorf("expected ErrInvalidEventKind, got %v", err)
	}
	if len(m.Cues()) != 0 {
		t.Error("rejected event must not be buffered")
	}
}

func TestFeedRejectsMixedKinds(t *testing.T) {
	m := New()
	if err := m.Feed(sentenceEvent("Hello.", 0, 1000)); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	err := m.Feed(wordEvent("world", 1000, 1000))
	if !errors.Is(err, ErrMixedEventKind) {
		t.Errorf("expected ErrMixedEventKind, got %v", err)
	}

	// and the other way around
	m = New()
	if err := m.Feed(wordEvent("Hello", 0, 1000)); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	err = m.Feed(sentenceEvent("world.", 1000, 1000))
	if !errors.Is(err, ErrMixedEventKind) {
		t.Errorf("expected ErrMixedEventKind, got %v", err)
	}
}

func TestFeedAfterRejectionKeepsSessionUsable(t *testing.T) {
	m := New()
	_ = m.Feed(Event{Type: "bogus"})
	if err := m.Feed(wordEvent("Hello", 0, 1000)); err != nil {
		t.Fatalf("feed after rejected event failed: %v", err)
	}
	if m.Kind() != KindWordBoundary {
		t.Errorf("expected WordBoundary kind, got %q", m.Kind())
	}
}

func TestSentenceEventsMapOneToOne(t *testing.T) {
	m := New()
	texts := []string{"First sentence.", "Second sentence.", "Third."}
	for i, text := range texts {
		ev := sentenceEvent(text, int64(i)*10_000_000, 10_000_000)
		if err := m.Feed(ev); err != nil {
			t.Fatalf("feed %d failed: %v", i, err)
		}
	}

	cues := m.Cues()
	if len(cues) != len(texts) {
		t.Fatalf("expected %d cues, got %d", len(texts), len(cues))
	}
	for i, cue := range cues {
		if cue.Index != i+1 {
			t.Errorf("cue %d: index = %d, want %d", i, cue.Index, i+1)
		}
		if cue.Text != texts[i] {
			t.Errorf("cue %d: text = %q, want %q", i, cue.Text, texts[i])
		}
	}
}

func TestWordEventsWithoutReferenceMapOneToOne(t *testing.T) {
	m := New()
	for i, text := range []string{"Hello", "world"} {
		if err := m.Feed(wordEvent(text, int64(i)*1_000_000, 1_000_000)); err != nil {
			t.Fatalf("feed failed: %v", err)
		}
	}

	cues := m.Cues()
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[1].StartTime != 100*time.Millisecond {
		t.Errorf("cue 1 start = %v, want 100ms", cues[1].StartTime)
	}
}

func TestTickConversion(t *testing.T) {
	m := New()
	// 1,000,000 ticks at 100ns each is 0.1s
	if err := m.Feed(wordEvent("Hello", 1_000_000, 2_000_000)); err != nil {
		t.Fatalf("feed failed: %v", err)
	}

	cues := m.Cues()
	if cues[0].StartTime != 100*time.Millisecond {
		t.Errorf("start = %v, want 100ms", cues[0].StartTime)
	}
	if cues[0].EndTime != 300*time.Millisecond {
		t.Errorf("end = %v, want 300ms", cues[0].EndTime)
	}
}

func TestAlignProducesSingleCue(t *testing.T) {
	m := NewWithText("Hello world\nfoo")
	events := []Event{
		wordEvent("Hello", 0, 1_000_000),
		wordEvent("world", 1_000_000, 1_000_000),
		wordEvent("foo", 2_000_000, 1_000_000),
	}
	for _, ev := range events {
		if err := m.Feed(ev); err != nil {
			t.Fatalf("feed failed: %v", err)
		}
	}

	cues := m.Cues()
	if len(cues) != 1 {
		t.Fatalf("expected exactly 1 cue, got %d", len(cues))
	}

	cue := cues[0]
	if cue.Index != 1 {
		t.Errorf("index = %d, want 1", cue.Index)
	}
	if cue.StartTime != 0 {
		t.Errorf("start = %v, want 0", cue.StartTime)
	}
	if cue.EndTime != 300*time.Millisecond {
		t.Errorf("end = %v, want 300ms", cue.EndTime)
	}
	if cue.Text != "Hello world\nfoo" {
		t.Errorf("text = %q, want %q", cue.Text, "Hello world\nfoo")
	}
}

func TestAlignExactMatchReconstructsLines(t *testing.T) {
	lines := []string{"the quick brown fox", "jumps over", "the lazy dog"}
	m := NewWithText(strings.Join(lines, "\n"))

	offset := int64(0)
	for _, line := range lines {
		for _, word := range strings.Fields(line) {
			if err := m.Feed(wordEvent(word, offset, 500_000)); err != nil {
				t.Fatalf("feed failed: %v", err)
			}
			offset += 500_000
		}
	}

	cues := m.Cues()
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}

	got := strings.Split(cues[0].Text, "\n")
	if len(got) != len(lines) {
		t.Fatalf("expected %d lines, got %d: %q", len(lines), len(got), got)
	}
	for i, line := range lines {
		if got[i] != line {
			t.Errorf("line %d = %q, want %q", i, got[i], line)
		}
	}
}

func TestAlignCaseInsensitiveAndContainment(t *testing.T) {
	// reference uses different casing and the spoken words carry trailing
	// punctuation, so only the containment fallback can terminate line one
	m := NewWithText("hello world\nsecond line")
	words := []string{"Hello", "world,", "second", "line"}
	for i, w := range words {
		if err := m.Feed(wordEvent(w, int64(i)*1_000_000, 1_000_000)); err != nil {
			t.Fatalf("feed failed: %v", err)
		}
	}

	cues := m.Cues()
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	want := "Hello world,\nsecond line"
	if cues[0].Text != want {
		t.Errorf("text = %q, want %q", cues[0].Text, want)
	}
}

func TestAlignStarvedLineAbsorbsEverything(t *testing.T) {
	m := NewWithText("xyz unmatched text\nnever reached")
	for i, w := range []string{"Hello", "world"} {
		if err := m.Feed(wordEvent(w, int64(i)*1_000_000, 1_000_000)); err != nil {
			t.Fatalf("feed failed: %v", err)
		}
	}

	cues := m.Cues()
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	// first line absorbed both words; second line got nothing
	want := "Hello world\n"
	if cues[0].Text != want {
		t.Errorf("text = %q, want %q", cues[0].Text, want)
	}
}

func TestAlignLeftoverWordsBecomeOwnLines(t *testing.T) {
	m := NewWithText("Hello world")
	words := []string{"Hello", "world", "trailing", "words"}
	for i, w := range words {
		if err := m.Feed(wordEvent(w, int64(i)*1_000_000, 1_000_000)); err != nil {
			t.Fatalf("feed failed: %v", err)
		}
	}

	cues := m.Cues()
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	want := "Hello world\ntrailing\nwords"
	if cues[0].Text != want {
		t.Errorf("text = %q, want %q", cues[0].Text, want)
	}
}

func TestSentenceEventsIgnoreReferenceText(t *testing.T) {
	m := NewWithText("Hello world\nfoo")
	if err := m.Feed(sentenceEvent("Hello world foo.", 0, 3_000_000)); err != nil {
		t.Fatalf("feed failed: %v", err)
	}

	cues := m.Cues()
	if len(cues) != 1 || cues[0].Text != "Hello world foo." {
		t.Errorf("sentence sessions must not be re-aligned: %+v", cues)
	}
}

func TestEmptySession(t *testing.T) {
	if cues := New().Cues(); len(cues) != 0 {
		t.Errorf("empty session produced %d cues", len(cues))
	}
	if cues := NewWithText("some\nlines").Cues(); len(cues) != 0 {
		t.Errorf(
			"empty buffer with reference lines produced %d cues",
			len(cues),
		)
	}
}

func TestCuesDeterministicAcrossCalls(t *testing.T) {
	m := NewWithText("Hello world")
	_ = m.Feed(wordEvent("Hello", 0, 1_000_000))
	_ = m.Feed(wordEvent("world", 1_000_000, 1_000_000))

	first := m.Cues()
	second := m.Cues()
	if len(first) != len(second) || first[0] != second[0] {
		t.Errorf("repeated finalization differed: %+v vs %+v", first, second)
	}

	// mutating the returned slice must not affect the session
	first[0].Text = "tampered"
	if m.Cues()[0].Text == "tampered" {
		t.Error("Cues returned a reference to internal state")
	}
}

func TestSRTOutput(t *testing.T) {
	m := NewWithText("Hello world\nfoo")
	_ = m.Feed(wordEvent("Hello", 0, 1_000_000))
	_ = m.Feed(wordEvent("world", 1_000_000, 1_000_000))
	_ = m.Feed(wordEvent("foo", 2_000_000, 1_000_000))

	want := "1\n" +
		"00:00:00,000 --> 00:00:00,300\n" +
		"Hello world\nfoo\n\n"

	if got := m.SRT(); got != want {
		t.Errorf("SRT output:\ngot:\n%q\nwant:\n%q", got, want)
	}
	if m.String() != m.SRT() {
		t.Error("String must equal SRT")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"\n\n", nil},
		{"one line", []string{"one line"}},
		{"  padded  \n\nsecond\n", []string{"padded", "second"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			got := SplitLines(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
