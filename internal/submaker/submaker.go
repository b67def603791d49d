package submaker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kaverma/subcue/internal/subtitle"
)

// Kind identifies which boundary type a speech producer emits.
type Kind string

const (
	KindWordBoundary     Kind = "WordBoundary"
	KindSentenceBoundary Kind = "SentenceBoundary"
)

// Tick is the base time unit of incoming offsets and durations.
const Tick = 100 * time.Nanosecond

// Event is a timed boundary message from a speech producer.
// Offset and Duration are in 100-nanosecond ticks.
type Event struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Offset   int64  `json:"offset"`
	Duration int64  `json:"duration"`
}

var (
	// ErrInvalidEventKind is returned when an event's type is neither
	// WordBoundary nor SentenceBoundary.
	ErrInvalidEventKind = errors.New("invalid event kind")

	// ErrMixedEventKind is returned when an event's type differs from the
	// kind established by the session's first event.
	ErrMixedEventKind = errors.New("mixed event kinds in session")
)

// Maker accumulates boundary events and produces subtitle cues.
//
// When reference text is supplied, word events are regrouped so the emitted
// cue preserves the original line breaks. Maker is not safe for concurrent
// use; callers must serialize Feed and Cues on the same session.
type Maker struct {
	kind  Kind
	words []subtitle.Entry
	lines []string

	cues []subtitle.Entry
}

// New creates a session with no reference text: every buffered event
// becomes its own cue.
func New() *Maker {
	return &Maker{}
}

// NewWithText creates a session whose word events will be regrouped to
// match the line breaks of originalText. If originalText contains no
// non-empty lines the session behaves like New.
func NewWithText(originalText string) *Maker {
	return &Maker{lines: SplitLines(originalText)}
}

// SplitLines extracts reference lines from original text: split on newlines,
// trim whitespace, drop empty lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Feed appends a boundary event to the session buffer. The first event
// establishes the session kind; later events must match it.
func (m *Maker) Feed(ev Event) error {
	kind := Kind(ev.Type)
	if kind != KindWordBoundary && kind != KindSentenceBoundary {
		return fmt.Errorf("%w: %q", ErrInvalidEventKind, ev.Type)
	}

	if m.kind == "" {
		m.kind = kind
	} else if m.kind != kind {
		return fmt.Errorf(
			"%w: expected %q, got %q",
			ErrMixedEventKind,
			m.kind,
			ev.Type,
		)
	}

	m.words = append(m.words, subtitle.Entry{
		Index:     len(m.words) + 1,
		StartTime: time.Duration(ev.Offset) * Tick,
		EndTime:   time.Duration(ev.Offset+ev.Duration) * Tick,
		Text:      ev.Text,
	})
	m.cues = nil

	return nil
}

// Kind reports the session's established event kind, empty until the first
// successful Feed.
func (m *Maker) Kind() Kind {
	return m.kind
}

// Cues finalizes the session into subtitle entries. The result is computed
// from the buffer alone, so repeated calls are deterministic; it is cached
// until the next Feed.
func (m *Maker) Cues() []subtitle.Entry {
	if m.cues == nil {
		m.cues = m.finalize()
	}

	out := make([]subtitle.Entry, len(m.cues))
	copy(out, m.cues)
	return out
}

func (m *Maker) finalize() []subtitle.Entry {
	if len(m.lines) > 0 && m.kind == KindWordBoundary && len(m.words) > 0 {
		return []subtitle.Entry{alignToLines(m.words, m.lines)}
	}

	cues := make([]subtitle.Entry, len(m.words))
	copy(cues, m.words)
	return cues
}

// SRT renders the finalized cues in SubRip format.
func (m *Maker) SRT() string {
	return subtitle.ComposeSRT(m.Cues())
}

func (m *Maker) String() string {
	return m.SRT()
}
