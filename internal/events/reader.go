package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kaverma/subcue/internal/submaker"
)

// maxLineSize bounds a single JSONL record; boundary events are tiny but
// sentence events can carry long text.
const maxLineSize = 1024 * 1024

// ReadAll decodes newline-delimited JSON boundary events from r, in order.
// Blank lines are skipped.
func ReadAll(r io.Reader) ([]submaker.Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var evs []submaker.Event
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		var ev submaker.Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("parse event at line %d: %w", lineNum, err)
		}
		evs = append(evs, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	return evs, nil
}

// ReadFile decodes all boundary events from a JSONL file.
func ReadFile(path string) ([]submaker.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ReadAll(file)
}

// WriteAll encodes events as newline-delimited JSON, one event per line.
func WriteAll(w io.Writer, evs []submaker.Event) error {
	enc := json.NewEncoder(w)
	for i, ev := range evs {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encode event %d: %w", i, err)
		}
	}
	return nil
}

// WriteFile writes events to a JSONL file.
func WriteFile(path string, evs []submaker.Event) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create events file: %w", err)
	}

	if err := WriteAll(file, evs); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
