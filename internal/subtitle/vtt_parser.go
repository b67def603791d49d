package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

type VTTFile struct {
	entries []Entry
}

var (
	vttTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})\.(\d{3})`,
	)
	vttShortTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2})\.(\d{3})`,
	)
)

func parseVTTFile(path string) (*VTTFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VTT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var entries []Entry
	var current *Entry
	var textLines []string
	entryIndex := 0

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			entries = append(entries, *current)
		}
		current = nil
		textLines = nil
	}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	headerParsed := false

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)

		if !headerParsed && strings.HasPrefix(trimmed, "WEBVTT") {
			headerParsed = true
			continue
		}

		// NOTE and STYLE blocks run until the next blank line
		if strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE") {
			for scanner.Scan() {
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		matches := vttTimestampRegex.FindStringSubmatch(line)
		if len(matches) != 9 {
			// cue identifiers are optional, so the timestamp line may
			// appear without a preceding index; try the MM:SS form too
			short := vttShortTimestampRegex.FindStringSubmatch(line)
			if len(short) == 7 {
				matches = []string{short[0],
					"00", short[1], short[2], short[3],
					"00", short[4], short[5], short[6],
				}
			}
		}

		if len(matches) == 9 {
			flush()

			start, end, err := parseTimestampRange(matches)
			if err != nil {
				return nil, fmt.Errorf(
					"invalid timestamp at line %d: %w",
					lineNum,
					err,
				)
			}

			entryIndex++
			current = &Entry{
				Index:     entryIndex,
				StartTime: start,
				EndTime:   end,
			}
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT file: %w", err)
	}

	return &VTTFile{entries: entries}, nil
}

func (f *VTTFile) Format() Format {
	return FormatVTT
}

func (f *VTTFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries: f.entries,
		Format:  string(FormatVTT),
	}
}

func (f *VTTFile) SetText(index int, text string) error {
	if index < 0 || index >= len(f.entries) {
		return fmt.Errorf(
			"index %d out of range (0-%d)",
			index,
			len(f.entries)-1,
		)
	}
	f.entries[index].Text = text
	return nil
}

func (f *VTTFile) Write(path string) error {
	writer, err := NewWriter(FormatVTT)
	if err != nil {
		return err
	}
	return writer.Write(f.Subtitle(), path)
}
