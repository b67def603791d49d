package submaker

import (
	"strings"

	"github.com/kaverma/subcue/internal/subtitle"
)

// alignToLines greedily partitions buffered word entries into groups whose
// concatenated text matches each reference line, and merges everything into
// a single cue whose text carries one group per line.
//
// Matching is lexical and never backtracks: words consumed for one line are
// never reassigned to another. A line stops consuming on an exact
// case-insensitive match, or once the accumulated text is at least as long
// as the line and contains it case-insensitively. A line that never matches
// keeps absorbing words until the buffer runs out; later lines then come up
// empty. Leftover words after the last line become one-word lines.
func alignToLines(words []subtitle.Entry, lines []string) subtitle.Entry {
	var content []string
	cursor := 0

	for _, line := range lines {
		lineLower := strings.ToLower(line)
		var lineWords []string
		accumulated := ""

		for cursor < len(words) {
			word := words[cursor].Text
			lineWords = append(lineWords, word)
			if accumulated == "" {
				accumulated = word
			} else {
				accumulated += " " + word
			}
			cursor++

			accLower := strings.ToLower(accumulated)
			if accLower == lineLower {
				break
			}
			if len(accumulated) >= len(line) &&
				strings.Contains(accLower, lineLower) {
				break
			}
		}

		content = append(content, strings.Join(lineWords, " "))
	}

	for ; cursor < len(words); cursor++ {
		content = append(content, words[cursor].Text)
	}

	return subtitle.Entry{
		Index:     1,
		StartTime: words[0].StartTime,
		EndTime:   words[len(words)-1].EndTime,
		Text:      strings.Join(content, "\n"),
	}
}
