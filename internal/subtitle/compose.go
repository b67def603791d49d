package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ComposeSRT renders entries as SubRip text: a 1-based index, a timestamp
// range, the cue text, and a blank line after each cue.
func ComposeSRT(entries []Entry) string {
	var sb strings.Builder
	for i, entry := range entries {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(entry.StartTime),
			formatSRTTime(entry.EndTime)))
		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// ComposeVTT renders entries as WebVTT text with numeric cue identifiers.
func ComposeVTT(entries []Entry) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for i, entry := range entries {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatVTTTime(entry.StartTime),
			formatVTTTime(entry.EndTime)))
		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// Compose renders entries in the given format.
func Compose(entries []Entry, format Format) string {
	if format == FormatVTT {
		return ComposeVTT(entries)
	}
	return ComposeSRT(entries)
}

func formatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func formatVTTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

func hasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}
