package subtitle

import (
	"time"
)

// Entry is a single subtitle cue: a 1-based index, a display time range,
// and text content. Content may span multiple lines separated by \n.
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// Subtitle is a complete subtitle track.
type Subtitle struct {
	Entries  []Entry
	Language string
	Format   string
}

// Format identifies a supported subtitle file format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// Writer writes a subtitle track to a file.
type Writer interface {
	Write(subtitle *Subtitle, path string) error
}

// File is a parsed subtitle file whose entries can be edited in place and
// written back in the same format.
type File interface {
	Format() Format
	Subtitle() *Subtitle
	SetText(index int, text string) error
	Write(path string) error
}

// GetFormatFromExtension maps a file path to a subtitle format,
// defaulting to SRT.
func GetFormatFromExtension(path string) Format {
	if hasExtension(path, ".vtt") {
		return FormatVTT
	}
	return FormatSRT
}

// GetExtensionForFormat returns the file extension for a format.
func GetExtensionForFormat(format Format) string {
	if format == FormatVTT {
		return ".vtt"
	}
	return ".srt"
}
