package audio

import "testing"

func TestMediaFileDetection(t *testing.T) {
	tests := []struct {
		path  string
		video bool
		audio bool
	}{
		{"movie.mp4", true, false},
		{"movie.MKV", true, false},
		{"song.mp3", false, true},
		{"song.FLAC", false, true},
		{"subs.srt", false, false},
		{"noext", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsVideoFile(tt.path); got != tt.video {
				t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.video)
			}
			if got := IsAudioFile(tt.path); got != tt.audio {
				t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.audio)
			}
			if got := IsMediaFile(tt.path); got != (tt.video || tt.audio) {
				t.Errorf("IsMediaFile(%q) = %v", tt.path, got)
			}
		})
	}
}

func TestDefaultCompressionOptions(t *testing.T) {
	opts := DefaultCompressionOptions()
	if opts.Format != "mp3" || opts.SampleRate != 16000 || opts.Channels != 1 {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}
