package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kaverma/subcue/internal/subtitle"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    subtitle.Format
		wantErr bool
	}{
		{"srt", subtitle.FormatSRT, false},
		{"SRT", subtitle.FormatSRT, false},
		{"vtt", subtitle.FormatVTT, false},
		{"ass", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseFormat(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFormat(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProviderEnvVar(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"gemini", "GEMINI_API_KEY"},
		{"openai", "OPENAI_API_KEY"},
		{"anthropic", "ANTHROPIC_API_KEY"},
		{"other", "API_KEY"},
	}

	for _, tt := range tests {
		if got := providerEnvVar(tt.provider); got != tt.want {
			t.Errorf("providerEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestNewMakerWithReferenceText(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(textPath, []byte("Hello world\nfoo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	maker, err := newMaker(textPath)
	if err != nil {
		t.Fatalf("newMaker error: %v", err)
	}
	if maker == nil {
		t.Fatal("newMaker returned nil")
	}

	if _, err := newMaker(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing reference text file")
	}
}
