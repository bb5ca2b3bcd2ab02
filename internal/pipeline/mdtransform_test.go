package pipeline

import (
	"context"
	"testing"
)

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"unchanged", "# Talks\n\nBody\n", "# Talks\n\nBody\n"},
		{"windows line endings", "a\r\nb\r\n", "a\nb\n"},
		{"old mac line endings", "a\rb", "a\nb"},
		{"compresses blank lines", "a\n\n\n\n\nb", "a\n\nb"},
		{"crlf blank lines compressed", "a\r\n\r\n\r\n\r\nb", "a\n\nb"},
		{"byte order mark", "\ufeff# Preface\n", "# Preface\n"},
		{"inner byte order mark kept", "a\ufeffb", "a\ufeffb"},
		{"empty", "", ""},
	}

	p := &CommonMarkPreprocessor{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.expected {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPreprocessMarkdown_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &CommonMarkPreprocessor{}
	in := "a\r\n\r\n\r\nb"
	if got := p.PreprocessMarkdown(ctx, in); got != in {
		t.Errorf("expected content unchanged on cancelled context, got %q", got)
	}
}
