package pipeline

import (
	"strings"
	"testing"
)

func TestTruncateModel(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  string
	}{
		{
			name:  "short name unchanged",
			model: "local-model",
			want:  "local-model",
		},
		{
			name:  "exactly at width unchanged",
			model: strings.Repeat("a", modelColumnWidth),
			want:  strings.Repeat("a", modelColumnWidth),
		},
		{
			name:  "long name truncated with ellipsis",
			model: strings.Repeat("a", modelColumnWidth+5),
			want:  strings.Repeat("a", modelColumnWidth-1) + "…",
		},
		{
			name:  "ansi escapes stripped",
			model: "\x1b[31mred-model\x1b[0m",
			want:  "red-model",
		},
		{
			name:  "control characters stripped",
			model: "mod\x00el\x7f",
			want:  "model",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateModel(tt.model); got != tt.want {
				t.Errorf("truncateModel(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}
