package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short unchanged", "hello", 50, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"multibyte not split", "héllo", 2, "h"},
		{"cut lands on rune start", "héllo", 3, "hé"},
		{"all multibyte", strings.Repeat("日", 20), 50, strings.Repeat("日", 16)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateTitle(tt.input, tt.max)
			if got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("invalid UTF-8 in %q", got)
			}
		})
	}
}
