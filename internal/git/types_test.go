package git

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCommitSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "short subject", message: "Fix bug\n\nBody here", want: "Fix bug"},
		{name: "exactly 80 runes", message: strings.Repeat("a", 80), want: strings.Repeat("a", 80)},
		{name: "long ascii", message: strings.Repeat("a", 100), want: strings.Repeat("a", 77) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Commit{Message: tt.message}
			if got := c.Summary(); got != tt.want {
				t.Fatalf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommitSummary_MultiByteSubjectStaysValidUTF8(t *testing.T) {
	t.Parallel()

	c := &Commit{Message: strings.Repeat("é", 100)}
	got := c.Summary()
	if !utf8.ValidString(got) {
		t.Fatalf("Summary() produced invalid UTF-8: %q", got)
	}
	if want := strings.Repeat("é", 77) + "..."; got != want {
		t.Fatalf("Summary() = %q, want %q", got, want)
	}
	if n := utf8.RuneCountInString(got); n != 80 {
		t.Fatalf("Summary() length = %d runes, want 80", n)
	}
}
