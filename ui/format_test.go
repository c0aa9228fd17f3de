package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/qyinm/acadjobs/types"
)

func jobWith(description, summary string) types.Job {
	return types.NewJob("1", "Lecturer", "King's College London", "London", types.Teaching,
		description, summary, "https://example.ac.uk/1", "2024-03-15T10:30:00", "")
}

func TestCardSnippet(t *testing.T) {
	t.Run("long description is cut at 300 characters", func(t *testing.T) {
		desc := strings.Repeat("a", 350)
		got := cardSnippet(jobWith(desc, ""))
		want := strings.Repeat("a", 300) + "..."
		if got != want {
			t.Errorf("expected 300 chars plus ellipsis, got %d chars", utf8.RuneCountInString(got))
		}
	})

	t.Run("description of exactly 300 characters is untouched", func(t *testing.T) {
		desc := strings.Repeat("b", 300)
		if got := cardSnippet(jobWith(desc, "")); got != desc {
			t.Errorf("expected description verbatim, got %q", got)
		}
	})

	t.Run("summary wins verbatim", func(t *testing.T) {
		summary := "A short summary.  With odd   spacing."
		if got := cardSnippet(jobWith(strings.Repeat("c", 400), summary)); got != summary {
			t.Errorf("expected summary %q, got %q", summary, got)
		}
	})

	t.Run("blank summary falls back to description", func(t *testing.T) {
		if got := cardSnippet(jobWith("Teach first-year modules.", "   ")); got != "Teach first-year modules." {
			t.Errorf("unexpected snippet %q", got)
		}
	})

	t.Run("cut counts characters not bytes", func(t *testing.T) {
		desc := strings.Repeat("é", 301)
		got := cardSnippet(jobWith(desc, ""))
		if utf8.RuneCountInString(got) != 303 {
			t.Errorf("expected 303 runes, got %d", utf8.RuneCountInString(got))
		}
	})
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no markup", "Plain 5 < 6 text", "Plain 5 < 6 text"},
		{"paragraphs", "<p>First   paragraph.</p><p>Second.</p>", "First paragraph.\nSecond."},
		{"list items", "<ul><li>Python</li><li>Go</li></ul>", "• Python\n• Go"},
		{"line breaks", "Line one<br>Line two", "Line one\nLine two"},
		{"scripts removed", "<p>Hello</p><script>alert(1)</script>", "Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plainText(tt.in); got != tt.want {
				t.Errorf("plainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-15T10:30:00", "15 March 2024"},
		{"2024-03-15T10:30:00.123456", "15 March 2024"},
		{"2024-03-05T10:30:00Z", "5 March 2024"},
		{"2024-12-01T08:00:00+00:00", "1 December 2024"},
		{"2024-04-30", "30 April 2024"},
		{"2024-01-02 09:15:00", "2 January 2024"},
		{"next Friday", "next Friday"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatDate(tt.in); got != tt.want {
			t.Errorf("formatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrapBody(t *testing.T) {
	lines := wrapBody("one two three four five six seven eight", 10)
	if len(lines) < 4 {
		t.Fatalf("expected the text over several lines, got %q", lines)
	}
	if got := strings.Join(strings.Fields(strings.Join(lines, " ")), " "); got != "one two three four five six seven eight" {
		t.Errorf("expected every word kept, got %q", got)
	}
	if got := wrapBody("", 10); got != nil {
		t.Errorf("expected nil for empty input, got %q", got)
	}
}

func TestMarkdownLiteral(t *testing.T) {
	got := markdownLiteral("a_b *c*\n  # d\n\nnext")
	want := "a\\_b \\*c\\*  \n\\# d\n\nnext"
	if got != want {
		t.Errorf("markdownLiteral = %q, want %q", got, want)
	}
}
