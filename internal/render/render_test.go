package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func setProfile(t *testing.T, p termenv.Profile) {
	t.Helper()
	restore := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(p)
	t.Cleanup(func() { lipgloss.SetColorProfile(restore) })
}

func TestMarkdown_NoColorPassthrough(t *testing.T) {
	body := "# Heading\n\n- item\n\n```\ncode\n```\n"
	if got := Markdown(body, 80, false); got != body {
		t.Errorf("no-color output changed:\n%q", got)
	}
}

func TestMarkdown_RendersWithColor(t *testing.T) {
	out := Markdown("# Heading\n\nSome text.\n", 80, true)
	if out == "" {
		t.Fatal("empty render output")
	}
	if !strings.Contains(out, "Heading") {
		t.Errorf("render lost the heading text: %q", out)
	}
}

func TestHighlight_PreservesLineStructure(t *testing.T) {
	setProfile(t, termenv.TrueColor)

	body := "# Title\n\n- one\n2. two\n---\nplain `code` tail\n```\n--- inside fence\n```\nno trailing newline"
	out := Highlight(body)
	if got, want := strings.Count(out, "\n"), strings.Count(body, "\n"); got != want {
		t.Errorf("line count = %d, want %d", got, want)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected ANSI styling in output")
	}
}

func TestHighlight_TextPreserved(t *testing.T) {
	setProfile(t, termenv.Ascii)

	tests := []string{
		"say `hi` now\n",
		"open `tick without a pair\n",
		"# Heading\n",
		"1. ordered\n",
		".dotfile is not a bullet\n",
		"",
	}
	for _, body := range tests {
		if got := Highlight(body); got != body {
			t.Errorf("Highlight(%q) = %q, want unchanged", body, got)
		}
	}
}
