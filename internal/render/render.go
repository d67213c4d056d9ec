// Package render turns note bodies into terminal output. With color off
// the body passes through unchanged so whitespace and line counts stay
// stable; with color on it renders Markdown through glamour, falling
// back to lightweight per-line styling when the renderer fails.
package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const minWrapWidth = 40

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	bulletStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	ruleStyle    = lipgloss.NewStyle().Faint(true)
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// Markdown renders a note body at the given terminal width.
func Markdown(body string, width int, color bool) string {
	if !color {
		return body
	}
	if width < minWrapWidth {
		width = minWrapWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return Highlight(body)
	}
	out, err := r.Render(body)
	if err != nil {
		return Highlight(body)
	}
	return out
}

// Highlight applies per-line styling to headings, bullets, horizontal
// rules and code without reflowing anything. Every input line maps to
// exactly one output line.
func Highlight(body string) string {
	var out strings.Builder
	inCode := false
	for _, segment := range strings.SplitAfter(body, "\n") {
		line := strings.TrimSuffix(segment, "\n")
		hadNewline := len(line) != len(segment)
		trimmed := strings.TrimLeft(line, " \t")

		switch {
		case strings.HasPrefix(trimmed, "```"):
			out.WriteString(codeStyle.Render(line))
			inCode = !inCode
		case inCode:
			out.WriteString(codeStyle.Render(line))
		case strings.HasPrefix(trimmed, "#"):
			out.WriteString(headingStyle.Render(line))
		case isBullet(trimmed):
			out.WriteString(bulletStyle.Render(line))
		case trimmed == "---" || trimmed == "***" || trimmed == "___":
			out.WriteString(ruleStyle.Render(line))
		default:
			out.WriteString(highlightInlineCode(line))
		}
		if hadNewline {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func isBullet(trimmed string) bool {
	if strings.HasPrefix(trimmed, "- ") ||
		strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "+ ") {
		return true
	}
	if num, _, ok := strings.Cut(trimmed, "."); ok && num != "" {
		for _, r := range num {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}

// highlightInlineCode colors text between backtick pairs, leaving the
// backticks themselves and any unpaired tail untouched.
func highlightInlineCode(line string) string {
	if !strings.Contains(line, "`") {
		return line
	}
	var out strings.Builder
	rest := line
	for {
		start := strings.Index(rest, "`")
		if start < 0 {
			out.WriteString(rest)
			return out.String()
		}
		out.WriteString(rest[:start])
		afterTick := rest[start+1:]
		end := strings.Index(afterTick, "`")
		if end < 0 {
			out.WriteByte('`')
			out.WriteString(afterTick)
			return out.String()
		}
		out.WriteByte('`')
		out.WriteString(codeStyle.Render(afterTick[:end]))
		out.WriteByte('`')
		rest = afterTick[end+1:]
	}
}
