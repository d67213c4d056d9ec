package listing

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable lays out a small table with auto-sized columns: header
// row, a "=" rule, then one line per row. Cell widths are measured with
// lipgloss so ANSI styling never skews the layout.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	header := formatTableRow(headers, widths)
	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", lipgloss.Width(header)))
	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(formatTableRow(row, widths))
	}
	return b.String()
}

func formatTableRow(cells []string, widths []int) string {
	parts := make([]string, 0, len(widths))
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		parts = append(parts, padField(cell, widths[i]))
	}
	return strings.Join(parts, " | ")
}

// padField right-pads a cell to the target visible width.
func padField(cell string, target int) string {
	if pad := target - lipgloss.Width(cell); pad > 0 {
		return cell + strings.Repeat(" ", pad)
	}
	return cell
}

// Truncate clips text to max runes, spending the last one on an
// ellipsis when anything was cut.
func Truncate(text string, max int) string {
	if max == 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	if max == 1 {
		return "…"
	}
	runes := []rune(text)
	return string(runes[:max-1]) + "…"
}
