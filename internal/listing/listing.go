// Package listing renders note tables for the terminal: column layout
// with width-aware shrinking, relative or absolute timestamps, search
// highlighting, and the small fixed tables used by the tag and stats
// overviews.
package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/quill/internal/note"
	"github.com/starford/quill/internal/noteid"
	"github.com/starford/quill/internal/storage"
	"github.com/starford/quill/internal/tag"
)

const defaultColumns = 120

// Styles is the themed style set for tabular output. The zero value
// renders plain text.
type Styles struct {
	ID        lipgloss.Style
	Header    lipgloss.Style
	Timestamp lipgloss.Style
	Highlight lipgloss.Style
	Color     bool
}

// NewStyles returns the themed styles, or passthrough styles when color
// is off.
func NewStyles(color bool) Styles {
	if !color {
		return Styles{}
	}
	return Styles{
		ID:        lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("#94E2D5")).Bold(true),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Color:     true,
	}
}

func (s Styles) tagStyle(t tag.Tag) lipgloss.Style {
	if !s.Color {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color(t))).Bold(true)
}

// TagText renders one tag in its assigned color.
func (s Styles) TagText(t tag.Tag) string {
	return s.tagStyle(t).Render(string(t))
}

// HighlightMatches paints every case-insensitive occurrence of query.
func (s Styles) HighlightMatches(text, query string) string {
	if query == "" || !s.Color {
		return text
	}
	lower := strings.ToLower(text)
	q := strings.ToLower(query)
	var b strings.Builder
	for {
		pos := strings.Index(lower, q)
		if pos < 0 {
			b.WriteString(text)
			return b.String()
		}
		end := pos + len(q)
		if end > len(text) {
			end = len(text)
		}
		b.WriteString(text[:pos])
		b.WriteString(s.Highlight.Render(text[pos:end]))
		text = text[end:]
		lower = lower[end:]
	}
}

// Options configures one listing render.
type Options struct {
	Area     storage.Area
	Relative bool
	Query    string
	Now      time.Time
	Width    int // terminal columns; <= 0 uses the default
	Styles   Styles
}

// Columns is the computed layout for one listing table.
type Columns struct {
	ID, Created, Updated, Moved, Preview, Tags int
	IncludeCreated, IncludeMoved, IncludeTags  bool
}

func (c Columns) total() int {
	separators := 2
	total := c.ID + c.Updated + c.Preview
	if c.IncludeCreated {
		separators++
		total += c.Created
	}
	if c.IncludeMoved {
		separators++
		total += c.Moved
	}
	if c.IncludeTags {
		separators++
		total += c.Tags
	}
	return total + separators*3
}

// Sort fields accepted by Sort.
const (
	SortCreated = "created"
	SortUpdated = "updated"
	SortSize    = "size"
)

// Sort orders notes for listing. Unknown fields fall back to updated.
func Sort(notes []*note.Note, field string, ascending bool) {
	compare := func(a, b *note.Note) int {
		switch field {
		case SortCreated:
			return noteid.Compare(a.Created, b.Created)
		case SortSize:
			return cmp.Compare(a.Size, b.Size)
		default:
			return noteid.Compare(a.Updated, b.Updated)
		}
	}
	slices.SortStableFunc(notes, func(a, b *note.Note) int {
		if ascending {
			return compare(a, b)
		}
		return compare(b, a)
	})
}

// Render lays out notes as table lines: header, rule, then one line per
// note. The caller handles the empty case with its own message.
func Render(notes []*note.Note, opt Options) []string {
	if opt.Width <= 0 {
		opt.Width = defaultColumns
	}
	if opt.Now.IsZero() {
		opt.Now = time.Now()
	}
	previews := make([]string, len(notes))
	for i, n := range notes {
		previews[i] = SearchPreview(n, opt.Query)
	}
	cols := computeColumns(notes, previews, opt)

	lines := make([]string, 0, len(notes)+2)
	header := renderHeader(cols, opt)
	lines = append(lines, header, strings.Repeat("=", lipgloss.Width(header)))
	for i, n := range notes {
		lines = append(lines, renderRow(n, previews[i], cols, opt))
	}
	return lines
}

func renderHeader(cols Columns, opt Options) string {
	cells := make([]string, 0, 6)
	add := func(text string, width int) {
		cell := Truncate(text, width)
		cells = append(cells, padField(opt.Styles.Header.Render(cell), width))
	}
	add("ID", cols.ID)
	if cols.IncludeCreated {
		add(TimeLabel("Created", opt.Relative, opt.Now), cols.Created)
	}
	add(TimeLabel("Updated", opt.Relative, opt.Now), cols.Updated)
	if cols.IncludeMoved {
		add(TimeLabel(movedBase(opt.Area), opt.Relative, opt.Now), cols.Moved)
	}
	add("Preview", cols.Preview)
	if cols.IncludeTags {
		add("Tags", cols.Tags)
	}
	return strings.Join(cells, " | ")
}

func renderRow(n *note.Note, preview string, cols Columns, opt Options) string {
	st := opt.Styles
	cells := make([]string, 0, 6)
	add := func(text string, style lipgloss.Style, width int) {
		cell := Truncate(text, width)
		cells = append(cells, padField(style.Render(cell), width))
	}
	add(n.ID, st.ID, cols.ID)
	if cols.IncludeCreated {
		add(FormatTimestamp(n.Created, opt.Relative, opt.Now), st.Timestamp, cols.Created)
	}
	add(displayUpdated(opt.Area, n.Updated, opt.Relative, opt.Now), st.Timestamp, cols.Updated)
	if cols.IncludeMoved {
		add(FormatTimestamp(movedTimestamp(n, opt.Area), opt.Relative, opt.Now), st.Timestamp, cols.Moved)
	}
	previewCell := Truncate(preview, cols.Preview)
	cells = append(cells, padField(st.HighlightMatches(previewCell, opt.Query), cols.Preview))
	if cols.IncludeTags {
		cells = append(cells, padField(clampTags(n.Tags, cols.Tags, st), cols.Tags))
	}
	return strings.Join(cells, " | ")
}

// clampTags fits as many tags as the column allows, truncating the
// first one that does not fit whole.
func clampTags(tags []tag.Tag, max int, st Styles) string {
	if len(tags) == 0 || max == 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	for i, tg := range tags {
		sep := 0
		if i > 0 {
			sep = 1
		}
		width := lipgloss.Width(string(tg))
		if used+sep+width <= max {
			if sep == 1 {
				b.WriteByte(' ')
			}
			b.WriteString(st.tagStyle(tg).Render(string(tg)))
			used += sep + width
			continue
		}
		if remaining := max - used - sep; remaining > 0 {
			if sep == 1 {
				b.WriteByte(' ')
			}
			b.WriteString(st.tagStyle(tg).Render(Truncate(string(tg), remaining)))
		}
		break
	}
	return b.String()
}

func computeColumns(notes []*note.Note, previews []string, opt Options) Columns {
	includeAux := opt.Area != storage.AreaActive
	c := Columns{IncludeCreated: includeAux, IncludeMoved: includeAux}

	// All timestamp columns share one width.
	tsWidth := lipgloss.Width(TimeLabel("Updated", opt.Relative, opt.Now))
	for _, n := range notes {
		if w := lipgloss.Width(displayUpdated(opt.Area, n.Updated, opt.Relative, opt.Now)); w > tsWidth {
			tsWidth = w
		}
	}
	if includeAux {
		for _, label := range []string{"Created", movedBase(opt.Area)} {
			if w := lipgloss.Width(TimeLabel(label, opt.Relative, opt.Now)); w > tsWidth {
				tsWidth = w
			}
		}
		for _, n := range notes {
			if w := lipgloss.Width(FormatTimestamp(n.Created, opt.Relative, opt.Now)); w > tsWidth {
				tsWidth = w
			}
			if ts := movedTimestamp(n, opt.Area); ts != "" {
				if w := lipgloss.Width(FormatTimestamp(ts, opt.Relative, opt.Now)); w > tsWidth {
					tsWidth = w
				}
			}
		}
	}
	c.Updated = tsWidth
	if includeAux {
		c.Created, c.Moved = tsWidth, tsWidth
	}

	c.ID = lipgloss.Width("ID")
	for _, n := range notes {
		if w := lipgloss.Width(n.ID); w > c.ID {
			c.ID = w
		}
	}

	c.Preview = lipgloss.Width("Preview")
	for _, p := range previews {
		if w := lipgloss.Width(p); w > c.Preview {
			c.Preview = w
		}
	}

	if opt.Area == storage.AreaActive {
		for _, n := range notes {
			if len(n.Tags) > 0 {
				c.IncludeTags = true
				break
			}
		}
	}
	if c.IncludeTags {
		c.Tags = lipgloss.Width("Tags")
		for _, n := range notes {
			if w := lipgloss.Width(tag.JoinSpace(n.Tags)); w > c.Tags {
				c.Tags = w
			}
		}
	}

	return c.shrink(opt)
}

// shrink reclaims width when the table overflows the terminal, taking
// from columns in fixed priority order down to per-column minimums.
func (c Columns) shrink(opt Options) Columns {
	const minPreview, minTags = 4, 4
	minUpdated := lipgloss.Width(TimeLabel("Updated", opt.Relative, opt.Now))
	minCreated := lipgloss.Width(TimeLabel("Created", opt.Relative, opt.Now))
	minMoved := lipgloss.Width(TimeLabel(movedBase(opt.Area), opt.Relative, opt.Now))
	minID := lipgloss.Width("ID")

	excess := c.total() - opt.Width
	reduce := func(value *int, min int) {
		if excess <= 0 {
			return
		}
		reducible := *value - min
		if reducible < 0 {
			reducible = 0
		}
		delta := reducible
		if delta > excess {
			delta = excess
		}
		*value -= delta
		excess -= delta
	}
	reduce(&c.Preview, minPreview)
	if c.IncludeMoved {
		reduce(&c.Moved, minMoved)
	}
	if c.IncludeCreated {
		reduce(&c.Created, minCreated)
	}
	if c.IncludeTags {
		reduce(&c.Tags, minTags)
	}
	reduce(&c.Updated, minUpdated)
	reduce(&c.ID, minID)
	return c
}

// displayUpdated renders the Updated cell. Unparsable values degrade to
// raw fields in the active listing but blank out in trash and archive,
// where the moved column is the one that matters.
func displayUpdated(area storage.Area, ts string, relative bool, now time.Time) string {
	t, ok := noteid.ParseTime(ts)
	if !ok {
		if area == storage.AreaActive {
			return FormatTimestamp(ts, relative, now)
		}
		return ""
	}
	if relative {
		return Relative(t, now)
	}
	return t.Format(noteid.TimeFormatShort)
}

// movedTimestamp is the area transition time shown for trash and
// archive rows, falling back to Updated for notes moved before markers
// were written.
func movedTimestamp(n *note.Note, area storage.Area) string {
	switch area {
	case storage.AreaTrash:
		if n.Deleted != "" {
			return n.Deleted
		}
	case storage.AreaArchive:
		if n.Archived != "" {
			return n.Archived
		}
	default:
		return ""
	}
	return n.Updated
}

func movedBase(area storage.Area) string {
	switch area {
	case storage.AreaTrash:
		return "Deleted"
	case storage.AreaArchive:
		return "Archived"
	}
	return "Moved"
}
