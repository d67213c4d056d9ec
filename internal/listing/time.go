package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/starford/quill/internal/noteid"
)

// Relative renders the age of t against now in coarse buckets, never
// finer than an hour.
func Relative(t, now time.Time) string {
	totalHours := int(now.Sub(t).Hours())
	if totalHours < 0 {
		totalHours = 0
	}
	totalDays := totalHours / 24
	switch {
	case totalDays < 30:
		if totalDays == 0 {
			return fmt.Sprintf("%dh ago", totalHours)
		}
		if h := totalHours - totalDays*24; h > 0 {
			return fmt.Sprintf("%dd %dh ago", totalDays, h)
		}
		return fmt.Sprintf("%dd ago", totalDays)
	case totalDays < 365:
		months, days := totalDays/30, totalDays%30
		if days > 0 {
			return fmt.Sprintf("%dmo %dd ago", months, days)
		}
		return fmt.Sprintf("%dmo ago", months)
	default:
		years, months := totalDays/365, (totalDays%365)/30
		if months > 0 {
			return fmt.Sprintf("%dy %dmo ago", years, months)
		}
		return fmt.Sprintf("%dy ago", years)
	}
}

// FormatTimestamp renders a header timestamp for a table cell. Values
// no layout can parse degrade to their first two fields instead of
// breaking the column.
func FormatTimestamp(ts string, relative bool, now time.Time) string {
	if t, ok := noteid.ParseTime(ts); ok {
		if relative {
			return Relative(t, now)
		}
		return t.Format(noteid.TimeFormatShort)
	}
	fields := strings.Fields(ts)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return strings.Join(fields, " ")
}

// TimeLabel names a timestamp column. Absolute cells drop the zone, so
// the label carries the local UTC offset instead.
func TimeLabel(base string, relative bool, now time.Time) string {
	if relative {
		return base
	}
	return base + " (" + now.Format("-07:00") + ")"
}
