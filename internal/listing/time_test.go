package listing

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Minute, "0h ago"},
		{3 * time.Hour, "3h ago"},
		{26 * time.Hour, "1d 2h ago"},
		{48 * time.Hour, "2d ago"},
		{32 * 24 * time.Hour, "1mo 2d ago"},
		{60 * 24 * time.Hour, "2mo ago"},
		{400 * 24 * time.Hour, "1y 1mo ago"},
		{2 * 365 * 24 * time.Hour, "2y ago"},
		{-time.Hour, "0h ago"},
	}
	for _, c := range cases {
		if got := Relative(now.Add(-c.age), now); got != c.want {
			t.Errorf("Relative(now-%v) = %q, want %q", c.age, got, c.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := FormatTimestamp("02Jan06 15:04 -07:00", false, now); got != "02Jan06 15:04" {
		t.Errorf("absolute = %q, want 02Jan06 15:04", got)
	}
	if got := FormatTimestamp("01/02/2006 03:04 PM -07:00", false, now); got != "02Jan06 15:04" {
		t.Errorf("legacy absolute = %q, want 02Jan06 15:04", got)
	}
	if got := FormatTimestamp("total junk value here", false, now); got != "total junk" {
		t.Errorf("unparsable = %q, want first two fields", got)
	}
}

func TestFormatTimestamp_Relative(t *testing.T) {
	now := time.Date(2006, 1, 3, 22, 4, 0, 0, time.FixedZone("", -7*3600))
	if got := FormatTimestamp("02Jan06 15:04 -07:00", true, now); got != "1d 7h ago" {
		t.Errorf("relative = %q, want 1d 7h ago", got)
	}
}

func TestTimeLabel(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.FixedZone("", 2*3600))
	if got := TimeLabel("Updated", true, now); got != "Updated" {
		t.Errorf("relative label = %q, want bare base", got)
	}
	if got := TimeLabel("Updated", false, now); got != "Updated (+02:00)" {
		t.Errorf("absolute label = %q, want offset suffix", got)
	}
}
