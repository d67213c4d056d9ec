// Package noteid mints sortable note identifiers and handles their timestamps.
package noteid

import (
	"strings"
	"time"
)

// Width is the fixed length of a minted identifier. Nine base62 digits
// cover microsecond epochs for roughly the next four centuries.
const Width = 9

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Timestamp layouts found in note headers. New notes are written with
// TimeFormat; LegacyTimeFormat is still accepted when reading.
const (
	TimeFormat       = "02Jan06 15:04 -07:00"
	TimeFormatShort  = "02Jan06 15:04"
	LegacyTimeFormat = "01/02/2006 03:04 PM -07:00"
)

// Mint encodes t as a fixed-width base62 identifier. The alphabet is
// ordered by ASCII value, so lexical order equals chronological order.
func Mint(t time.Time) string {
	us := t.UnixMicro()
	if us < 0 {
		us = 0
	}
	var buf [Width]byte
	n := uint64(us)
	for i := Width - 1; i >= 0; i-- {
		buf[i] = alphabet[n%62]
		n /= 62
	}
	return string(buf[:])
}

// Valid reports whether s is a plain minted identifier, without any
// collision suffix.
func Valid(s string) bool {
	if len(s) != Width {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(alphabet, rune(s[i])) {
			return false
		}
	}
	return true
}

// FormatTime renders t in the current header layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

// Now returns the current wall-clock time in the current header layout.
func Now() string {
	return FormatTime(time.Now())
}

// ParseTime reads a header timestamp in the current layout, falling back
// to the legacy layout. It reports false for anything else; callers treat
// such values as opaque text.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(TimeFormat, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(LegacyTimeFormat, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Compare orders two header timestamps. A parsable timestamp sorts after
// any unparsable one; two unparsable values are considered equal.
func Compare(a, b string) int {
	ta, aok := ParseTime(a)
	tb, bok := ParseTime(b)
	switch {
	case aok && bok:
		return ta.Compare(tb)
	case aok:
		return 1
	case bok:
		return -1
	default:
		return 0
	}
}
