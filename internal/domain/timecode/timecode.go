// Package timecode parses and formats the time tokens found in segment
// outlines. Every value is a whole number of seconds; sub-second input
// precision is discarded at the parsing boundary so the rest of the
// pipeline never deals with fractions.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidSyntax reports a token that matches none of the supported
// time forms.
var ErrInvalidSyntax = errors.New("invalid time syntax")

// Seconds is a timestamp or a span measured in whole seconds.
type Seconds int64

// String renders s as a zero-padded clock: Seconds(990) -> "00:16:30".
func (s Seconds) String() string { return Format(s) }

var (
	reNumber  = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	reClock   = regexp.MustCompile(`^(?:(\d+):)?(\d+):(\d+)(?:\.\d+)?$`)
	reCompact = regexp.MustCompile(`(?i)^(\d+)\s*m\s*(\d+)\s*s$`)
	reMinutes = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(?:minutes?|mins?|m)$`)
	reSeconds = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(?:seconds?|secs?|s)$`)
)

// ParseClock parses a point-in-time token: "H:MM:SS", "MM:SS" or a bare
// number of seconds. A fractional seconds field is truncated toward
// zero, so "00:16:30.5" and "00:16:30" name the same instant.
func ParseClock(tok string) (Seconds, error) {
	t := strings.TrimSpace(tok)
	if t == "" {
		return 0, fmt.Errorf("%w: empty time", ErrInvalidSyntax)
	}
	if reNumber.MatchString(t) {
		whole, _, _ := strings.Cut(t, ".")
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSyntax, tok)
		}
		return Seconds(n), nil
	}

	m := reClock.FindStringSubmatch(t)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSyntax, tok)
	}
	var hours int64
	if m[1] != "" {
		var err error
		hours, err = strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSyntax, tok)
		}
	}
	minutes, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSyntax, tok)
	}
	seconds, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSyntax, tok)
	}
	// With an hours field the minutes are positional and must fit the
	// clock; in plain MM:SS the minutes may run past 59 ("90:00").
	if m[1] != "" && minutes > 59 {
		return 0, fmt.Errorf("%w: minutes out of range in %q", ErrInvalidSyntax, tok)
	}
	if seconds > 59 {
		return 0, fmt.Errorf("%w: seconds out of range in %q", ErrInvalidSyntax, tok)
	}
	return Seconds(hours*3600 + minutes*60 + seconds), nil
}

// ParseSpan parses a duration token. On top of the clock forms accepted
// by ParseClock it understands the compact "2m30s" notation and the
// phrases "90 seconds" / "2 minutes". Fractional minute phrases round
// to the nearest second ("1.5 minutes" -> 90); everything else
// truncates like ParseClock.
func ParseSpan(tok string) (Seconds, error) {
	t := strings.TrimSpace(tok)
	if t == "" {
		return 0, fmt.Errorf("%w: empty duration", ErrInvalidSyntax)
	}

	if m := reCompact.FindStringSubmatch(t); m != nil {
		minutes, err1 := strconv.ParseInt(m[1], 10, 64)
		seconds, err2 := strconv.ParseInt(m[2], 10, 64)
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSyntax, tok)
		}
		return Seconds(minutes*60 + seconds), nil
	}
	if m := reMinutes.FindStringSubmatch(t); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSyntax, tok)
		}
		return Seconds(math.Round(n * 60)), nil
	}
	if m := reSeconds.FindStringSubmatch(t); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSyntax, tok)
		}
		return Seconds(n), nil
	}
	return ParseClock(t)
}

// Format renders a timestamp as H:MM:SS with zero padding, matching the
// form outlines use for absolute positions.
func Format(s Seconds) string {
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}

// FormatSpan renders a duration as MM:SS. Durations of an hour or more
// simply keep counting minutes ("65:00").
func FormatSpan(s Seconds) string {
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
