// Package outline turns free-form outline text into raw segment
// records. Three grammars describe the same thing, a titled time range:
// the custom "Segment N:" block form, the standard "####" heading form
// and the simple SEGMENT:/TIME:/DURATION: form. Detection is purely
// structural; the first grammar whose markers appear wins.
package outline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/reelcut/reelcut/internal/domain/timecode"
	"github.com/reelcut/reelcut/internal/types"
)

// ErrUnrecognizedFormat reports text in which no block matches any
// known grammar introducer.
var ErrUnrecognizedFormat = errors.New("unrecognized outline format")

// DefaultSpan is assumed for entries that name no duration.
const DefaultSpan timecode.Seconds = 60

// Format identifies one of the supported outline grammars.
type Format int

const (
	FormatUnknown Format = iota
	FormatCustom
	FormatStandard
	FormatSimple
)

func (f Format) String() string {
	switch f {
	case FormatCustom:
		return "custom"
	case FormatStandard:
		return "standard"
	case FormatSimple:
		return "simple"
	default:
		return "unknown"
	}
}

func (f Format) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(f.String())), nil
}

// Options tune extraction. The zero value is usable.
type Options struct {
	// DefaultSpan overrides the duration assumed for entries without
	// one; zero means DefaultSpan.
	DefaultSpan timecode.Seconds
}

func (o Options) defaultSpan() timecode.Seconds {
	if o.DefaultSpan > 0 {
		return o.DefaultSpan
	}
	return DefaultSpan
}

const (
	markerStart   = "STARTING TIMESTAMP:"
	markerContent = "CONTENT DESCRIPTION:"
	labelSegment  = "SEGMENT:"
	labelTime     = "TIME:"
	labelDuration = "DURATION:"
)

// Detect classifies text by grammar markers alone, checking the custom
// form first, then standard, then simple. Text matching none of the
// three fails with ErrUnrecognizedFormat before any extraction runs.
func Detect(text string) (Format, error) {
	clean := cleanLines(text)
	switch {
	case hasCustom(clean):
		return FormatCustom, nil
	case hasStandard(clean):
		return FormatStandard, nil
	case hasSimple(clean):
		return FormatSimple, nil
	}
	return FormatUnknown, ErrUnrecognizedFormat
}

// Extract parses text as the given grammar and returns the segments in
// order of appearance. Malformed blocks are skipped and reported as
// warnings; they never fail the whole document.
func Extract(format Format, text string, opts Options) ([]types.RawSegment, []string, error) {
	clean := cleanLines(text)
	switch format {
	case FormatCustom:
		segs, warns := extractCustom(clean, opts)
		return segs, warns, nil
	case FormatStandard:
		segs, warns := extractStandard(clean, opts)
		return segs, warns, nil
	case FormatSimple:
		segs, warns := extractSimple(clean)
		return segs, warns, nil
	}
	return nil, nil, fmt.Errorf("extract: unknown format %d", int(format))
}

var emphasis = strings.NewReplacer("*", "", "_", "")

// cleanLines splits text into lines with markdown emphasis and
// surrounding whitespace removed, so label matching sees bare text.
// Outlines arrive bold-littered often enough that stripping up front is
// simpler than tolerating emphasis in every matcher.
func cleanLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSpace(emphasis.Replace(strings.TrimSuffix(ln, "\r")))
	}
	return lines
}

// blockRanges returns [from, to) line ranges, one per block, where a
// block runs from an introducer line to the next introducer or EOF.
func blockRanges(clean []string, isIntro func(string) bool) [][2]int {
	var starts []int
	for i, ln := range clean {
		if isIntro(ln) {
			starts = append(starts, i)
		}
	}
	ranges := make([][2]int, len(starts))
	for k, s := range starts {
		end := len(clean)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		ranges[k] = [2]int{s, end}
	}
	return ranges
}

func hasCustom(clean []string) bool {
	for _, r := range blockRanges(clean, isCustomIntro) {
		for i := r[0] + 1; i < r[1]; i++ {
			if strings.Contains(clean[i], markerStart) && strings.Contains(clean[i], markerContent) {
				return true
			}
		}
	}
	return false
}

func hasStandard(clean []string) bool {
	for _, r := range blockRanges(clean, isHeading) {
		for i := r[0] + 1; i < r[1]; i++ {
			if strings.HasPrefix(clean[i], markerStart) {
				return true
			}
		}
	}
	return false
}

func hasSimple(clean []string) bool {
	for _, ln := range clean {
		if strings.HasPrefix(ln, labelSegment) {
			return true
		}
	}
	return false
}

var reTrailingParen = regexp.MustCompile(`^(.*?)\s*\(([^()]*)\)$`)

// splitTrailingSpan peels a duration parenthetical off a title:
// "Opening Hook (01:30)" -> ("Opening Hook", "01:30"). Parentheticals
// that do not open with a digit are prose and stay in the title.
func splitTrailingSpan(s string) (title, span string) {
	s = strings.TrimSpace(s)
	if m := reTrailingParen.FindStringSubmatch(s); m != nil {
		tok := strings.TrimSpace(m[2])
		if tok != "" && tok[0] >= '0' && tok[0] <= '9' {
			return strings.TrimSpace(m[1]), tok
		}
	}
	return s, ""
}

// buildSegment assembles one RawSegment once a block's tokens are
// gathered. ok=false means the block must be skipped; the returned
// warnings apply either way.
func buildSegment(label, title, startTok, spanTok string, opts Options) (types.RawSegment, []string, bool) {
	if startTok == "" {
		return types.RawSegment{}, []string{label + ": missing starting timestamp, skipped"}, false
	}
	start, err := timecode.ParseClock(startTok)
	if err != nil {
		return types.RawSegment{}, []string{fmt.Sprintf("%s: bad start time %q, skipped", label, startTok)}, false
	}

	var warns []string
	var span timecode.Seconds
	if spanTok == "" {
		span = opts.defaultSpan()
		warns = append(warns, fmt.Sprintf("%s: no duration given, assuming %s", label, timecode.FormatSpan(span)))
	} else {
		span, err = timecode.ParseSpan(spanTok)
		if err != nil {
			return types.RawSegment{}, []string{fmt.Sprintf("%s: bad duration %q, skipped", label, spanTok)}, false
		}
	}
	return types.RawSegment{Title: title, Start: start, Span: span}, warns, true
}
