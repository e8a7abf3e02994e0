// Package reel validates raw segments against the source video and
// produces the ordered cut plan.
package reel

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/reelcut/reelcut/internal/domain/timecode"
	"github.com/reelcut/reelcut/internal/types"
)

// ErrNoValidSegments reports that parsing succeeded structurally but no
// usable segment survived validation.
var ErrNoValidSegments = errors.New("no valid segments")

type segKey struct {
	title string
	start timecode.Seconds
	span  timecode.Seconds
}

// BuildPlan clamps raw segments to the source duration, drops the
// unusable ones and orders the survivors by start time ascending.
// Appearance order in the outline decides ties, so the plan is fully
// deterministic for a given input. Overlapping segments are allowed;
// the plan is a playlist, not a partition of the source.
func BuildPlan(raw []types.RawSegment, source types.SourceVideo) (types.Plan, []string, error) {
	var warns []string
	var segs []types.Segment

	seen := make(map[segKey]bool, len(raw))
	for _, r := range raw {
		key := segKey{norm.NFC.String(r.Title), r.Start, r.Span}
		if seen[key] {
			warns = append(warns, fmt.Sprintf("segment %q: duplicate entry, dropped", r.Title))
			continue
		}
		seen[key] = true

		if r.Start >= source.Duration {
			warns = append(warns, fmt.Sprintf("segment %q: starts at %s, beyond the end of the source (%s), dropped",
				r.Title, r.Start, timecode.Format(source.Duration)))
			continue
		}
		dur := r.Span
		if r.Start+dur > source.Duration {
			clamped := source.Duration - r.Start
			warns = append(warns, fmt.Sprintf("segment %q: runs past the end of the source, duration trimmed %s -> %s",
				r.Title, timecode.FormatSpan(dur), timecode.FormatSpan(clamped)))
			dur = clamped
		}
		if dur == 0 {
			warns = append(warns, fmt.Sprintf("segment %q: zero duration, dropped", r.Title))
			continue
		}
		segs = append(segs, types.Segment{Title: r.Title, Start: r.Start, Duration: dur})
	}

	// Indices are assigned in appearance order before sorting; the
	// stable sort then keeps them as the tie-break for equal starts.
	for i := range segs {
		segs[i].Index = i + 1
	}
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })

	if len(segs) == 0 {
		return types.Plan{}, warns, ErrNoValidSegments
	}
	return types.Plan{Source: source, Segments: segs}, warns, nil
}
