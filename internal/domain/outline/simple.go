package outline

import (
	"fmt"
	"strings"

	"github.com/reelcut/reelcut/internal/domain/timecode"
	"github.com/reelcut/reelcut/internal/types"
)

func isSimpleIntro(ln string) bool { return strings.HasPrefix(ln, labelSegment) }

// extractSimple walks SEGMENT:/TIME:/DURATION: triplets. All three
// lines are required; a block missing one is skipped so a single
// malformed block cannot sink the rest of the document.
func extractSimple(clean []string) ([]types.RawSegment, []string) {
	var segs []types.RawSegment
	var warns []string
	for n, r := range blockRanges(clean, isSimpleIntro) {
		title := strings.TrimSpace(strings.TrimPrefix(clean[r[0]], labelSegment))
		if title == "" {
			title = fmt.Sprintf("Segment %d", n+1)
		}
		label := fmt.Sprintf("segment %d %q", n+1, title)

		var timeTok, durTok string
		for i := r[0] + 1; i < r[1]; i++ {
			switch {
			case timeTok == "" && strings.HasPrefix(clean[i], labelTime):
				timeTok = strings.TrimSpace(strings.TrimPrefix(clean[i], labelTime))
			case durTok == "" && strings.HasPrefix(clean[i], labelDuration):
				durTok = strings.TrimSpace(strings.TrimPrefix(clean[i], labelDuration))
			}
		}
		if timeTok == "" {
			warns = append(warns, label+": missing TIME: line, skipped")
			continue
		}
		if durTok == "" {
			warns = append(warns, label+": missing DURATION: line, skipped")
			continue
		}

		start, err := timecode.ParseClock(timeTok)
		if err != nil {
			warns = append(warns, fmt.Sprintf("%s: bad start time %q, skipped", label, timeTok))
			continue
		}
		span, err := timecode.ParseSpan(durTok)
		if err != nil {
			warns = append(warns, fmt.Sprintf("%s: bad duration %q, skipped", label, durTok))
			continue
		}
		segs = append(segs, types.RawSegment{Title: title, Start: start, Span: span})
	}
	return segs, warns
}
