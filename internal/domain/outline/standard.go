package outline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reelcut/reelcut/internal/types"
)

var (
	reHeading       = regexp.MustCompile(`^####\s+(.+)$`)
	reLeadingNumber = regexp.MustCompile(`^\d+[.)]\s*`)
)

func isHeading(ln string) bool { return reHeading.MatchString(ln) }

// extractStandard walks "####" heading blocks. The heading text becomes
// the title after leading numbering is dropped; a trailing parenthetical
// on the heading carries the duration.
func extractStandard(clean []string, opts Options) ([]types.RawSegment, []string) {
	var segs []types.RawSegment
	var warns []string
	for n, r := range blockRanges(clean, isHeading) {
		m := reHeading.FindStringSubmatch(clean[r[0]])
		heading := reLeadingNumber.ReplaceAllString(strings.TrimSpace(m[1]), "")
		title, spanTok := splitTrailingSpan(heading)
		if title == "" {
			title = fmt.Sprintf("Segment %d", n+1)
		}
		label := fmt.Sprintf("segment %d %q", n+1, title)

		startTok := ""
		for i := r[0] + 1; i < r[1]; i++ {
			if strings.HasPrefix(clean[i], markerStart) {
				startTok = strings.TrimSpace(strings.TrimPrefix(clean[i], markerStart))
				break
			}
		}

		seg, w, ok := buildSegment(label, title, startTok, spanTok, opts)
		warns = append(warns, w...)
		if !ok {
			continue
		}
		segs = append(segs, seg)
	}
	return segs, warns
}
