package outline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reelcut/reelcut/internal/types"
)

var reCustomIntro = regexp.MustCompile(`^Segment\s+(\d+)\s*:\s*(.*)$`)

func isCustomIntro(ln string) bool { return reCustomIntro.MatchString(ln) }

// extractCustom walks "Segment N:" blocks. The declared number labels
// warnings only; ordering always follows appearance in the text. The
// start time is taken from the first STARTING TIMESTAMP: marker inside
// the block, cut short at CONTENT DESCRIPTION: when both share a line.
func extractCustom(clean []string, opts Options) ([]types.RawSegment, []string) {
	var segs []types.RawSegment
	var warns []string
	for _, r := range blockRanges(clean, isCustomIntro) {
		m := reCustomIntro.FindStringSubmatch(clean[r[0]])
		num := m[1]
		title, spanTok := splitTrailingSpan(m[2])
		if title == "" {
			title = "Segment " + num
		}
		label := fmt.Sprintf("segment %s %q", num, title)

		startTok := ""
		for i := r[0]; i < r[1]; i++ {
			idx := strings.Index(clean[i], markerStart)
			if idx < 0 {
				continue
			}
			v := clean[i][idx+len(markerStart):]
			if c := strings.Index(v, markerContent); c >= 0 {
				v = v[:c]
			}
			startTok = strings.TrimSpace(v)
			break
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
