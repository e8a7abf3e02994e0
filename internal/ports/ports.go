package ports

import (
	"context"

	"github.com/reelcut/reelcut/internal/domain/timecode"
)

// VideoTool is the media backend the pipeline drives. Cut operations
// write the clip for [start, start+dur) to outPath; the copy variants
// avoid re-encoding and may fail on cuts that do not align with
// keyframes, in which case callers fall back to the encode variants.
type VideoTool interface {
	ProbeDuration(ctx context.Context, path string) (timecode.Seconds, error)
	CutCopy(ctx context.Context, inPath string, start, dur timecode.Seconds, outPath string) error
	CutEncode(ctx context.Context, inPath string, start, dur timecode.Seconds, outPath string) error
	Concat(ctx context.Context, clipPaths []string, outPath string) error
	ConcatEncode(ctx context.Context, clipPaths []string, outPath string) error
}
