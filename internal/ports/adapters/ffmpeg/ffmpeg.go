package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/reelcut/reelcut/internal/domain/timecode"
)

// Adapter drives the ffmpeg and ffprobe binaries.
type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ProbeDuration(ctx context.Context, path string) (timecode.Seconds, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, tail(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	// Truncate so a cut can never reach past the real end of file.
	return timecode.Seconds(sec), nil
}

func (a *Adapter) CutCopy(ctx context.Context, inPath string, start, dur timecode.Seconds, outPath string) error {
	if err := a.run(ctx, cutArgs(inPath, start, dur, outPath, false)); err != nil {
		return fmt.Errorf("ffmpeg cut (copy): %w", err)
	}
	return verifyOutput(outPath)
}

func (a *Adapter) CutEncode(ctx context.Context, inPath string, start, dur timecode.Seconds, outPath string) error {
	if err := a.run(ctx, cutArgs(inPath, start, dur, outPath, true)); err != nil {
		return fmt.Errorf("ffmpeg cut (encode): %w", err)
	}
	return verifyOutput(outPath)
}

func (a *Adapter) Concat(ctx context.Context, clipPaths []string, outPath string) error {
	return a.concat(ctx, clipPaths, outPath, false)
}

func (a *Adapter) ConcatEncode(ctx context.Context, clipPaths []string, outPath string) error {
	return a.concat(ctx, clipPaths, outPath, true)
}

func (a *Adapter) concat(ctx context.Context, clipPaths []string, outPath string, encode bool) error {
	if len(clipPaths) == 0 {
		return fmt.Errorf("concat: no clips")
	}
	listPath := outPath + ".txt"
	if err := writeConcatList(listPath, clipPaths); err != nil {
		return err
	}
	defer os.Remove(listPath)

	mode := "copy"
	if encode {
		mode = "encode"
	}
	if err := a.run(ctx, concatArgs(listPath, outPath, encode)); err != nil {
		return fmt.Errorf("ffmpeg concat (%s): %w", mode, err)
	}
	return verifyOutput(outPath)
}

func (a *Adapter) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w\n%s", err, tail(b))
	}
	return nil
}

// cutArgs builds the argument list for one sub-clip. -ss before -i
// seeks on the input side; -avoid_negative_ts keeps copied streams
// aligned when the cut lands off a keyframe.
func cutArgs(inPath string, start, dur timecode.Seconds, outPath string, encode bool) []string {
	args := []string{
		"-y",
		"-ss", fmtSeconds(start),
		"-i", inPath,
		"-t", fmtSeconds(dur),
	}
	if encode {
		args = append(args, encodeProfile()...)
	} else {
		args = append(args, "-c", "copy", "-avoid_negative_ts", "make_zero")
	}
	return append(args, outPath)
}

func concatArgs(listPath, outPath string, encode bool) []string {
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
	}
	if encode {
		args = append(args, encodeProfile()...)
	} else {
		args = append(args, "-c", "copy")
	}
	return append(args, outPath)
}

func encodeProfile() []string {
	return []string{
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
	}
}

// writeConcatList emits the concat demuxer file, one clip per line.
// Single quotes inside paths are closed, escaped and reopened, which is
// the quoting the demuxer expects.
func writeConcatList(listPath string, clipPaths []string) error {
	var b strings.Builder
	for _, p := range clipPaths {
		fmt.Fprintf(&b, "file '%s'\n", escapeConcatPath(p))
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

func escapeConcatPath(p string) string {
	return strings.ReplaceAll(p, "'", `'\''`)
}

func fmtSeconds(s timecode.Seconds) string {
	return strconv.FormatInt(int64(s), 10)
}

// verifyOutput guards against runs where ffmpeg exits zero yet writes
// nothing usable, which stream copy does on some boundary cuts.
func verifyOutput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("verify output: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("verify output: %s is empty", path)
	}
	return nil
}

// tail keeps errors readable when ffmpeg dumps pages of log.
func tail(b []byte) []byte {
	const max = 2048
	if len(b) <= max {
		return b
	}
	return b[len(b)-max:]
}
