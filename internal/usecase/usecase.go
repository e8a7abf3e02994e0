// Package usecase runs a highlight-reel build end to end: detect the
// outline grammar, extract and validate segments, cut each one from the
// source and concatenate the clips into the final reel. Progress is
// reported as an ordered event stream; temporary clips never outlive
// the run.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/reelcut/reelcut/internal/domain/outline"
	"github.com/reelcut/reelcut/internal/domain/reel"
	"github.com/reelcut/reelcut/internal/domain/timecode"
	"github.com/reelcut/reelcut/internal/logging"
	"github.com/reelcut/reelcut/internal/ports"
	"github.com/reelcut/reelcut/internal/types"
)

type Deps struct {
	Video  ports.VideoTool
	Logger *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	return Usecase{d: d}
}

type Input struct {
	Source      types.SourceVideo
	OutlineText string
	OutputPath  string
	Workers     int
	DefaultSpan timecode.Seconds
	BestEffort  bool
	OnEvent     func(Event)
}

type Result struct {
	RunID        string
	OutputPath   string
	Format       outline.Format
	SegmentCount int
	Warnings     []string
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	runID := uuid.NewString()
	log := u.d.Logger.With("run_id", runID)
	res := Result{RunID: runID}

	emit := func(ev Event) {
		if in.OnEvent != nil {
			in.OnEvent(ev)
		}
	}
	warn := func(msgs ...string) {
		for _, m := range msgs {
			res.Warnings = append(res.Warnings, m)
			log.Warn(m)
		}
	}

	emit(Event{State: StateDetecting, Message: "Analyzing content for video segments..."})
	format, err := outline.Detect(in.OutlineText)
	if err != nil {
		emit(Event{State: StateParseFailed, Message: "Could not recognize the outline format."})
		return res, err
	}
	res.Format = format
	log.Info("outline format detected", "format", format.String())

	emit(Event{State: StateExtracting, Message: fmt.Sprintf("Parsing %s format outline.", format)})
	rawSegs, pwarns, err := outline.Extract(format, in.OutlineText, outline.Options{DefaultSpan: in.DefaultSpan})
	if err != nil {
		emit(Event{State: StateParseFailed, Message: err.Error()})
		return res, err
	}
	warn(pwarns...)

	emit(Event{State: StateValidating, Message: "Validating segments against the source video."})
	plan, vwarns, err := reel.BuildPlan(rawSegs, in.Source)
	warn(vwarns...)
	if err != nil {
		emit(Event{State: StateParseFailed, Message: "No valid segments found in the content."})
		return res, err
	}

	total := len(plan.Segments)
	emit(Event{State: StateValidating, Message: fmt.Sprintf("Found %d segments to extract.", total)})
	for i, seg := range plan.Segments {
		emit(Event{State: StateValidating, Message: fmt.Sprintf("Segment %d: %s - Start: %s, Duration: %s",
			i+1, seg.Title, timecode.Format(seg.Start), timecode.FormatSpan(seg.Duration))})
	}

	workDir, err := os.MkdirTemp("", "reelcut-*")
	if err != nil {
		emit(Event{State: StatePipelineFailed, Message: "Could not create a working directory."})
		return res, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	clips, encoded, err := u.cutAll(ctx, log, in, plan, workDir, emit, warn)
	if err != nil {
		emit(Event{State: StatePipelineFailed, Message: err.Error()})
		return res, err
	}
	res.SegmentCount = len(clips)

	emit(Event{State: StateAssembling, Message: "Creating highlight reel (this may take a while)..."})
	if err := u.assemble(ctx, in.OutputPath, clips, encoded, warn); err != nil {
		emit(Event{State: StatePipelineFailed, Message: err.Error()})
		return res, err
	}

	res.OutputPath = in.OutputPath
	log.Info("highlight reel complete",
		"output", in.OutputPath, "segments", res.SegmentCount, "warnings", len(res.Warnings))
	emit(Event{State: StateDone, Message: "Highlight reel created successfully!"})
	return res, nil
}

type cutResult struct {
	pos     int
	path    string
	encoded bool
	err     error
}

// cutAll extracts every planned segment into workDir through a bounded
// worker pool. Results are keyed by plan position, so the returned clip
// paths follow plan order no matter which worker finished first. Under
// fail-fast the first failure stops workers at the next task boundary;
// cuts already running are left to finish.
func (u Usecase) cutAll(ctx context.Context, log *slog.Logger, in Input, plan types.Plan, workDir string,
	emit func(Event), warn func(...string)) ([]string, []bool, error) {

	total := len(plan.Segments)
	workers := in.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan int, total)
	results := make(chan cutResult, total)
	stop := make(chan struct{})
	var stopOnce sync.Once
	halt := func() { stopOnce.Do(func() { close(stop) }) }

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range jobs {
				select {
				case <-stop:
					continue
				case <-ctx.Done():
					continue
				default:
				}
				seg := plan.Segments[pos]
				path, enc, err := u.cutOne(ctx, log, plan.Source.Path, seg, workDir, pos)
				results <- cutResult{pos: pos, path: path, encoded: enc, err: err}
			}
		}()
	}
	for pos := range plan.Segments {
		jobs <- pos
	}
	close(jobs)
	go func() {
		wg.Wait()
		close(results)
	}()

	clipPaths := make([]string, total)
	encodedFlags := make([]bool, total)
	failed := make([]bool, total)
	var firstErr error
	done := 0
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			failed[r.pos] = true
			if in.BestEffort {
				warn(fmt.Sprintf("segment %q: extraction failed, omitted from reel: %v",
					plan.Segments[r.pos].Title, r.err))
			} else {
				halt()
			}
			continue
		}
		clipPaths[r.pos] = r.path
		encodedFlags[r.pos] = r.encoded
		done++
		emit(Event{State: StateCutting, Done: done, Total: total,
			Message: fmt.Sprintf("Cut segment: %s (%d/%d)", plan.Segments[r.pos].Title, done, total)})
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if !in.BestEffort && firstErr != nil {
		return nil, nil, firstErr
	}

	var paths []string
	var enc []bool
	for pos := range plan.Segments {
		if failed[pos] || clipPaths[pos] == "" {
			continue
		}
		paths = append(paths, clipPaths[pos])
		enc = append(enc, encodedFlags[pos])
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("all segments failed to extract: %w", firstErr)
	}
	return paths, enc, nil
}

// cutOne extracts a single segment, preferring a stream copy and
// falling back to one re-encode when the copy fails.
func (u Usecase) cutOne(ctx context.Context, log *slog.Logger, src string, seg types.Segment,
	workDir string, pos int) (string, bool, error) {

	name := fmt.Sprintf("clip_%03d", pos+1)
	if s := slugTitle(seg.Title); s != "" {
		name += "_" + s
	}
	out := filepath.Join(workDir, name+".mp4")

	copyErr := u.d.Video.CutCopy(ctx, src, seg.Start, seg.Duration, out)
	if copyErr == nil {
		return out, false, nil
	}
	if ctx.Err() != nil {
		return "", false, ctx.Err()
	}
	log.Warn("stream copy failed, re-encoding segment", "segment", seg.Title, "error", copyErr)
	if err := u.d.Video.CutEncode(ctx, src, seg.Start, seg.Duration, out); err != nil {
		return "", false, &ExtractionError{Index: seg.Index, Title: seg.Title, Err: err}
	}
	return out, true, nil
}

// assemble concatenates clips in plan order, writing to a temporary
// sibling of outputPath and renaming into place so a failed run never
// leaves a partial artifact at the final path. A mix of copied and
// re-encoded clips goes straight to the encoding concat; otherwise the
// stream-copy concat runs first with the encoding one as fallback.
func (u Usecase) assemble(ctx context.Context, outputPath string, clips []string, encoded []bool,
	warn func(...string)) error {

	mixed := false
	for _, e := range encoded {
		if e != encoded[0] {
			mixed = true
			break
		}
	}

	tmp := filepath.Join(filepath.Dir(outputPath), ".partial-"+filepath.Base(outputPath))
	defer os.Remove(tmp)

	if mixed {
		warn("clips use mixed encoding profiles, re-encoding final reel")
		if err := u.d.Video.ConcatEncode(ctx, clips, tmp); err != nil {
			return &AssemblyError{Err: err}
		}
	} else if err := u.d.Video.Concat(ctx, clips, tmp); err != nil {
		if ctx.Err() != nil {
			return &AssemblyError{Err: ctx.Err()}
		}
		warn("stream-copy concatenation failed, re-encoding final reel")
		if err := u.d.Video.ConcatEncode(ctx, clips, tmp); err != nil {
			return &AssemblyError{Err: err}
		}
	}

	if err := os.Rename(tmp, outputPath); err != nil {
		return &AssemblyError{Err: err}
	}
	return nil
}
