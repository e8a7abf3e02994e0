package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/reelcut/reelcut/internal/domain/outline"
	"github.com/reelcut/reelcut/internal/domain/reel"
	"github.com/reelcut/reelcut/internal/domain/timecode"
	"github.com/reelcut/reelcut/internal/ports"
	"github.com/reelcut/reelcut/internal/ports/adapters/ffmpeg"
	"github.com/reelcut/reelcut/internal/types"
	"github.com/reelcut/reelcut/internal/usecase"
)

type Config struct {
	VideoPath   string
	OutlinePath string

	// OutlineText bypasses OutlinePath when the caller already holds
	// the outline in memory.
	OutlineText string

	OutDir      string
	Workers     int
	DefaultSpan timecode.Seconds
	BestEffort  bool

	FFmpegPath  string
	FFprobePath string

	Logger  *slog.Logger
	OnEvent func(usecase.Event)
}

func (c Config) Validate() error {
	if c.VideoPath == "" {
		return errors.New("video path is empty")
	}
	if _, err := os.Stat(c.VideoPath); err != nil {
		return fmt.Errorf("stat video: %w", err)
	}
	if c.OutlinePath == "" && c.OutlineText == "" {
		return errors.New("outline path is empty")
	}
	if c.OutlinePath != "" {
		if _, err := os.Stat(c.OutlinePath); err != nil {
			return fmt.Errorf("stat outline: %w", err)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	if c.DefaultSpan < 0 {
		return fmt.Errorf("default duration must be >= 0")
	}
	return nil
}

// Run wires the ffmpeg adapter to the usecase and produces the reel at
// <out dir>/<video stem>_highlight_reel.mp4.
func Run(ctx context.Context, cfg Config) (usecase.Result, error) {
	text, err := cfg.outlineText()
	if err != nil {
		return usecase.Result{}, err
	}

	v := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)

	// The source length is queried once here; every later validation
	// step works against this value.
	dur, err := v.ProbeDuration(ctx, cfg.VideoPath)
	if err != nil {
		return usecase.Result{}, fmt.Errorf("probe video duration: %w", err)
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "highlight_reels"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return usecase.Result{}, fmt.Errorf("create output dir: %w", err)
	}

	uc := usecase.New(usecase.Deps{Video: v, Logger: cfg.Logger})
	return uc.Run(ctx, usecase.Input{
		Source:      types.SourceVideo{Path: cfg.VideoPath, Duration: dur},
		OutlineText: text,
		OutputPath:  filepath.Join(outDir, outputName(cfg.VideoPath)),
		Workers:     cfg.Workers,
		DefaultSpan: cfg.DefaultSpan,
		BestEffort:  cfg.BestEffort,
		OnEvent:     cfg.OnEvent,
	})
}

// PlanResult is the outcome of a dry run: the cut plan plus parse
// metadata, with nothing written to disk.
type PlanResult struct {
	Format   outline.Format `json:"format"`
	Plan     types.Plan     `json:"plan"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Plan parses and validates the outline against the source video
// without cutting anything.
func Plan(ctx context.Context, cfg Config) (PlanResult, error) {
	text, err := cfg.outlineText()
	if err != nil {
		return PlanResult{}, err
	}

	v := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	dur, err := v.ProbeDuration(ctx, cfg.VideoPath)
	if err != nil {
		return PlanResult{}, fmt.Errorf("probe video duration: %w", err)
	}

	format, err := outline.Detect(text)
	if err != nil {
		return PlanResult{}, err
	}
	res := PlanResult{Format: format}
	raws, pwarns, err := outline.Extract(format, text, outline.Options{DefaultSpan: cfg.DefaultSpan})
	res.Warnings = pwarns
	if err != nil {
		return res, err
	}
	source := types.SourceVideo{Path: cfg.VideoPath, Duration: dur}
	plan, vwarns, err := reel.BuildPlan(raws, source)
	res.Plan = plan
	res.Warnings = append(res.Warnings, vwarns...)
	return res, err
}

func (c Config) outlineText() (string, error) {
	if c.OutlineText != "" {
		return c.OutlineText, nil
	}
	b, err := os.ReadFile(c.OutlinePath)
	if err != nil {
		return "", fmt.Errorf("read outline: %w", err)
	}
	return string(b), nil
}

func outputName(videoPath string) string {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	if stem == "" || stem == "." {
		stem = "video"
	}
	return stem + "_highlight_reel.mp4"
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
