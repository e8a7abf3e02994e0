package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reelcut/reelcut/internal/config"
	"github.com/reelcut/reelcut/internal/logging"
	"github.com/reelcut/reelcut/internal/pipeline"
	"github.com/reelcut/reelcut/internal/usecase"
)

func run(cmd *cobra.Command, videoPath, outlinePath string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	span, err := cfg.Span()
	if err != nil {
		return err
	}

	absVideo, err := filepath.Abs(videoPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	// Ctrl-C cancels the run; in-flight ffmpeg work is torn down and
	// partial artifacts are cleaned up.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	pcfg := pipeline.Config{
		VideoPath:   absVideo,
		OutlinePath: outlinePath,
		OutDir:      cfg.OutDir,
		Workers:     cfg.Workers,
		DefaultSpan: span,
		BestEffort:  cfg.BestEffort,
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
		Logger:      logging.New(cfg.LogLevel, cfg.LogJSON),
	}
	if !quiet {
		out := cmd.OutOrStdout()
		pcfg.OnEvent = func(e usecase.Event) { fmt.Fprintln(out, e.Message) }
	}
	if err := pcfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, pcfg)
	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	if err != nil {
		return err
	}

	if quiet {
		fmt.Fprintln(cmd.OutOrStdout(), res.OutputPath)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", res.OutputPath)
	}
	return nil
}

// loadConfig builds the effective settings for a command: config file,
// then environment, then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("out") {
		cfg.OutDir, _ = flags.GetString("out")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("default-duration") {
		cfg.DefaultDuration, _ = flags.GetString("default-duration")
	}
	if flags.Changed("best-effort") {
		cfg.BestEffort, _ = flags.GetBool("best-effort")
	}
	if flags.Changed("ffmpeg") {
		cfg.FFmpegPath, _ = flags.GetString("ffmpeg")
	}
	if flags.Changed("ffprobe") {
		cfg.FFprobePath, _ = flags.GetString("ffprobe")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.LogJSON, _ = flags.GetBool("log-json")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
