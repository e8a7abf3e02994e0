package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reelcut/reelcut/internal/domain/timecode"
	"github.com/reelcut/reelcut/internal/pipeline"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "plan <video> <outline>",
		Short:        "Parse an outline and show the cut plan without writing anything",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args[0], args[1])
		},
	}
	cmd.Flags().Bool("json", false, "Print the plan as JSON")
	return cmd
}

func runPlan(cmd *cobra.Command, videoPath, outlinePath string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	span, err := cfg.Span()
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pcfg := pipeline.Config{
		VideoPath:   videoPath,
		OutlinePath: outlinePath,
		DefaultSpan: span,
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
	}
	if err := pcfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Plan(ctx, pcfg)
	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal plan: %w", err)
		}
		fmt.Fprintln(out, string(b))
		return nil
	}

	fmt.Fprintf(out, "Format: %s\n", res.Format)
	fmt.Fprintf(out, "Source: %s (%s)\n", res.Plan.Source.Path, timecode.Format(res.Plan.Source.Duration))
	fmt.Fprintf(out, "Found %d segments to extract.\n", len(res.Plan.Segments))
	for _, seg := range res.Plan.Segments {
		fmt.Fprintf(out, "Segment %d: %s - Start: %s, Duration: %s\n",
			seg.Index, seg.Title, timecode.Format(seg.Start), timecode.FormatSpan(seg.Duration))
	}
	return nil
}
