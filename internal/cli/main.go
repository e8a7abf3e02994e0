package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "reelcut <video> <outline>",
		Short:        "Build a highlight reel from a video and a segment outline",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], args[1])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Settings shared by run and plan
	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("default-duration", "", "Duration for segments that omit one (e.g. 90, 01:30, 2m30s)")
	pf.String("ffmpeg", "", "Path to the ffmpeg binary")
	pf.String("ffprobe", "", "Path to the ffprobe binary")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.Bool("log-json", false, "Emit logs as JSON")

	root.Flags().String("out", "", "Output directory for the finished reel")
	root.Flags().Int("workers", 0, "Concurrent segment cuts (0 = one per core)")
	root.Flags().Bool("best-effort", false, "Keep going when a segment fails to cut")
	root.Flags().Bool("quiet", false, "Suppress progress output, print only the reel path")

	root.AddCommand(newPlanCmd(), newFormatsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
