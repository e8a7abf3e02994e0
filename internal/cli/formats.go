package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Show the outline formats reelcut understands",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), formatsHelp)
		},
	}
}

const formatsHelp = `reelcut reads a plain-text outline describing which parts of the
video belong in the reel. Markdown emphasis (*, _) is ignored, and the
three formats below are tried in order.

Custom: a "Segment N:" intro with both markers on one line.

  Segment 1: Opening Hook (1.5 minutes)
  STARTING TIMESTAMP: 00:16:30 CONTENT DESCRIPTION: The speaker opens
  with the demo everyone came for.

Standard: a #### heading with the duration in parentheses, followed by
a timestamp line.

  #### 1. Opening Hook (1.5 minutes)
  STARTING TIMESTAMP: 00:01:30

Simple: three labelled lines per segment.

  SEGMENT: Opening Hook
  TIME: 00:01:30
  DURATION: 02:00

Timestamps accept H:MM:SS, MM:SS, or bare seconds. Durations also
accept forms like "90 seconds", "1.5 minutes", and "2m30s". A segment
without a duration gets the default (60 seconds unless overridden with
--default-duration).
`
