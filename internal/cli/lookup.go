package cli

import (
	"fmt"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/timeline"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [subtitle_file] [position...]",
	Short: "Show the caption active at playback positions",
	Long: `Resolve which caption is on screen at one or more playback positions.

Positions may be given as 00:01:02,500, as a duration such as 1m2.5s, or as
plain seconds.

Examples:
  captionplayer lookup movie.srt 2.5 00:00:05,500
  captionplayer lookup movie.srt 12s --mode bucket`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().
		StringP("mode", "m", "", "Lookup mode (interval, bucket); defaults to the config value")
}

func runLookup(cmd *cobra.Command, args []string) error {
	path := args[0]

	mode, err := lookupMode(cmd)
	if err != nil {
		return err
	}

	entries, err := subtitle.NewParser(logger).ParseFile(path)
	if err != nil {
		return err
	}
	index := timeline.Build(entries, timeline.WithMode(mode))

	out := cmd.OutOrStdout()
	for _, arg := range args[1:] {
		pos, err := parsePosition(arg)
		if err != nil {
			return err
		}
		entry, ok := index.Lookup(pos)
		if !ok {
			fmt.Fprintf(out, "%s  (no caption)\n", subtitle.FormatTimestamp(pos))
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", subtitle.FormatTimestamp(pos), describeEntry(entry))
	}
	return nil
}
