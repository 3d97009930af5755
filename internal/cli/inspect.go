package cli

import (
	"fmt"
	"strconv"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/timeline"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle_file]",
	Short: "List the merged captions of a subtitle file",
	Long: `Parse a SubRip file and list its captions after merging blocks whose
time ranges touch.

The Bucket column shows the whole second each caption starts in. A caption
marked with * shares its bucket with a later caption and is not reachable
through a bucket lookup.

Examples:
  captionplayer inspect movie.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	entries, err := subtitle.NewParser(logger).ParseFile(path)
	if err != nil {
		return err
	}
	index := timeline.Build(entries)

	logger.Infow("Inspecting caption track",
		"path", path,
		"entries", index.Len(),
	)

	fmt.Fprintln(cmd.OutOrStdout(), renderEntries(index))
	fmt.Fprintf(cmd.OutOrStdout(), "  Entries: %d\n", index.Len())
	return nil
}

func renderEntries(index *timeline.Index) string {
	entries := index.Entries()
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		bucket := timeline.BucketOf(entry.StartTime)
		label := strconv.FormatInt(bucket, 10)
		if owner, ok := index.Bucket(bucket); ok && owner != entry {
			label += "*"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(entry.Index),
			entry.TimeStamp(),
			subtitle.FormatTimestamp(entry.StartTime),
			subtitle.FormatTimestamp(entry.EndTime),
			label,
			entry.Text,
		})
	}
	return renderTable(
		[]string{"#", "Seq", "Time", "Start", "End", "Bucket", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
