package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/playback"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/timeline"
	"github.com/spf13/cobra"
)

var jumpCmd = &cobra.Command{
	Use:   "jump [subtitle_file] [entry_number]",
	Short: "Resolve the seek position for a caption",
	Long: `Print the position a player seeks to when a caption is chosen from the
list. Entry numbers are the # column of inspect.

With --media the target is refused when it lies at or beyond the end of the
media.

Examples:
  captionplayer jump movie.srt 12
  captionplayer jump movie.srt 12 --media movie.mkv`,
	Args: cobra.ExactArgs(2),
	RunE: runJump,
}

func init() {
	rootCmd.AddCommand(jumpCmd)

	jumpCmd.Flags().
		String("media", "", "Media file whose duration bounds the seek")
}

func runJump(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	number, err := strconv.Atoi(args[1])
	if err != nil || number <= 0 {
		return fmt.Errorf("invalid entry number %q: must be a positive integer", args[1])
	}
	mediaPath, _ := cmd.Flags().GetString("media")

	info, err := probeMedia(context.Background(), mediaPath)
	if err != nil {
		return err
	}

	presenter := newTerminalPresenter(cmd.OutOrStdout(), nil)
	engine := playback.NewEngine(nil, presenter, engineOptions(timeline.ModeInterval, info), logger)
	if err := engine.Load(subtitlePath); err != nil {
		return err
	}

	entry, ok := engine.Index().At(number - 1)
	if !ok {
		return fmt.Errorf("entry %d out of range (1-%d)", number, engine.Index().Len())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Entry %d: %s\n", number, describeEntry(entry))

	if _, err := engine.Seek(entry); err != nil {
		return err
	}
	return nil
}
