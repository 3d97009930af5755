package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/media"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/playback"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [subtitle_file]",
	Short: "Simulate playback and print caption changes",
	Long: `Run the caption engine against a wall clock, printing each caption as it
becomes active and a marker when the screen clears.

Playback ends at the end of the media given with --media, otherwise after
the last caption. Press Ctrl+C to stop early.

Examples:
  captionplayer play movie.srt
  captionplayer play movie.srt --media movie.mp4 --start 00:10:00,000
  captionplayer play movie.srt --jump 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().
		String("media", "", "Media file used to bound playback and seeks")
	playCmd.Flags().
		StringP("start", "s", "", "Start position (e.g., 00:01:00,000, 90s)")
	playCmd.Flags().
		IntP("jump", "j", 0, "Start at the caption with this list number (see inspect)")
	playCmd.Flags().
		StringP("mode", "m", "", "Lookup mode (interval, bucket); defaults to the config value")
}

func runPlay(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]

	mediaPath, _ := cmd.Flags().GetString("media")
	startStr, _ := cmd.Flags().GetString("start")
	jump, _ := cmd.Flags().GetInt("jump")

	mode, err := lookupMode(cmd)
	if err != nil {
		return err
	}

	var start time.Duration
	if startStr != "" {
		start, err = parsePosition(startStr)
		if err != nil {
			return err
		}
	}
	if jump < 0 {
		return fmt.Errorf("jump must be positive, got %d", jump)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info, err := probeMedia(ctx, mediaPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	clock := playback.NewWallClock(start)
	presenter := newTerminalPresenter(out, clock)
	engine := playback.NewEngine(clock, presenter, engineOptions(mode, info), logger)

	if err := engine.Load(subtitlePath); err != nil {
		return err
	}

	if jump > 0 {
		if _, err := engine.SeekTo(jump - 1); err != nil {
			return err
		}
	}

	var end time.Duration
	if info != nil {
		end = info.Duration
	}
	if end <= 0 {
		end = trackEnd(engine.Entries())
	}
	remaining := end - clock.Position()
	if remaining <= 0 {
		return fmt.Errorf(
			"start position %s is past the end of playback %s",
			subtitle.FormatTimestamp(clock.Position()),
			subtitle.FormatTimestamp(end),
		)
	}

	logger.Infow("Starting playback",
		"subtitles", subtitlePath,
		"media", mediaPath,
		"start", subtitle.FormatTimestamp(clock.Position()),
		"end", subtitle.FormatTimestamp(end),
		"mode", mode.String(),
	)

	runCtx, cancel := context.WithTimeout(ctx, remaining)
	defer cancel()

	err = engine.Run(runCtx)
	presenter.clearProgress()
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(out, "Playback finished")
		return nil
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "Playback stopped")
		return nil
	default:
		return err
	}
}

// probeMedia reads the media at mediaPath, or returns nil when none is given.
func probeMedia(ctx context.Context, mediaPath string) (*media.Info, error) {
	if mediaPath == "" {
		return nil, nil
	}
	if !media.IsMediaFile(mediaPath) {
		return nil, fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	info, err := media.NewProber(cfg.ProbeTimeout()).Probe(ctx, mediaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to probe media: %w", err)
	}

	logger.Infow("Media probed",
		"media", mediaPath,
		"duration", info.Duration.String(),
		"video", info.HasVideo,
		"audio", info.HasAudio,
	)
	return info, nil
}
