package cli

import (
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/config"
	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "captionplayer",
	Short: "Caption track engine for SubRip subtitle files",
	Long: `Captionplayer parses SubRip (.srt) caption files, merges captions whose
time ranges touch, and resolves which caption is active at any playback
position.

It can list a track, look up positions, simulate playback while printing
caption changes, resolve seek targets, and export the merged track.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, resolvedPath, exists, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = logging.New(logging.Options{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			Verbose: verbose,
		})
		if err != nil {
			return err
		}
		logger.Debugw("Configuration loaded",
			"path", resolvedPath,
			"exists", exists,
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file path (default ~/.config/captionplayer/config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
