package cli

import (
	"fmt"
	"path/filepath"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/subtitle"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [subtitle_file]",
	Short: "Write the merged caption track to a file",
	Long: `Parse a SubRip file and write the merged captions in SRT, VTT, or ASS
format. Without --output the track is written to stdout.

Examples:
  captionplayer export movie.srt -o merged.srt
  captionplayer export movie.srt -o movie.vtt
  captionplayer export movie.srt --format ass`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().
		StringP("format", "f", "", "Output subtitle format (srt, vtt, ass); defaults to the output extension")
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	var format subtitle.Format
	switch {
	case formatStr != "":
		parsed, err := subtitle.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		format = parsed
	case outputPath != "":
		format = subtitle.GetFormatFromExtension(outputPath)
	default:
		format = subtitle.FormatSRT
	}

	entries, err := subtitle.NewParser(logger).ParseFile(path)
	if err != nil {
		return err
	}

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return fmt.Errorf("failed to create subtitle writer: %w", err)
	}

	if outputPath == "" {
		return writer.Encode(cmd.OutOrStdout(), entries)
	}

	if err := writer.Write(entries, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	logger.Infow("Exported caption track",
		"input", path,
		"output", outputPath,
		"format", string(format),
		"entries", len(entries),
	)

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Captions exported successfully: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Entries: %d\n", len(entries))
	return nil
}
