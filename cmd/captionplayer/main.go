package main

import (
	"os"

	"github.com/egoodwinx/VideoPlayerWithLiveTranscriptDisplay/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
