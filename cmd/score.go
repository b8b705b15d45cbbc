package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitobasso/gosynth/internal/audio"
	"github.com/vitobasso/gosynth/internal/score"
)

var (
	scoreSampleRate int
	scoreMaxVoices  int
)

var scoreCmd = &cobra.Command{
	Use:   "score [file]",
	Short: "Play a standard MIDI file through the synthesis engine",
	Long: `Decode a standard MIDI file into sections and per-channel voice tracks and play it
back against wall-clock time, one synth instance per channel, all sharing the same
instrument patch.

Exits 0 once every event has been emitted and a short release tail after the score's
last tick has played, or non-zero if the file can't be read or audio can't be
initialized.`,
	Args: cobra.ExactArgs(1),
	Run:  runScore,
}

func init() {
	scoreCmd.Flags().IntVar(&scoreSampleRate, "sample-rate", 48000, "host audio sample rate")
	scoreCmd.Flags().IntVar(&scoreMaxVoices, "max-voices", 8, "maximum simultaneous voices per channel")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) {
	sheet, err := score.DecodeMIDI(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to decode %q: %v\n", args[0], err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "playing %q: %d measures, %d voice(s)\n", sheet.Title, sheet.CountMeasures(), len(sheet.Voices))

	player := score.NewPlayer(sheet, defaultSpecs(scoreMaxVoices), scoreSampleRate, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if err := audio.PlayPump(ctx, player, scoreSampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "playback error: %v\n", err)
		os.Exit(1)
	}
}
