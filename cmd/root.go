package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gosynth",
	Short: "A polyphonic software synthesizer with an arpeggiator and score sequencer",
	Long: `gosynth is a real-time polyphonic synthesizer: per-voice oscillator and ADSR
envelope feeding one shared biquad filter with LFO modulation, an arpeggiator driven by a
tap-tempo pulse clock,
a loop recorder, and a key/transposition layer shared by everything upstream of the synth.

It runs in three modes: manual (a terminal keyboard played live), virtual (a virtual MIDI
input port feeding the same engine), and score (a standard MIDI file driving multiple synth
instances in sync).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
