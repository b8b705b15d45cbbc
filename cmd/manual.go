package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vitobasso/gosynth/internal/audio"
	"github.com/vitobasso/gosynth/internal/theory"
	"github.com/vitobasso/gosynth/internal/tui"
)

var (
	manualSampleRate int
	manualMaxVoices  int
	manualLoopSlots  int
)

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Play the synth live from the computer keyboard",
	Long: `Start an interactive TUI that maps the computer keyboard to notes and plays them
through the synthesis engine in real time, with a tap-tempo arpeggiator and a two-slot
loop recorder.`,
	Run: runManual,
}

func init() {
	manualCmd.Flags().IntVar(&manualSampleRate, "sample-rate", 48000, "host audio sample rate")
	manualCmd.Flags().IntVar(&manualMaxVoices, "max-voices", 8, "maximum simultaneous voices")
	manualCmd.Flags().IntVar(&manualLoopSlots, "loop-slots", 2, "number of loop recorder slots")
	rootCmd.AddCommand(manualCmd)
}

func runManual(cmd *cobra.Command, args []string) {
	key := theory.C
	synthEngine, err := audio.NewSynth(manualSampleRate, defaultSpecs(manualMaxVoices), key, manualLoopSlots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	defer synthEngine.Close()

	p := tea.NewProgram(tui.NewModel(synthEngine, key), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}
}
