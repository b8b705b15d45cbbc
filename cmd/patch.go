package cmd

import (
	"github.com/vitobasso/gosynth/internal/synth"
)

// defaultSpecs is the instrument patch every subcommand starts with: a saw lead through
// a gently resonant low-pass filter, no LFO, modest polyphony. There is no preset file
// format; this is the one concrete patch the CLI needs to be runnable.
func defaultSpecs(maxVoices int) synth.InstrumentSpecs {
	return synth.InstrumentSpecs{
		MaxVoices: maxVoices,
		Oscillator: synth.OscillatorSpecs{
			Kind: synth.Saw,
		},
		Filter: synth.FilterSpecs{
			Type:    synth.LPF,
			Cutoff:  2000,
			QFactor: 2,
		},
		ADSR:       synth.NewADSR(0.01, 0.15, 0.7, 0.3),
		Volume:     0.6,
		ModXTarget: synth.FilterCutoff,
		ModYTarget: synth.FilterQFactor,
	}
}
