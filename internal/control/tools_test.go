package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vitobasso/gosynth/internal/synth"
	"github.com/vitobasso/gosynth/internal/theory"
)

func sineSpecs() synth.InstrumentSpecs {
	return synth.InstrumentSpecs{
		MaxVoices:  8,
		Oscillator: synth.OscillatorSpecs{Kind: synth.Sine},
		Filter:     synth.FilterSpecs{Type: synth.LPF, Cutoff: synth.MaxCutoff, QFactor: 1},
		ADSR:       synth.NewADSR(0.001, 0.01, 1.0, 0.01),
		Volume:     1,
	}
}

func newTestTools() *Tools {
	return NewTools(sineSpecs(), 48000, theory.C, 2, time.Unix(0, 0))
}

func TestDirectNoteOnProducesSound(t *testing.T) {
	tools := newTestTools()
	now := time.Unix(0, 0)
	tools.Enqueue(NoteOnCmd{Pitch: theory.NewPitch(theory.C, 4), Velocity: 1, Id: Id{Pitch: theory.NewPitch(theory.C, 4)}})

	var maxAbs float64
	for i := 0; i < 2000; i++ {
		now = now.Add(time.Second / 48000)
		s := tools.Tick(now)
		if s < 0 {
			s = -s
		}
		if s > maxAbs {
			maxAbs = s
		}
	}
	assert.Greater(t, maxAbs, 0.01)
}

func TestCommandQueueDrainsOnePerTick(t *testing.T) {
	q := newCommandQueue()
	q.Push(NoteOnCmd{})
	q.Push(NoteOffCmd{})
	_, ok := q.TryPop()
	assert.True(t, ok)
	_, ok = q.TryPop()
	assert.True(t, ok)
	_, ok = q.TryPop()
	assert.False(t, ok)
}

func TestArpeggiatorPatchActivatesAndDeactivates(t *testing.T) {
	tools := newTestTools()
	phrase := samePitchPhrase(theory.Quarter)
	tools.Enqueue(SetPatchCmd{Patch: ArpeggiatorPatch{Specs: &ArpSpecs{Phrase: phrase, Key: theory.C}}})
	tools.Tick(time.Unix(0, 0))
	assert.NotNil(t, tools.arp)

	tools.Enqueue(SetPatchCmd{Patch: ArpeggiatorPatch{Specs: nil}})
	tools.Tick(time.Unix(0, 0))
	assert.Nil(t, tools.arp)
}

func TestNoteOnRoutesToArpeggiatorWhenActive(t *testing.T) {
	tools := newTestTools()
	phrase := samePitchPhrase(theory.Quarter)
	tools.arp = NewArpeggiator(phrase, theory.C)

	c4 := theory.NewPitch(theory.C, 4)
	tools.Enqueue(NoteOnCmd{Pitch: c4, Velocity: 1, Id: Id{Pitch: c4}})
	tools.Tick(time.Unix(0, 0))

	assert.NotNil(t, tools.arp.holding)
	assert.Equal(t, c4, *tools.arp.holding)
	// the direct synth never saw a hold: no voice from this NoteOn until the arp ticks.
	assert.Equal(t, 0, tools.synth.Instrument().VoiceCount())
}

func TestTapTempoSetsPulsePeriod(t *testing.T) {
	tools := newTestTools()
	base := time.Unix(100, 0)
	tools.Enqueue(TapTempoCmd{})
	tools.Tick(base)
	tools.Enqueue(TapTempoCmd{})
	tools.Tick(base.Add(500 * time.Millisecond))

	expected := (500 * time.Millisecond) / PulsesPerBeat
	assert.Equal(t, expected, tools.pulse.Period())
}

func TestLoopRecordsDryOutputAndPlaysItBack(t *testing.T) {
	tools := newTestTools()
	now := time.Unix(0, 0)
	c4 := theory.NewPitch(theory.C, 4)
	tools.Enqueue(NoteOnCmd{Pitch: c4, Velocity: 1, Id: Id{Pitch: c4}})
	tools.Enqueue(LoopToggleRecordingCmd{Index: 0})

	var recorded []float64
	for i := 0; i < 100; i++ {
		now = now.Add(time.Second / 48000)
		recorded = append(recorded, tools.Tick(now))
	}
	tools.Enqueue(LoopToggleRecordingCmd{Index: 0})
	tools.Tick(now)

	assert.NotEmpty(t, tools.loops.Loop(0).playBuf)
}
