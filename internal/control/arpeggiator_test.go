package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitobasso/gosynth/internal/theory"
)

func samePitchPhrase(duration theory.NoteDuration) Phrase {
	return NewPhrase([]theory.Note{{Duration: duration, Pitch: theory.RelativePitch{}}})
}

func TestArpeggiatorEmitsOnThenOffOnce(t *testing.T) {
	phrase := samePitchPhrase(theory.Quarter) // cycle length 0.25 measures
	arp := NewArpeggiator(phrase, theory.C)

	c4 := theory.NewPitch(theory.C, 4)
	arp.InterpretNoteOn(c4)

	// first small tick crosses the note at position 0
	cmds := arp.Next(0, 0.01)
	assert.Equal(t, []ArpCommand{{Kind: ArpNoteOn, Pitch: c4}}, cmds)

	// subsequent small ticks before the cycle repeats emit nothing
	cmds = arp.Next(0.01, 0.02)
	assert.Empty(t, cmds)

	arp.InterpretNoteOff(c4)
	cmds = arp.Next(0.02, 0.03)
	assert.Equal(t, []ArpCommand{{Kind: ArpNoteOff, Pitch: c4}}, cmds)

	cmds = arp.Next(0.03, 0.04)
	assert.Empty(t, cmds)
}

func TestArpeggiatorPendingReleaseSurvivesEmptyPhraseAdvance(t *testing.T) {
	phrase := NewPhrase([]theory.Note{}) // no notes at all
	arp := NewArpeggiator(phrase, theory.C)
	c4 := theory.NewPitch(theory.C, 4)

	arp.InterpretNoteOn(c4)
	// fake a playing pitch as if a previous phrase had set one
	arp.playing = &c4

	arp.InterpretNoteOff(c4)
	cmds := arp.Next(0, 10)
	assert.Equal(t, []ArpCommand{{Kind: ArpNoteOff, Pitch: c4}}, cmds)
}

func TestArpeggiatorIgnoresNoteOffForDifferentPitch(t *testing.T) {
	phrase := samePitchPhrase(theory.Quarter)
	arp := NewArpeggiator(phrase, theory.C)
	c4 := theory.NewPitch(theory.C, 4)
	d4 := theory.NewPitch(theory.D, 4)

	arp.InterpretNoteOn(c4)
	arp.InterpretNoteOff(d4)
	assert.NotNil(t, arp.holding)
}

func TestArpeggiatorResolvesPitchesInNonCKey(t *testing.T) {
	// one scale step up from Bb4, F major's fourth degree, crosses the chromatic
	// B/C boundary and must land an octave up
	phrase := NewPhrase([]theory.Note{{Duration: theory.Quarter, Pitch: theory.RelativePitch{Degree: 1}}})
	arp := NewArpeggiator(phrase, theory.F)
	bb4 := theory.NewPitch(theory.ASharp, 4)

	arp.InterpretNoteOn(bb4)
	cmds := arp.Next(0, 0.01)
	assert.Equal(t, []ArpCommand{{Kind: ArpNoteOn, Pitch: theory.NewPitch(theory.C, 5)}}, cmds)

	arp.InterpretNoteOff(bb4)
	cmds = arp.Next(0.01, 0.02)
	assert.Equal(t, []ArpCommand{{Kind: ArpNoteOff, Pitch: theory.NewPitch(theory.C, 5)}}, cmds)
}
