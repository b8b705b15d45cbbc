// Package control implements the patch-level orchestration layer sitting above the DSP
// core in internal/synth: the Synth façade, pulse/tap-tempo clocks, the arpeggiator and
// its phrase schedule, the transposer, the loop manager, and the tools controller that
// wires all of them into the sample pump.
package control

import (
	"github.com/vitobasso/gosynth/internal/synth"
	"github.com/vitobasso/gosynth/internal/theory"
)

// Id identifies one logical note-hold. Discriminator lets independent sources (keyboard
// row, arpeggiator, overlapping octaves) hold the same pitch without cancelling each
// other; it is deliberately opaque to everything below the top-level input mapper.
type Id struct {
	Pitch         theory.Pitch
	Discriminator any
}

// Synth is the command-level façade over a synth.Instrument: it translates NoteOn/NoteOff
// by Id into Instrument hold/release calls, remembering which Id is holding which pitch so
// that NoteOn is idempotent and NoteOff need not repeat the pitch.
type Synth struct {
	inst    *synth.Instrument
	holding map[Id]theory.Pitch
}

// NewSynth builds a Synth façade around a freshly constructed Instrument.
func NewSynth(specs synth.InstrumentSpecs, sampleRate float64) *Synth {
	return &Synth{
		inst:    synth.NewInstrument(specs, sampleRate),
		holding: make(map[Id]theory.Pitch),
	}
}

// NoteOn holds pitch under id, unless id is already holding (repeat NoteOns with the same
// id are idempotent).
func (s *Synth) NoteOn(pitch theory.Pitch, velocity float64, id Id) {
	if _, ok := s.holding[id]; ok {
		return
	}
	s.holding[id] = pitch
	s.inst.Hold(pitch, velocity)
}

// NoteOff releases whatever pitch id was holding, if any.
func (s *Synth) NoteOff(id Id) {
	pitch, ok := s.holding[id]
	if !ok {
		return
	}
	delete(s.holding, id)
	s.inst.Release(pitch)
}

// ReleaseAll releases every held voice directly, bypassing the Id bookkeeping — used for a
// MIDI "all notes off" CC or a panic button rather than the ordinary per-id NoteOff path.
func (s *Synth) ReleaseAll() {
	s.holding = make(map[Id]theory.Pitch)
	s.inst.ReleaseAll()
}

// ModXY forwards to the instrument's X/Y-assigned ModParams.
func (s *Synth) ModXY(x, y float64) {
	s.inst.SetXYParams(x, y)
}

// SetPatch replaces the instrument's specs, preserving its voices and filter history.
func (s *Synth) SetPatch(specs synth.InstrumentSpecs) {
	s.inst.SetSpecs(specs)
}

// NextSample pulls one sample from the underlying instrument.
func (s *Synth) NextSample() float64 {
	return s.inst.NextSample()
}

// Instrument exposes the underlying instrument for components (the tools controller) that
// need to read voice counts or other instrument-level state directly.
func (s *Synth) Instrument() *synth.Instrument { return s.inst }
