package control

import "github.com/vitobasso/gosynth/internal/theory"

// Transposer holds the tonal state shared by everything downstream of input: the key the
// incoming pitches are expressed in, the key they're mapped to, and an extra semitone
// shift layered on top.
type Transposer struct {
	InputKey      theory.Key
	TransposedKey theory.Key
	PitchShift    int
}

// NewTransposer starts with input and transposed key both at key, no extra shift.
func NewTransposer(key theory.Key) *Transposer {
	return &Transposer{InputKey: key, TransposedKey: key}
}

// TransposeKey advances the transposed key by n steps around the circle of fifths.
func (t *Transposer) TransposeKey(n int) {
	t.TransposedKey = t.TransposedKey.ShiftFifths(n)
}

// ShiftPitch adds n semitones to the extra pitch shift.
func (t *Transposer) ShiftPitch(n int) {
	t.PitchShift += n
}

// ShiftKeyboard rotates the transposed key by n semitones while subtracting the same from
// the pitch shift, so the felt pitch of already-played notes stays put while the scale
// rotates under the performer's fingers.
func (t *Transposer) ShiftKeyboard(n int) {
	t.TransposedKey = t.TransposedKey.Add(n)
	t.PitchShift -= n
}

// Transpose maps pitch from InputKey to TransposedKey and applies PitchShift. It returns
// false if the key-level mapping fails (out-of-scale pitch); callers skip the note
// rather than fail.
func (t *Transposer) Transpose(pitch theory.Pitch) (theory.Pitch, bool) {
	mapped, ok := t.InputKey.TransposeTo(t.TransposedKey, pitch)
	if !ok {
		return theory.Pitch{}, false
	}
	return theory.PitchFromIndex(mapped.Index() + t.PitchShift), true
}
