package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitobasso/gosynth/internal/theory"
)

func TestTransposeIdentityWhenKeysMatch(t *testing.T) {
	tr := NewTransposer(theory.C)
	p := theory.NewPitch(theory.E, 3)
	got, ok := tr.Transpose(p)
	assert.True(t, ok)
	assert.Equal(t, p, got)
}

func TestTransposeKeyKeepsCommonTones(t *testing.T) {
	// Rotating C major one fifth to G major: C, a common tone of both scales, keeps
	// sounding as C, while F snaps to G major's F#.
	tr := NewTransposer(theory.C)
	tr.TransposeKey(1)
	assert.Equal(t, theory.G, tr.TransposedKey)

	got, ok := tr.Transpose(theory.NewPitch(theory.C, 4))
	assert.True(t, ok)
	assert.Equal(t, theory.NewPitch(theory.C, 4), got)

	got, ok = tr.Transpose(theory.NewPitch(theory.F, 4))
	assert.True(t, ok)
	assert.Equal(t, theory.NewPitch(theory.FSharp, 4), got)
}

func TestShiftKeyboardMovesHandPositionNotScale(t *testing.T) {
	// ShiftKeyboard(+2) rotates the scale to D while compensating the pitch shift by
	// -2, so the keyboard's diatonic set stays on the white keys but the hand position
	// maps one scale step lower: physical D now sounds C, and physical C (the tonic,
	// snapped to D major's leading tone C# before the shift) sounds B.
	tr := NewTransposer(theory.C)
	tr.ShiftKeyboard(2)
	assert.Equal(t, theory.D, tr.TransposedKey)
	assert.Equal(t, -2, tr.PitchShift)

	got, ok := tr.Transpose(theory.NewPitch(theory.D, 4))
	assert.True(t, ok)
	assert.Equal(t, theory.NewPitch(theory.C, 4), got)

	got, ok = tr.Transpose(theory.NewPitch(theory.C, 4))
	assert.True(t, ok)
	assert.Equal(t, theory.NewPitch(theory.B, 3), got)
}

func TestShiftPitchAddsSemitones(t *testing.T) {
	tr := NewTransposer(theory.C)
	tr.ShiftPitch(2)
	got, ok := tr.Transpose(theory.NewPitch(theory.C, 4))
	assert.True(t, ok)
	assert.Equal(t, theory.NewPitch(theory.D, 4), got)
}

func TestShiftPitchStacksOnShiftKeyboard(t *testing.T) {
	// ShiftPitch(+2) cancels ShiftKeyboard(+2)'s compensation, leaving only the key
	// rotation: C4 sounds as its snapped class in D major, C#4.
	tr := NewTransposer(theory.C)
	tr.ShiftKeyboard(2)
	tr.ShiftPitch(2)
	got, ok := tr.Transpose(theory.NewPitch(theory.C, 4))
	assert.True(t, ok)
	assert.Equal(t, theory.NewPitch(theory.CSharp, 4), got)
}

func TestTransposeOutOfScalePitchFails(t *testing.T) {
	tr := NewTransposer(theory.C)
	_, ok := tr.Transpose(theory.NewPitch(theory.CSharp, 4))
	assert.False(t, ok)
}
