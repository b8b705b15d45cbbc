package theory

import (
	"fmt"
	"math"
)

// Pitch is a specific sounding note: a class plus an octave, MIDI convention (C4 = 60).
type Pitch struct {
	Class  PitchClass
	Octave int
}

// NewPitch builds a Pitch from a class and octave.
func NewPitch(class PitchClass, octave int) Pitch {
	return Pitch{Class: class, Octave: octave}
}

// Index returns the MIDI-convention note index: (octave+1)*12 + class. C4 == 60, A4 == 69.
func (p Pitch) Index() int {
	return (p.Octave+1)*12 + p.Class.norm()
}

// PitchFromIndex is the inverse of Index.
func PitchFromIndex(index int) Pitch {
	octave := index/12 - 1
	class := index % 12
	if class < 0 {
		class += 12
		octave--
	}
	return Pitch{Class: PitchClass(class), Octave: octave}
}

// Freq returns the equal-tempered frequency in Hz: f = 440 * 2^((index-69)/12).
func (p Pitch) Freq() float64 {
	return 440.0 * math.Pow(2, float64(p.Index()-69)/12.0)
}

// String renders a pitch the conventional way, e.g. "C#4".
func (p Pitch) String() string {
	return fmt.Sprintf("%s%d", p.Class, p.Octave)
}

// RelativePitch is an interval expressed relative to some reference pitch, in diatonic
// terms: an octave shift plus a scale-degree increment, used by Note and by the
// arpeggiator/key machinery (Key.PitchAt).
type RelativePitch struct {
	OctaveShift int
	Degree      ScaleDegreeIncrement
}

// ScaleDegreeIncrement is a signed number of diatonic scale steps (not semitones).
type ScaleDegreeIncrement int
