// Package arp builds ready-made arpeggiator phrases from a chord shape, a direction of
// travel, and an octave range, so a performer can pick "up an octave" or "up-down triad"
// instead of hand-authoring a Note sequence.
package arp

import (
	"github.com/vitobasso/gosynth/internal/control"
	"github.com/vitobasso/gosynth/internal/theory"
)

// Chord selects which scale degrees, relative to the held pitch, sound at each octave.
type Chord int

const (
	Octaves Chord = iota
	Triad
	Fantasy
	Tetra
	Penta
)

// degrees returns the scale degree increments (0-indexed: I1 is 0) that make up the chord.
func (c Chord) degrees() []theory.ScaleDegreeIncrement {
	switch c {
	case Octaves:
		return []theory.ScaleDegreeIncrement{0}
	case Triad:
		return []theory.ScaleDegreeIncrement{0, 2, 4}
	case Fantasy:
		return []theory.ScaleDegreeIncrement{0, 1, 2, 4}
	case Tetra:
		return []theory.ScaleDegreeIncrement{0, 2, 4, 6}
	case Penta:
		return []theory.ScaleDegreeIncrement{0, 1, 2, 4, 5}
	default:
		return []theory.ScaleDegreeIncrement{0}
	}
}

// Direction is the order the built notes travel through the octave/chord grid.
type Direction int

const (
	Up Direction = iota
	Down
	UpDown
)

// Specs configures BuildPhrase.
type Specs struct {
	Chord      Chord
	Direction  Direction
	OctaveMin  int
	OctaveMax  int
	Duration   theory.NoteDuration
}

// BuildPhrase expands specs into a control.Phrase: one Note per (octave, chord degree)
// combination, ordered by Direction.
func BuildPhrase(specs Specs) control.Phrase {
	return control.NewPhrase(notes(specs))
}

func notes(specs Specs) []theory.Note {
	rising := notesRising(specs)
	switch specs.Direction {
	case Up:
		return rising
	case Down:
		return reversed(rising)
	case UpDown:
		return append(append([]theory.Note{}, rising...), upDownTail(rising)...)
	default:
		return rising
	}
}

// upDownTail is the descending leg of an up-down arpeggio: the rising sequence with both
// endpoints dropped, in reverse order, so the top and bottom notes aren't doubled.
func upDownTail(rising []theory.Note) []theory.Note {
	if len(rising) <= 1 {
		return nil
	}
	middle := rising[1:]
	rev := reversed(middle)
	if len(rev) <= 1 {
		return nil
	}
	return rev[1:]
}

func notesRising(specs Specs) []theory.Note {
	degrees := specs.Chord.degrees()
	var out []theory.Note
	for octave := specs.OctaveMin; octave <= specs.OctaveMax; octave++ {
		for _, d := range degrees {
			out = append(out, theory.Note{
				Duration: specs.Duration,
				Pitch:    theory.RelativePitch{OctaveShift: octave, Degree: d},
			})
		}
	}
	return out
}

func reversed(notes []theory.Note) []theory.Note {
	out := make([]theory.Note, len(notes))
	for i, n := range notes {
		out[len(notes)-1-i] = n
	}
	return out
}
