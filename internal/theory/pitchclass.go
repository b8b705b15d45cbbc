// Package theory implements pitch-class, pitch and diatonic-key arithmetic.
package theory

// PitchClass is one of the twelve equal-tempered semitones, C through B.
type PitchClass int

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

var pitchClassNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (pc PitchClass) String() string {
	return pitchClassNames[pc.norm()]
}

func (pc PitchClass) norm() int {
	n := int(pc) % 12
	if n < 0 {
		n += 12
	}
	return n
}

// Add returns the pitch class n semitones above (or, for negative n, below) pc, wrapping
// modulo 12. The result is always the canonical representative in [C, B].
func (pc PitchClass) Add(semitones int) PitchClass {
	return PitchClass(mod(pc.norm()+semitones, 12))
}

// Sub returns the semitone distance from other up to pc: a plain subtraction mod 12
// normalized to [0,12), not the shortest signed path (ShiftFifths and friends normalize
// further themselves).
func (pc PitchClass) Sub(other PitchClass) int {
	d := pc.norm() - other.norm()
	if d < 0 {
		d += 12
	}
	return d
}

// Key is a tonal center; a synonym for PitchClass used wherever a component treats the
// class as "the key" rather than "a note".
type Key = PitchClass
