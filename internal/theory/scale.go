package theory

// ScaleDegree is a position within the seven-note diatonic major scale, 1-indexed so I1
// is the tonic.
type ScaleDegree int

const (
	I1 ScaleDegree = iota + 1
	I2
	I3
	I4
	I5
	I6
	I7
)

// majorScaleSemitones are the semitone offsets of each degree above the tonic.
var majorScaleSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// DegreeOf returns the scale degree of pc within the major scale of key k, or false if pc
// is not diatonic to k.
func (k Key) DegreeOf(pc PitchClass) (ScaleDegree, bool) {
	offset := pc.Sub(k)
	for i, s := range majorScaleSemitones {
		if s == offset {
			return ScaleDegree(i + 1), true
		}
	}
	return 0, false
}

// PitchClassAt is the inverse of DegreeOf: the pitch class at a given scale degree of k's
// major scale. Degree is taken modulo 7 (1-indexed), so degree 8 == degree 1 one octave up.
func (k Key) PitchClassAt(degree ScaleDegree) PitchClass {
	d := int(degree) - 1
	d %= 7
	if d < 0 {
		d += 7
	}
	return k.Add(majorScaleSemitones[d])
}

// PitchAt steps from offsetPitch by a relative diatonic interval (octave shift plus scale
// degree increment) within key k's major scale. The octave carries whenever the step
// crosses the chromatic B/C boundary, i.e. when the resulting class's ordinal is below
// the offset's. It returns false if offsetPitch's class is not diatonic to k, or if the
// resulting octave would be <= 0.
func (k Key) PitchAt(offsetPitch Pitch, rel RelativePitch) (Pitch, bool) {
	d0, ok := k.DegreeOf(offsetPitch.Class)
	if !ok {
		return Pitch{}, false
	}
	newDegreeIdx := mod(int(d0-1)+int(rel.Degree), 7)
	newClass := k.PitchClassAt(ScaleDegree(newDegreeIdx + 1))
	carry := 0
	if newClass.norm() < offsetPitch.Class.norm() {
		carry = 1
	}
	newOctave := offsetPitch.Octave + rel.OctaveShift + carry
	if newOctave <= 0 {
		return Pitch{}, false
	}
	return Pitch{Class: newClass, Octave: newOctave}, true
}

// ShiftFifths advances the key by n steps around the circle of fifths: (7*n) mod 12
// semitones.
func (k Key) ShiftFifths(n int) Key {
	return k.Add(mod(7*n, 12))
}

// DistanceFifths returns the signed number of fifths steps (in [-5,6]) such that
// k.ShiftFifths(DistanceFifths(other)) == other. 7 is its own inverse mod 12 (7*7 = 49 ==
// 1 mod 12), so the step count is the difference in semitones multiplied by 7 mod 12.
func (k Key) DistanceFifths(other Key) int {
	diff := other.Sub(k)
	steps := mod(7*diff, 12)
	if steps > 6 {
		steps -= 12
	}
	return steps
}

// degreeAdd and degreeSub do scale-degree arithmetic mod 7, treating I1..I7 as a cyclic
// group.
func degreeAdd(a, b ScaleDegree) ScaleDegree {
	return ScaleDegree(mod(int(a-1)+int(b-1), 7) + 1)
}

func degreeSub(a, b ScaleDegree) ScaleDegree {
	return ScaleDegree(mod(int(a-1)-int(b-1), 7) + 1)
}

// TransposeClassTo maps a pitch class expressed in key k to the equivalent diatonic degree
// of otherKey. pc must be diatonic to k or the mapping fails. The degree is then carried
// over to otherKey: if otherKey's tonic is itself diatonic to k, subtract that key
// difference from pc's degree; else if k's tonic is diatonic to otherKey, add the
// reciprocal key difference; else (neither key's tonic sits on the other's scale) fall
// back to pc unchanged on the fourth degree, or a semitone below pc otherwise.
func (k Key) TransposeClassTo(otherKey Key, pc PitchClass) (PitchClass, bool) {
	degree, ok := k.DegreeOf(pc)
	if !ok {
		return 0, false
	}
	if keyDiff, ok := k.DegreeOf(otherKey); ok {
		return otherKey.PitchClassAt(degreeSub(degree, keyDiff)), true
	}
	if reciprocalKeyDiff, ok := otherKey.DegreeOf(k); ok {
		return otherKey.PitchClassAt(degreeAdd(degree, reciprocalKeyDiff)), true
	}
	if degree == I4 {
		return pc, true
	}
	return pc.Add(-1), true
}

// TransposeTo maps a full pitch expressed in key k to otherKey, adjusting the octave so the
// result stays within a tritone of p: a mapped class more than six semitones above p's
// class belongs to the octave below (e.g. C transposed to B), and one more than six below
// belongs to the octave above.
func (k Key) TransposeTo(otherKey Key, p Pitch) (Pitch, bool) {
	newClass, ok := k.TransposeClassTo(otherKey, p.Class)
	if !ok {
		return Pitch{}, false
	}
	octave := p.Octave
	diff := newClass.norm() - p.Class.norm()
	switch {
	case diff > 6:
		octave--
	case diff < -6:
		octave++
	}
	return Pitch{Class: newClass, Octave: octave}, true
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
