package control

import (
	"sort"

	"github.com/vitobasso/gosynth/internal/theory"
)

// CyclicRangeMap is an ordered map from a non-negative key to one or more values, plus a
// cycle length. Range queries treat the key space as repeating with period End, so a
// half-open query spanning multiple cycles returns the contained values once per cycle
// crossed, in key order.
//
// Keys must be finite and non-negative; NaN is not supported.
type CyclicRangeMap[T any] struct {
	keys []float64
	vals [][]T
	End  float64
}

// NewCyclicRangeMap builds an empty map with the given cycle length.
func NewCyclicRangeMap[T any](end float64) *CyclicRangeMap[T] {
	return &CyclicRangeMap[T]{End: end}
}

// Insert adds value at key, appending to any existing values already at that exact key.
func (m *CyclicRangeMap[T]) Insert(key float64, value T) {
	i := sort.SearchFloat64s(m.keys, key)
	if i < len(m.keys) && m.keys[i] == key {
		m.vals[i] = append(m.vals[i], value)
		return
	}
	m.keys = append(m.keys, 0)
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = key

	m.vals = append(m.vals, nil)
	copy(m.vals[i+1:], m.vals[i:])
	m.vals[i] = []T{value}
}

func floorF(v float64) float64 {
	i := float64(int64(v))
	if v < 0 && i != v {
		i--
	}
	return i
}

// Range returns the values whose key falls in the half-open interval [from, to), cycled
// through the map as many times as the span requires, in order. It returns nil when
// to < from. Implemented by scanning the (small, finite) set of cycle indices the span
// touches and testing each key's absolute position directly — equivalent to, but simpler
// than, special-casing the single-cycle/crossing-boundary/multi-cycle cases by hand.
func (m *CyclicRangeMap[T]) Range(from, to float64) []T {
	if to < from || m.End <= 0 || len(m.keys) == 0 {
		return nil
	}
	kFrom := int64(floorF(from / m.End))
	kTo := int64(floorF(to / m.End))
	var out []T
	for k := kFrom; k <= kTo; k++ {
		base := float64(k) * m.End
		for i, key := range m.keys {
			abs := base + key
			if abs >= from && abs < to {
				out = append(out, m.vals[i]...)
			}
		}
	}
	return out
}

// Phrase is a cyclic note schedule: a CyclicRangeMap from measure position to one or more
// Notes, with the cycle length equal to the phrase's total duration in measures.
type Phrase struct {
	m *CyclicRangeMap[theory.Note]
}

// NewPhrase builds a Phrase from a sequence of notes, assigning each note its cumulative
// start offset in measures (duration/16) and setting the cycle length to the total
// duration in measures.
func NewPhrase(notes []theory.Note) Phrase {
	var total float64
	for _, n := range notes {
		total += n.Duration.MeasureFraction()
	}
	m := NewCyclicRangeMap[theory.Note](total)
	var pos float64
	for _, n := range notes {
		m.Insert(pos, n)
		pos += n.Duration.MeasureFraction()
	}
	return Phrase{m: m}
}

// Range returns the notes whose start position falls in [from, to), cycled through the
// phrase as many times as required.
func (p Phrase) Range(from, to float64) []theory.Note {
	if p.m == nil {
		return nil
	}
	return p.m.Range(from, to)
}

// Measures returns the phrase's total length in measures (the cycle length).
func (p Phrase) Measures() float64 {
	if p.m == nil {
		return 0
	}
	return p.m.End
}
