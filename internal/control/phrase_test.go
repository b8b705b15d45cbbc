package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitobasso/gosynth/internal/theory"
)

func threeNotePhrase() Phrase {
	return NewPhrase([]theory.Note{
		{Duration: theory.Half, Pitch: theory.RelativePitch{Degree: 0}},
		{Duration: theory.Quarter, Pitch: theory.RelativePitch{Degree: 1}},
		{Duration: theory.Quarter, Pitch: theory.RelativePitch{Degree: 2}},
	})
}

func degrees(notes []theory.Note) []theory.ScaleDegreeIncrement {
	out := make([]theory.ScaleDegreeIncrement, len(notes))
	for i, n := range notes {
		out[i] = n.Pitch.Degree
	}
	return out
}

func TestPhraseCycleLengthIsOneMeasure(t *testing.T) {
	p := threeNotePhrase()
	assert.InDelta(t, 1.0, p.Measures(), 1e-9)
}

func TestPhraseWholeRange(t *testing.T) {
	p := threeNotePhrase()
	got := degrees(p.Range(0, 1.0))
	assert.Equal(t, []theory.ScaleDegreeIncrement{0, 1, 2}, got)
}

func TestPhraseBeginning(t *testing.T) {
	p := threeNotePhrase()
	got := degrees(p.Range(0, 0.5))
	assert.Equal(t, []theory.ScaleDegreeIncrement{0}, got)
}

func TestPhraseMiddle(t *testing.T) {
	p := threeNotePhrase()
	got := degrees(p.Range(0.5, 0.75))
	assert.Equal(t, []theory.ScaleDegreeIncrement{1}, got)
}

func TestPhraseEnd(t *testing.T) {
	p := threeNotePhrase()
	got := degrees(p.Range(0.75, 1.0))
	assert.Equal(t, []theory.ScaleDegreeIncrement{2}, got)
}

func TestPhraseCrossingCycleBoundary(t *testing.T) {
	p := threeNotePhrase()
	got := degrees(p.Range(0.9, 1.1))
	assert.Equal(t, []theory.ScaleDegreeIncrement{0}, got)
}

func TestPhraseSecondCycleMatchesFirst(t *testing.T) {
	p := threeNotePhrase()
	first := degrees(p.Range(0, 1.0))
	second := degrees(p.Range(1.0, 2.0))
	assert.Equal(t, first, second)
}

func TestPhraseMultipleCycles(t *testing.T) {
	p := threeNotePhrase()
	got := degrees(p.Range(0, 3.0))
	assert.Equal(t, []theory.ScaleDegreeIncrement{0, 1, 2, 0, 1, 2, 0, 1, 2}, got)
}

func TestPhraseRangeFromGreaterThanToIsEmpty(t *testing.T) {
	p := threeNotePhrase()
	got := p.Range(0.6, 0.5)
	assert.Empty(t, got)
}

func TestPhraseRepeatedRangesCoverEachNoteExactlyOnce(t *testing.T) {
	p := threeNotePhrase()
	var all []theory.ScaleDegreeIncrement
	step := 0.3
	from := 0.0
	for i := 0; i < 10; i++ {
		to := from + step
		all = append(all, degrees(p.Range(from, to))...)
		from = to
	}
	// ten contiguous half-open 0.3-measure queries cover [0, 3) with no gap or overlap,
	// so each of the 3 cycles' 3 notes is returned exactly once.
	assert.Len(t, all, 9)
}

func TestPhraseRangeSpanningPartialCycles(t *testing.T) {
	p := threeNotePhrase()
	got := degrees(p.Range(0.9, 2.1))
	assert.Equal(t, []theory.ScaleDegreeIncrement{0, 1, 2, 0}, got)
}
