package synth

import (
	"math"

	"github.com/vitobasso/gosynth/internal/modparam"
)

// MaxCutoff bounds the filter's cutoff ModParam: 440 * 32 Hz.
const MaxCutoff = 440.0 * 32.0

// FilterType selects which EQ-Cookbook biquad variant Filter.Process computes.
type FilterType int

const (
	LPF FilterType = iota
	HPF
	BPF
	Notch
)

// FilterState is the two-sample input/output history, carried across a filter-type swap
// so patch changes don't click.
type FilterState struct {
	X1, X2 float64
	Y1, Y2 float64
}

// FilterSpecs describes a Filter to be built.
type FilterSpecs struct {
	Type       FilterType
	Cutoff     float64 // initial base, in Hz, clamped into [0, MaxCutoff]
	QFactor    float64 // initial base, clamped into [1, 50]
	SampleRate float64
}

// FilterView is the read-only snapshot exposed for UI/monitoring: effective cutoff (Hz)
// and Q plus the current type.
type FilterView struct {
	Cutoff  float64
	QFactor float64
	Type    FilterType
}

// Filter is a biquad filter with modulatable cutoff and Q, of one of four EQ-Cookbook
// variants (LPF/HPF/BPF/Notch).
type Filter struct {
	sampleRate float64
	cutoff     *modparam.Param
	qFactor    *modparam.Param
	typ        FilterType
	state      FilterState
}

// NewFilter builds a Filter from specs. SampleRate must be > 0, enforced at
// construction.
func NewFilter(specs FilterSpecs) *Filter {
	if specs.SampleRate <= 0 {
		panic("synth: filter sample rate must be > 0")
	}
	cutoff := modparam.New(0, MaxCutoff)
	cutoff.SetBase(specs.Cutoff / MaxCutoff)
	q := modparam.New(1, 50)
	q.SetBase((specs.QFactor - 1) / 49)
	return &Filter{
		sampleRate: specs.SampleRate,
		cutoff:     cutoff,
		qFactor:    q,
		typ:        specs.Type,
	}
}

// ModParam exposes Cutoff and QFactor as addressable targets.
func (f *Filter) ModParam(target ModTarget) *modparam.Param {
	switch target {
	case FilterCutoff:
		return f.cutoff
	case FilterQFactor:
		return f.qFactor
	default:
		return nil
	}
}

// Process runs one input sample through the biquad and updates history.
func (f *Filter) Process(x float64) float64 {
	cutoff := f.cutoff.Calculate()
	q := f.qFactor.Calculate()
	w0 := 2 * math.Pi * cutoff / f.sampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)

	var b0, b1, b2, a0, a1, a2 float64
	switch f.typ {
	case LPF:
		b0 = (1 - cosw0) / 2
		b1 = 1 - cosw0
		b2 = (1 - cosw0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosw0
		a2 = 1 - alpha
	case HPF:
		b0 = (1 + cosw0) / 2
		b1 = -(1 + cosw0)
		b2 = (1 + cosw0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosw0
		a2 = 1 - alpha
	case BPF:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosw0
		a2 = 1 - alpha
	case Notch:
		b0 = 1
		b1 = -2 * cosw0
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cosw0
		a2 = 1 - alpha
	}

	s := f.state
	y := (b0*x + b1*s.X1 + b2*s.X2 - a1*s.Y1 - a2*s.Y2) / a0

	f.state.X2 = s.X1
	f.state.X1 = x
	f.state.Y2 = s.Y1
	f.state.Y1 = y
	return y
}

// View returns a read-only snapshot for monitoring.
func (f *Filter) View() FilterView {
	return FilterView{Cutoff: f.cutoff.Calculate(), QFactor: f.qFactor.Calculate(), Type: f.typ}
}

// State returns the current input/output history, for preservation across a SetState.
func (f *Filter) State() FilterState { return f.state }

// SetState restores a preserved history, e.g. when a patch change swaps the filter type
// mid-voice so the transition doesn't click.
func (f *Filter) SetState(s FilterState) { f.state = s }

// SetType changes the biquad variant without touching the preserved history.
func (f *Filter) SetType(t FilterType) { f.typ = t }
