package synth

import (
	"math"
	"math/rand"

	"github.com/vitobasso/gosynth/internal/modparam"
)

// Oscillator is a polymorphic sample generator. clock is seconds since voice start; freq
// is the target frequency in Hz; phase is a constant offset in seconds (e.g. LFO phase).
type Oscillator interface {
	NextSample(clock, freq, phase float64) float64
	// ModParam returns the addressable parameter for target, or nil if this oscillator
	// doesn't host one.
	ModParam(target ModTarget) *modparam.Param
}

// OscKind selects which Oscillator variant Build constructs.
type OscKind int

const (
	Sine OscKind = iota
	Square
	Saw
	Pulse
	Mix
)

// OscillatorSpecs fully describes an oscillator to be built by Build.
type OscillatorSpecs struct {
	Kind OscKind

	// Pulse only.
	PulseDuty float64

	// Mix only: MixVoices sub-oscillators of MixSubKind, each detuned by an offset drawn
	// from a PRNG seeded deterministically by MixSeed, uniform in [-MixDetuneAmount,
	// +MixDetuneAmount] Hz.
	MixVoices       int
	MixDetuneAmount float64
	MixSubKind      OscKind
	MixSeed         int64
}

// Build constructs the Oscillator variant named by specs.Kind.
func Build(specs OscillatorSpecs) Oscillator {
	switch specs.Kind {
	case Sine:
		return &sineOsc{}
	case Square:
		return &squareOsc{}
	case Saw:
		return &sawOsc{}
	case Pulse:
		duty := modparam.New(0, 1)
		duty.SetBase(specs.PulseDuty)
		return &pulseOsc{duty: duty}
	case Mix:
		return newMixOsc(specs)
	default:
		return &sineOsc{}
	}
}

type sineOsc struct{}

func (o *sineOsc) NextSample(clock, freq, phase float64) float64 {
	t := clock + phase
	return math.Sin(2 * math.Pi * t * freq)
}
func (o *sineOsc) ModParam(ModTarget) *modparam.Param { return nil }

type squareOsc struct{}

func (o *squareOsc) NextSample(clock, freq, phase float64) float64 {
	t := clock + phase
	frac := math.Mod(t*freq, 1)
	if frac < 0 {
		frac += 1
	}
	return math.Round(frac)*2 - 1
}
func (o *squareOsc) ModParam(ModTarget) *modparam.Param { return nil }

type sawOsc struct{}

func (o *sawOsc) NextSample(clock, freq, phase float64) float64 {
	t := clock + phase
	frac := math.Mod(t*freq, 1)
	if frac < 0 {
		frac += 1
	}
	return frac
}
func (o *sawOsc) ModParam(ModTarget) *modparam.Param { return nil }

type pulseOsc struct {
	duty *modparam.Param
}

func (o *pulseOsc) NextSample(clock, freq, phase float64) float64 {
	t := clock + phase
	frac := math.Mod(t*freq, 1)
	if frac < 0 {
		frac += 1
	}
	if frac < o.duty.Calculate() {
		return 1
	}
	return -1
}
func (o *pulseOsc) ModParam(target ModTarget) *modparam.Param {
	if target == OscPulseDuty {
		return o.duty
	}
	return nil
}

type mixOsc struct {
	subs    []Oscillator
	detunes []float64
}

func newMixOsc(specs OscillatorSpecs) *mixOsc {
	n := specs.MixVoices
	if n < 1 {
		n = 1
	}
	rng := rand.New(rand.NewSource(specs.MixSeed))
	m := &mixOsc{subs: make([]Oscillator, n), detunes: make([]float64, n)}
	for i := 0; i < n; i++ {
		m.subs[i] = Build(OscillatorSpecs{Kind: specs.MixSubKind})
		if specs.DetuneAmount() > 0 {
			m.detunes[i] = (rng.Float64()*2 - 1) * specs.MixDetuneAmount
		}
	}
	return m
}

// DetuneAmount is a convenience accessor so newMixOsc can guard against a zero spread
// without special-casing rng calls inline.
func (s OscillatorSpecs) DetuneAmount() float64 { return s.MixDetuneAmount }

func (o *mixOsc) NextSample(clock, freq, phase float64) float64 {
	var sum float64
	for i, sub := range o.subs {
		sum += sub.NextSample(clock, freq+o.detunes[i], phase)
	}
	return sum
}
func (o *mixOsc) ModParam(ModTarget) *modparam.Param { return nil }
