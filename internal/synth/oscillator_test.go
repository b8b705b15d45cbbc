package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSineSample(t *testing.T) {
	osc := Build(OscillatorSpecs{Kind: Sine})
	assert.InDelta(t, 0, osc.NextSample(0, 440, 0), 1e-9)
	// a quarter period into the cycle the sine peaks
	assert.InDelta(t, 1, osc.NextSample(0.25/440, 440, 0), 1e-9)
}

func TestSquareFlipsHalfwayThroughCycle(t *testing.T) {
	osc := Build(OscillatorSpecs{Kind: Square})
	assert.Equal(t, -1.0, osc.NextSample(0.1/440, 440, 0))
	assert.Equal(t, 1.0, osc.NextSample(0.6/440, 440, 0))
}

func TestSawRampsOverCycle(t *testing.T) {
	osc := Build(OscillatorSpecs{Kind: Saw})
	assert.InDelta(t, 0.25, osc.NextSample(0.25/440, 440, 0), 1e-9)
	assert.InDelta(t, 0.75, osc.NextSample(0.75/440, 440, 0), 1e-9)
}

func TestPulseDutyCycle(t *testing.T) {
	osc := Build(OscillatorSpecs{Kind: Pulse, PulseDuty: 0.25})
	assert.Equal(t, 1.0, osc.NextSample(0.1/440, 440, 0))
	assert.Equal(t, -1.0, osc.NextSample(0.5/440, 440, 0))
}

func TestPulseDutyIsModulatable(t *testing.T) {
	osc := Build(OscillatorSpecs{Kind: Pulse, PulseDuty: 0.25})
	mp := osc.ModParam(OscPulseDuty)
	assert.NotNil(t, mp)
	mp.SetBase(0.75)
	assert.Equal(t, 1.0, osc.NextSample(0.5/440, 440, 0))
}

func TestPlainOscillatorsHaveNoKnobs(t *testing.T) {
	for _, kind := range []OscKind{Sine, Square, Saw} {
		osc := Build(OscillatorSpecs{Kind: kind})
		assert.Nil(t, osc.ModParam(OscPulseDuty))
	}
}

func TestPhaseOffsetsTheClock(t *testing.T) {
	osc := Build(OscillatorSpecs{Kind: Sine})
	assert.InDelta(t, osc.NextSample(0.3, 440, 0.2), osc.NextSample(0.5, 440, 0), 1e-9)
}

func TestMixIsDeterministicPerSeed(t *testing.T) {
	specs := OscillatorSpecs{Kind: Mix, MixVoices: 5, MixDetuneAmount: 3, MixSubKind: Saw, MixSeed: 42}
	a := Build(specs)
	b := Build(specs)
	for _, clock := range []float64{0.001, 0.01, 0.1} {
		assert.Equal(t, a.NextSample(clock, 440, 0), b.NextSample(clock, 440, 0))
	}
}

func TestMixSumsUnnormalized(t *testing.T) {
	// with zero detune every sub-oscillator is identical, so the sum is n times one saw
	specs := OscillatorSpecs{Kind: Mix, MixVoices: 4, MixDetuneAmount: 0, MixSubKind: Saw, MixSeed: 1}
	mix := Build(specs)
	one := Build(OscillatorSpecs{Kind: Saw})
	clock := 0.3 / 440
	assert.InDelta(t, 4*one.NextSample(clock, 440, 0), mix.NextSample(clock, 440, 0), 1e-9)
}

func TestMixDetuneStaysWithinSpread(t *testing.T) {
	specs := OscillatorSpecs{Kind: Mix, MixVoices: 8, MixDetuneAmount: 2, MixSubKind: Saw, MixSeed: 7}
	mix := Build(specs).(*mixOsc)
	for _, d := range mix.detunes {
		assert.LessOrEqual(t, math.Abs(d), 2.0)
	}
}
