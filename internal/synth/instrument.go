package synth

import (
	"github.com/vitobasso/gosynth/internal/modparam"
	"github.com/vitobasso/gosynth/internal/theory"
)

// InstrumentSpecs fully describes an Instrument.
type InstrumentSpecs struct {
	MaxVoices    int
	Oscillator   OscillatorSpecs
	Filter       FilterSpecs
	LFO          *LFOSpecs // nil disables modulation
	ADSR         ADSR
	Volume       float64
	ModXTarget   ModTarget
	ModYTarget   ModTarget
}

// Voice is one concurrently sounding note. Pitch and velocity are fixed at hold time;
// Clock is seconds since the voice was created, and ReleasedAt, once set, is the Clock
// value at the moment release() was called (idempotent: a second release is a no-op).
type Voice struct {
	Pitch      theory.Pitch
	Velocity   float64
	Clock      float64
	Released   bool
	ReleasedAt float64
}

// Instrument is a polyphonic voice manager: one oscillator/filter/ADSR/LFO chain shared
// by all voices, each voice owning only its pitch, velocity and independent clock.
type Instrument struct {
	sampleRate float64
	dt         float64
	maxVoices  int

	osc    Oscillator
	filter *Filter
	lfo    *LFO
	adsr   ADSR
	volume *modparam.Param
	modX   ModTarget
	modY   ModTarget

	voices []*Voice
}

// NewInstrument builds an Instrument from specs at the given host sample rate.
func NewInstrument(specs InstrumentSpecs, sampleRate float64) *Instrument {
	if sampleRate <= 0 {
		panic("synth: instrument sample rate must be > 0")
	}
	inst := &Instrument{
		sampleRate: sampleRate,
		dt:         1 / sampleRate,
		maxVoices:  specs.MaxVoices,
		osc:        Build(specs.Oscillator),
		adsr:       specs.ADSR,
		volume:     modparam.New(0, 1),
		modX:       specs.ModXTarget,
		modY:       specs.ModYTarget,
	}
	fs := specs.Filter
	fs.SampleRate = sampleRate
	inst.filter = NewFilter(fs)
	inst.volume.SetBase(specs.Volume)
	if specs.LFO != nil {
		inst.lfo = NewLFO(*specs.LFO)
	}
	return inst
}

// Hold creates a new voice if the instrument is under its voice cap; otherwise the call is
// silently dropped.
func (inst *Instrument) Hold(pitch theory.Pitch, velocity float64) {
	if len(inst.voices) >= inst.maxVoices {
		return
	}
	inst.voices = append(inst.voices, &Voice{Pitch: pitch, Velocity: velocity})
}

// Release marks the first still-holding voice at pitch as released, timestamped at its own
// clock. A pitch with no holding voice is a no-op.
func (inst *Instrument) Release(pitch theory.Pitch) {
	for _, v := range inst.voices {
		if v.Pitch == pitch && !v.Released {
			v.Released = true
			v.ReleasedAt = v.Clock
			return
		}
	}
}

// ReleaseAll releases every still-holding voice.
func (inst *Instrument) ReleaseAll() {
	for _, v := range inst.voices {
		if !v.Released {
			v.Released = true
			v.ReleasedAt = v.Clock
		}
	}
}

// VoiceCount returns the number of live (not yet dropped) voices.
func (inst *Instrument) VoiceCount() int { return len(inst.voices) }

// FilterView exposes the filter's current parameters for a GUI snapshot.
func (inst *Instrument) FilterView() FilterView { return inst.filter.View() }

// NextSample advances the instrument by one sample and returns the mixed, filtered output.
func (inst *Instrument) NextSample() float64 {
	if inst.lfo != nil {
		v := inst.lfo.Tick(inst.dt)
		if mp := inst.ModParam(inst.lfo.Target()); mp != nil {
			mp.SetSignal(v)
		}
	}

	live := inst.voices[:0]
	for _, v := range inst.voices {
		if v.Released && v.Clock-v.ReleasedAt > inst.adsr.Release {
			continue
		}
		live = append(live, v)
	}
	inst.voices = live

	var mix float64
	for _, v := range inst.voices {
		v.Clock += inst.dt
		osc := inst.osc.NextSample(v.Clock, v.Pitch.Freq(), 0) * v.Velocity
		elapsedSinceRelease := 0.0
		if v.Released {
			elapsedSinceRelease = v.Clock - v.ReleasedAt
		}
		mix += inst.adsr.Apply(v.Clock, elapsedSinceRelease, osc)
	}

	out := inst.filter.Process(mix)
	return out * inst.volume.Calculate()
}

// ModParam resolves target against the instrument's own Volume knob, then the oscillator,
// then the filter. Unknown targets return nil.
func (inst *Instrument) ModParam(target ModTarget) *modparam.Param {
	if target == Volume {
		return inst.volume
	}
	if mp := inst.osc.ModParam(target); mp != nil {
		return mp
	}
	return inst.filter.ModParam(target)
}

// SetXYParams sets the base of the ModParams assigned to the X/Y targets.
func (inst *Instrument) SetXYParams(x, y float64) {
	if mp := inst.ModParam(inst.modX); mp != nil {
		mp.SetBase(x)
	}
	if mp := inst.ModParam(inst.modY); mp != nil {
		mp.SetBase(y)
	}
}

// SetOscillator replaces the oscillator in place, disturbing neither voices nor filter
// history.
func (inst *Instrument) SetOscillator(specs OscillatorSpecs) {
	inst.osc = Build(specs)
}

// InstrumentState is the playing state a patch hot-swap must carry over: the live voices
// (with their clocks and release timestamps) and the filter's sample history.
type InstrumentState struct {
	Voices []*Voice
	Filter FilterState
}

// State captures the current playing state, for preservation across a SetSpecs.
func (inst *Instrument) State() InstrumentState {
	return InstrumentState{Voices: inst.voices, Filter: inst.filter.State()}
}

// SetState restores a previously captured playing state.
func (inst *Instrument) SetState(s InstrumentState) {
	inst.voices = s.Voices
	inst.filter.SetState(s.Filter)
}

// SetSpecs hot-swaps the instrument's patch (oscillator, filter, LFO, ADSR, volume, X/Y
// targets) while preserving voices and the filter's history, so a patch change never cuts
// a held note or clicks the filter.
func (inst *Instrument) SetSpecs(specs InstrumentSpecs) {
	prev := inst.State()
	inst.maxVoices = specs.MaxVoices
	inst.osc = Build(specs.Oscillator)
	fs := specs.Filter
	fs.SampleRate = inst.sampleRate
	inst.filter = NewFilter(fs)
	inst.adsr = specs.ADSR
	inst.volume.SetBase(specs.Volume)
	inst.modX = specs.ModXTarget
	inst.modY = specs.ModYTarget
	if specs.LFO != nil {
		inst.lfo = NewLFO(*specs.LFO)
	} else {
		inst.lfo = nil
	}
	inst.SetState(prev)
}
