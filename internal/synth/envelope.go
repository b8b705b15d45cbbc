package synth

// ADSR is an attack/decay/sustain/release envelope. Attack, decay and release are
// non-negative durations in seconds; sustain is a level in [0,1].
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// NewADSR constructs an ADSR, enforcing the construction-time invariants: attack, decay,
// release non-negative and sustain in [0,1].
func NewADSR(attack, decay, sustain, release float64) ADSR {
	if attack < 0 || decay < 0 || release < 0 {
		panic("synth: adsr durations must be non-negative")
	}
	if sustain < 0 || sustain > 1 {
		panic("synth: adsr sustain must be in [0,1]")
	}
	return ADSR{Attack: attack, Decay: decay, Sustain: sustain, Release: release}
}

// Scale returns the envelope multiplier for a voice that has been held for elapsed
// seconds, and released for elapsedSinceRelease seconds (0 or negative meaning "still
// holding").
func (e ADSR) Scale(elapsed, elapsedSinceRelease float64) float64 {
	if elapsedSinceRelease > 0 {
		if e.Release <= 0 {
			return 0
		}
		remain := 1 - elapsedSinceRelease/e.Release
		if remain < 0 {
			remain = 0
		}
		return e.Sustain * remain
	}
	switch {
	case e.Attack > 0 && elapsed < e.Attack:
		return elapsed / e.Attack
	case e.Decay > 0 && elapsed < e.Attack+e.Decay:
		decayProgress := (elapsed - e.Attack) / e.Decay
		return e.Sustain + (1-e.Sustain)*(1-decayProgress)
	default:
		return e.Sustain
	}
}

// Apply multiplies sample by the envelope scale at the given times.
func (e ADSR) Apply(elapsed, elapsedSinceRelease, sample float64) float64 {
	return sample * e.Scale(elapsed, elapsedSinceRelease)
}
