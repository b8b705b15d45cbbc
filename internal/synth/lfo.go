package synth

// LFOSpecs fully describes an LFO.
type LFOSpecs struct {
	OscKind OscKind
	Freq    float64 // Hz
	Phase   float64 // seconds
	Amount  float64 // [0,1]
	Target  ModTarget
}

// LFO is a low-rate modulator. It owns its own oscillator and clock (kept separate from
// any voice's clock to avoid a cyclic dependency between the instrument's voices and its
// modulator).
type LFO struct {
	osc    Oscillator
	freq   float64
	phase  float64
	amount float64
	target ModTarget
	clock  float64
}

// NewLFO builds an LFO from specs.
func NewLFO(specs LFOSpecs) *LFO {
	return &LFO{
		osc:    Build(OscillatorSpecs{Kind: specs.OscKind}),
		freq:   specs.Freq,
		phase:  specs.Phase,
		amount: clamp01(specs.Amount),
		target: specs.Target,
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Target returns the ModTarget this LFO's value should be written to.
func (l *LFO) Target() ModTarget { return l.target }

// Tick advances the LFO's clock by dt seconds and returns the normalized value
// ((osc+1)/2)*amount, mapping an oscillator that swings in [-1,1] onto [0, amount] so it
// can drive a ModParam as an attenuation signal.
func (l *LFO) Tick(dt float64) float64 {
	l.clock += dt
	osc := l.osc.NextSample(l.clock, l.freq, l.phase)
	return (osc + 1) / 2 * l.amount
}
