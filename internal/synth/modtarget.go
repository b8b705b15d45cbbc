package synth

// ModTarget names an addressable modulatable knob somewhere in the DSP chain. Components
// that host ModParams implement ModParam(target) and return nil for targets they don't
// recognize; callers silently drop writes to an unrecognized target.
type ModTarget int

const (
	Noop ModTarget = iota
	Volume
	FilterCutoff
	FilterQFactor
	OscPulseDuty
	OscMixThickness
)
