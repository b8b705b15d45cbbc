package control

import "time"

// TapTempo derives a beat period from a rolling two-tap window: tapping resets, starts,
// or slides the window depending on how the new tap relates to the stored instants.
type TapTempo struct {
	begin *time.Time
	end   *time.Time
}

// Tap records one tap at now.
func (t *TapTempo) Tap(now time.Time) {
	switch {
	case t.begin != nil && t.end != nil && now.After(*t.end):
		t.begin = t.end
		n := now
		t.end = &n
	case t.begin != nil && now.After(*t.begin):
		n := now
		t.end = &n
	default:
		n := now
		t.begin = &n
		t.end = nil
	}
}

// Read returns end-begin when a valid tap pair exists.
func (t *TapTempo) Read() (time.Duration, bool) {
	if t.begin != nil && t.end != nil {
		return t.end.Sub(*t.begin), true
	}
	return 0, false
}
