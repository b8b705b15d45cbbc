package control

import "github.com/vitobasso/gosynth/internal/theory"

// ArpCommandKind distinguishes the two commands an Arpeggiator emits.
type ArpCommandKind int

const (
	ArpNoteOn ArpCommandKind = iota
	ArpNoteOff
)

// ArpCommand is one note-on/off emitted by Arpeggiator.Next.
type ArpCommand struct {
	Kind  ArpCommandKind
	Pitch theory.Pitch
}

// Arpeggiator converts a single held pitch plus a measure-position schedule (Phrase) into
// a stream of note-on/off commands. It is monophonic at the input: only one pitch can be
// "held" at a time, matching a keyboard player holding one key while the arpeggiator
// patterns it.
type Arpeggiator struct {
	phrase  Phrase
	key     theory.Key
	holding *theory.Pitch
	playing *theory.Pitch
	pending *ArpCommand
}

// NewArpeggiator builds an Arpeggiator over phrase in key.
func NewArpeggiator(phrase Phrase, key theory.Key) *Arpeggiator {
	return &Arpeggiator{phrase: phrase, key: key}
}

// SetPhrase hot-swaps the phrase, e.g. on a patch change, without disturbing the held or
// playing pitch.
func (a *Arpeggiator) SetPhrase(phrase Phrase) { a.phrase = phrase }

// InterpretNoteOn records pitch as the currently held input pitch.
func (a *Arpeggiator) InterpretNoteOn(pitch theory.Pitch) {
	p := pitch
	a.holding = &p
}

// InterpretNoteOff clears the held pitch if it matches pitch, stashing a pending NoteOff
// for whatever the arpeggiator was currently playing so it's never lost even if the next
// Next() call has no phrase notes to process.
func (a *Arpeggiator) InterpretNoteOff(pitch theory.Pitch) {
	if a.holding == nil || *a.holding != pitch {
		return
	}
	if a.playing != nil {
		cmd := ArpCommand{Kind: ArpNoteOff, Pitch: *a.playing}
		a.pending = &cmd
	}
	a.holding = nil
	a.playing = nil
}

// Next advances the schedule from fromMeasure to toMeasure and returns the commands this
// causes. A pending release from a prior InterpretNoteOff always takes priority and is
// returned alone.
func (a *Arpeggiator) Next(fromMeasure, toMeasure float64) []ArpCommand {
	if a.pending != nil {
		cmd := *a.pending
		a.pending = nil
		return []ArpCommand{cmd}
	}

	var out []ArpCommand
	notes := a.phrase.Range(fromMeasure, toMeasure)
	for _, n := range notes {
		switch {
		case a.holding != nil && a.playing == nil:
			if next, ok := a.key.PitchAt(*a.holding, n.Pitch); ok {
				a.playing = &next
				out = append(out, ArpCommand{Kind: ArpNoteOn, Pitch: next})
			}
			// out-of-scale: silently skip, per the pass-through error handling rule.
		case a.holding != nil && a.playing != nil:
			out = append(out, ArpCommand{Kind: ArpNoteOff, Pitch: *a.playing})
			if next, ok := a.key.PitchAt(*a.holding, n.Pitch); ok {
				a.playing = &next
				out = append(out, ArpCommand{Kind: ArpNoteOn, Pitch: next})
			} else {
				a.playing = nil
			}
		case a.holding == nil && a.playing != nil:
			out = append(out, ArpCommand{Kind: ArpNoteOff, Pitch: *a.playing})
			a.playing = nil
		}
	}
	return out
}
