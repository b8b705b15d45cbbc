package control

import (
	"sync"

	"github.com/vitobasso/gosynth/internal/synth"
	"github.com/vitobasso/gosynth/internal/theory"
)

// Command is anything the Tools controller can receive from a producer (MIDI decoder,
// keyboard, GUI). Concrete types are switched on in Tools.apply.
type Command interface{ isCommand() }

type NoteOnCmd struct {
	Pitch    theory.Pitch
	Velocity float64
	Id       Id
}

type NoteOffCmd struct{ Id Id }

type ModXYCmd struct{ X, Y float64 }

// SetInstrumentPatchCmd replaces the synth's instrument specs directly, bypassing the
// arpeggiator, mirroring the Instrument category's own SetPatch variant.
type SetInstrumentPatchCmd struct{ Specs synth.InstrumentSpecs }

type TransposeKeyCmd struct{ N int }
type ShiftPitchCmd struct{ N int }
type ShiftKeyboardCmd struct{ N int }

// Patch is the payload of the top-level SetPatchCmd: it swaps either the instrument or the
// arpeggiator (or does nothing), never both at once.
type Patch interface{ isPatch() }

type InstrumentPatch struct{ Specs synth.InstrumentSpecs }

// ArpSpecs bundles what's needed to build an Arpeggiator: the phrase to play and the key
// its relative pitches resolve against. A nil *ArpSpecs in ArpeggiatorPatch disables
// arpeggiation, falling back to direct play.
type ArpSpecs struct {
	Phrase Phrase
	Key    theory.Key
}

type ArpeggiatorPatch struct{ Specs *ArpSpecs }

type NoopPatch struct{}

func (InstrumentPatch) isPatch()  {}
func (ArpeggiatorPatch) isPatch() {}
func (NoopPatch) isPatch()        {}

type SetPatchCmd struct{ Patch Patch }

type LoopTogglePlaybackCmd struct{ Index int }
type LoopToggleRecordingCmd struct{ Index int }

type TapTempoCmd struct{}

func (NoteOnCmd) isCommand()              {}
func (NoteOffCmd) isCommand()             {}
func (ModXYCmd) isCommand()               {}
func (SetInstrumentPatchCmd) isCommand()  {}
func (TransposeKeyCmd) isCommand()        {}
func (ShiftPitchCmd) isCommand()          {}
func (ShiftKeyboardCmd) isCommand()       {}
func (SetPatchCmd) isCommand()            {}
func (LoopTogglePlaybackCmd) isCommand()  {}
func (LoopToggleRecordingCmd) isCommand() {}
func (TapTempoCmd) isCommand()            {}

// commandQueue is an unbounded, thread-safe FIFO of commands. Producers Push from any
// goroutine; the controller drains it with TryPop, which never blocks.
type commandQueue struct {
	mu sync.Mutex
	q  []Command
}

func newCommandQueue() *commandQueue { return &commandQueue{} }

func (q *commandQueue) Push(c Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.q = append(q.q, c)
}

func (q *commandQueue) TryPop() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.q) == 0 {
		return nil, false
	}
	c := q.q[0]
	q.q = q.q[1:]
	return c, true
}
