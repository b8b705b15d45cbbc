package control

import (
	"context"
	"time"

	"github.com/vitobasso/gosynth/internal/synth"
	"github.com/vitobasso/gosynth/internal/theory"
)

// Tuning constants for the arpeggiator's sub-beat clock.
const (
	PulsesPerBeat   = 32
	BeatsPerMeasure = 4
	DefaultPulse    = 12 * time.Millisecond
)

// View is the (optional) snapshot the controller offers to a GUI once per tick. Delivery is
// best-effort: a slow consumer just misses frames.
type View struct {
	VoiceCount int
	Filter     synth.FilterView
	DrySample  float64 // the dry (pre-loop-mix) sample produced by the previous tick
}

type arpDiscriminator struct{}

func arpId(p theory.Pitch) Id { return Id{Pitch: p, Discriminator: arpDiscriminator{}} }

type noteKind int

const (
	noteOn noteKind = iota
	noteOff
)

// Tools is the sample pump: it owns every stateful control-layer component and, once per
// tick, applies at most one pending command, advances the arpeggiator's schedule, pulls one
// sample from the synth, mixes in loop playback, and feeds the dry sample back into the
// loop recorder. It is the only place in the engine that may block, and it blocks in
// exactly one spot: sending the finished sample downstream.
type Tools struct {
	synth       *Synth
	transposer  *Transposer
	arp         *Arpeggiator
	pulse       Pulse
	tap         TapTempo
	loops       *LoopManager
	arpIndex    float64

	commands *commandQueue
	samples  chan float64
	view     chan View
	lastDry  float64
}

// NewTools builds a Tools controller. now seeds the pulse clock's initial phase;
// sampleRate sizes the samples channel to roughly 4ms of buffer, matching the bounded,
// backpressure-providing channel the audio driver drains.
func NewTools(specs synth.InstrumentSpecs, sampleRate int, key theory.Key, loopSlots int, now time.Time) *Tools {
	bufSize := sampleRate / 250
	if bufSize < 1 {
		bufSize = 1
	}
	return &Tools{
		synth:      NewSynth(specs, float64(sampleRate)),
		transposer: NewTransposer(key),
		pulse:      NewPulse(DefaultPulse, now),
		loops:      NewLoopManager(loopSlots),
		commands:   newCommandQueue(),
		samples:    make(chan float64, bufSize),
		view:       make(chan View, 1),
	}
}

// Enqueue hands a command to the controller from any producer goroutine. Never blocks.
func (t *Tools) Enqueue(cmd Command) { t.commands.Push(cmd) }

// ReleaseAll releases every held voice directly. Unlike Enqueue, this bypasses the command
// queue, so it takes effect immediately rather than on the next tick — appropriate for a
// shutdown path or a MIDI all-notes-off CC where waiting one tick doesn't matter but
// correctness of "every note is off before Close returns" might.
func (t *Tools) ReleaseAll() { t.synth.ReleaseAll() }

// Samples exposes the bounded, synchronous channel the audio driver pulls from.
func (t *Tools) Samples() <-chan float64 { return t.samples }

// View exposes the best-effort GUI snapshot channel.
func (t *Tools) View() <-chan View { return t.view }

// Run drives the controller loop until ctx is cancelled, which is how the audio driver's
// shutdown propagates back (closing the output is the life-rope: once nothing drains
// Samples(), the blocking send below is the only thing that can still observe ctx.Done()).
func (t *Tools) Run(ctx context.Context) error {
	for {
		sample := t.Tick(time.Now())
		select {
		case t.samples <- sample:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Tick runs exactly one controller iteration and returns the sample it produced. Exposed
// directly so tests can drive the controller without a real clock or goroutines.
func (t *Tools) Tick(now time.Time) float64 {
	if cmd, ok := t.commands.TryPop(); ok {
		t.apply(now, cmd)
	}

	if res, ok := t.pulse.Read(now); ok {
		step := float64(1+res.Missed) / float64(PulsesPerBeat*BeatsPerMeasure)
		old := t.arpIndex
		t.arpIndex += step
		if t.arp != nil {
			for _, cmd := range t.arp.Next(old, t.arpIndex) {
				t.routeArpCommand(cmd)
			}
		}
	}

	t.publishView()

	dry := t.synth.NextSample()
	t.lastDry = dry
	out := dry + t.loops.NextSample()
	t.loops.Write(dry)
	return out
}

// publishView sends a best-effort GUI snapshot built from the previous tick's dry sample
// (this tick's hasn't been produced yet) — a one-tick lag that's inaudible to a meter.
func (t *Tools) publishView() {
	v := View{
		VoiceCount: t.synth.Instrument().VoiceCount(),
		Filter:     t.synth.Instrument().FilterView(),
		DrySample:  t.lastDry,
	}
	select {
	case t.view <- v:
	default:
	}
}

func (t *Tools) apply(now time.Time, cmd Command) {
	switch c := cmd.(type) {
	case NoteOnCmd:
		t.playOrArpeggiate(noteOn, c.Pitch, c.Velocity, c.Id)
	case NoteOffCmd:
		t.playOrArpeggiate(noteOff, c.Id.Pitch, 0, c.Id)
	case ModXYCmd:
		t.synth.ModXY(c.X, c.Y)
	case SetInstrumentPatchCmd:
		t.synth.SetPatch(c.Specs)
	case TransposeKeyCmd:
		t.transposer.TransposeKey(c.N)
	case ShiftPitchCmd:
		t.transposer.ShiftPitch(c.N)
	case ShiftKeyboardCmd:
		t.transposer.ShiftKeyboard(c.N)
	case SetPatchCmd:
		t.applyPatch(c.Patch)
	case LoopTogglePlaybackCmd:
		t.loops.TogglePlayback(c.Index)
	case LoopToggleRecordingCmd:
		t.loops.ToggleRecording(c.Index)
	case TapTempoCmd:
		t.tap.Tap(now)
		if beat, ok := t.tap.Read(); ok {
			t.pulse = t.pulse.WithPeriod(beat / PulsesPerBeat)
		}
	}
}

func (t *Tools) applyPatch(p Patch) {
	switch patch := p.(type) {
	case InstrumentPatch:
		t.synth.SetPatch(patch.Specs)
	case ArpeggiatorPatch:
		if patch.Specs == nil {
			t.arp = nil
			return
		}
		t.arp = NewArpeggiator(patch.Specs.Phrase, patch.Specs.Key)
	case NoopPatch:
	}
}

// playOrArpeggiate routes NoteOn/NoteOff to the arpeggiator when one is active — it owns
// the held-pitch concept in that mode — and otherwise plays the synth directly.
func (t *Tools) playOrArpeggiate(kind noteKind, pitch theory.Pitch, velocity float64, id Id) {
	if t.arp != nil {
		switch kind {
		case noteOn:
			t.arp.InterpretNoteOn(pitch)
		case noteOff:
			t.arp.InterpretNoteOff(pitch)
		}
		return
	}
	switch kind {
	case noteOn:
		if p, ok := t.transposer.Transpose(pitch); ok {
			t.synth.NoteOn(p, velocity, id)
		}
	case noteOff:
		t.synth.NoteOff(id)
	}
}

func (t *Tools) routeArpCommand(cmd ArpCommand) {
	switch cmd.Kind {
	case ArpNoteOn:
		if p, ok := t.transposer.Transpose(cmd.Pitch); ok {
			t.synth.NoteOn(p, 1.0, arpId(cmd.Pitch))
		}
	case ArpNoteOff:
		t.synth.NoteOff(arpId(cmd.Pitch))
	}
}
