package score

import (
	"context"
	"io"
	"time"

	"github.com/vitobasso/gosynth/internal/control"
	"github.com/vitobasso/gosynth/internal/synth"
)

// releaseGrace is how long past the score's last event Run keeps mixing before reporting
// EOF, so a held voice's ADSR release tail isn't cut off mid-decay.
const releaseGrace = 2 * time.Second

// Player drives a SheetMusic against wall-clock time: one control.Synth façade per
// distinct channel, advancing each voice-track's cursor and mixing their output once per
// tick.
type Player struct {
	sheet   SheetMusic
	synths  map[int]*control.Synth
	cursors []int
	section int
	begin   time.Time

	samples chan float64
}

// NewPlayer builds a Player over sheet: every channel mentioned in sheet.Voices gets its
// own instance of specs, all starting their wall clock at begin.
func NewPlayer(sheet SheetMusic, specs synth.InstrumentSpecs, sampleRate int, begin time.Time) *Player {
	synths := make(map[int]*control.Synth)
	for _, v := range sheet.Voices {
		if _, ok := synths[v.ChannelID]; !ok {
			synths[v.ChannelID] = control.NewSynth(specs, float64(sampleRate))
		}
	}
	bufSize := sampleRate / 250
	if bufSize < 1 {
		bufSize = 1
	}
	return &Player{
		sheet:   sheet,
		synths:  synths,
		cursors: make([]int, len(sheet.Voices)),
		begin:   begin,
		samples: make(chan float64, bufSize),
	}
}

// Samples exposes the bounded, synchronous channel the audio driver pulls from, matching
// the Tools controller's channel shape so both can feed the same adapter.
func (p *Player) Samples() <-chan float64 { return p.samples }

// Run drives the player until the score reaches its end tick or ctx is cancelled,
// mirroring Tools.Run: it blocks in exactly one place, the bounded send below. Reaching
// the end of the score is reported as io.EOF, matching the CLI's "exit 0 on EOF" contract
// for score-playback mode.
func (p *Player) Run(ctx context.Context) error {
	for {
		sample := p.Tick(time.Now())
		select {
		case p.samples <- sample:
		case <-ctx.Done():
			return ctx.Err()
		}
		if p.done() {
			return io.EOF
		}
	}
}

// done reports whether every voice track has emitted its last event and the score's end
// tick has passed, so a trailing envelope release has time to ring out before Run returns.
func (p *Player) done() bool {
	if len(p.sheet.Sections) == 0 {
		return true
	}
	for i, track := range p.sheet.Voices {
		if p.cursors[i] < len(track.Events) {
			return false
		}
	}
	last := p.sheet.Sections[len(p.sheet.Sections)-1]
	endTime := last.TimeAtTick(p.sheet.EndTick) + releaseGrace
	return time.Since(p.begin) > endTime
}

// Tick runs one playback iteration and returns the mixed sample it produced.
func (p *Player) Tick(now time.Time) float64 {
	elapsed := now.Sub(p.begin)
	p.advanceSection(elapsed)
	for i := range p.sheet.Voices {
		p.emitDue(i, elapsed)
	}
	var mix float64
	for _, s := range p.synths {
		mix += s.NextSample()
	}
	return mix
}

// advanceSection moves the current-section index forward to the last section whose
// BeginTime <= elapsed. It never moves backward: sections are assumed monotonically
// non-decreasing in BeginTime, which DecodeMIDI guarantees by construction.
func (p *Player) advanceSection(elapsed time.Duration) {
	for p.section+1 < len(p.sheet.Sections) && p.sheet.Sections[p.section+1].BeginTime <= elapsed {
		p.section++
	}
}

// emitDue forwards every event of voice whose wall time has arrived to its channel's
// synth. An event's wall time is computed from the section that actually contains its
// tick, not the playback's current section, so events already scheduled in an earlier
// section resolve against that section's tempo even if playback has since advanced.
func (p *Player) emitDue(voiceIdx int, elapsed time.Duration) {
	track := p.sheet.Voices[voiceIdx]
	s, ok := p.synths[track.ChannelID]
	if !ok {
		return
	}
	for p.cursors[voiceIdx] < len(track.Events) {
		ev := track.Events[p.cursors[voiceIdx]]
		section := p.sheet.Sections[p.sheet.sectionForTick(ev.Tick)]
		if section.TimeAtTick(ev.Tick) > elapsed {
			break
		}
		applyCommand(s, ev.Command)
		p.cursors[voiceIdx]++
	}
}

// applyCommand forwards the subset of control.Command a score can express to a bare
// Synth façade: note, modulation and instrument-patch commands. A score has no transposer
// or arpeggiator of its own, so any other command kind (TransposeKey/ShiftPitch/TapTempo/
// Loop) is ignored here; DecodeMIDI itself only produces note commands.
func applyCommand(s *control.Synth, cmd control.Command) {
	switch c := cmd.(type) {
	case control.NoteOnCmd:
		s.NoteOn(c.Pitch, c.Velocity, c.Id)
	case control.NoteOffCmd:
		s.NoteOff(c.Id)
	case control.ModXYCmd:
		s.ModXY(c.X, c.Y)
	case control.SetInstrumentPatchCmd:
		s.SetPatch(c.Specs)
	}
}
