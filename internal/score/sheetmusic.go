// Package score implements the score-playback engine: it turns a decoded SheetMusic
// into one Synth façade per channel and drives them against wall-clock time.
package score

import (
	"math"
	"time"

	"github.com/vitobasso/gosynth/internal/control"
	"github.com/vitobasso/gosynth/internal/theory"
)

// Modality distinguishes a section's tonal color. Only Major is exercised by the
// arpeggiator/transposer machinery today; Minor is carried through the data model so a
// richer decoder has somewhere to put it.
type Modality int

const (
	Major Modality = iota
	Minor
)

// Section is a contiguous span of a score sharing tempo, key and time signature.
type Section struct {
	BeginTick       int64
	BeginTime       time.Duration
	BeginMeasure    float64
	Key             theory.Key
	Modality        Modality
	BeatDuration    time.Duration // time per beat at this section's tempo
	BeatsPerMeasure int
	TickDuration    time.Duration // time per tick, i.e. BeatDuration / ticksPerBeat
}

// MeasureAtTick returns the fractional measure position of tick, computed from this
// section's own beginning.
func (s Section) MeasureAtTick(ticksPerBeat int64, tick int64) float64 {
	if ticksPerBeat <= 0 || s.BeatsPerMeasure <= 0 {
		return s.BeginMeasure
	}
	beats := float64(tick-s.BeginTick) / float64(ticksPerBeat)
	return s.BeginMeasure + beats/float64(s.BeatsPerMeasure)
}

// TimeAtTick returns the wall-clock offset from the score's start at which tick sounds:
// BeginTime + TickDuration * (tick - BeginTick).
func (s Section) TimeAtTick(tick int64) time.Duration {
	return s.BeginTime + s.TickDuration*time.Duration(tick-s.BeginTick)
}

// Event is one control.Command scheduled at an absolute tick within a VoiceTrack.
type Event struct {
	Command control.Command
	Tick    int64
}

// VoiceTrack is one channel's ordered event list.
type VoiceTrack struct {
	ChannelID int
	Events    []Event
}

// SheetMusic is a fully decoded score: tempo/key/meter sections plus one event list per
// channel, both expressed in the same tick space.
type SheetMusic struct {
	Title        string
	Sections     []Section
	Voices       []VoiceTrack
	TicksPerBeat int64
	EndTick      int64
}

// CountMeasures returns the number of measures the score spans, end tick included.
func (sm SheetMusic) CountMeasures() int {
	if len(sm.Sections) == 0 {
		return 0
	}
	last := sm.Sections[len(sm.Sections)-1]
	return int(math.Floor(last.MeasureAtTick(sm.TicksPerBeat, sm.EndTick))) + 1
}

// sectionForTick returns the index of the last section whose BeginTick <= tick, or 0 if
// tick precedes every section's beginning.
func (sm SheetMusic) sectionForTick(tick int64) int {
	idx := 0
	for i, s := range sm.Sections {
		if s.BeginTick > tick {
			break
		}
		idx = i
	}
	return idx
}
