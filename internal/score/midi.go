package score

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/vitobasso/gosynth/internal/control"
	"github.com/vitobasso/gosynth/internal/theory"
)

// DecodeMIDI reads a standard MIDI file at path and decodes it into the engine's
// SheetMusic shape: tempo and time-signature meta events become Sections, and each MIDI
// channel's note-on/off messages become a VoiceTrack keyed by channel number.
func DecodeMIDI(path string) (SheetMusic, error) {
	rd, err := smf.ReadFile(path)
	if err != nil {
		return SheetMusic{}, fmt.Errorf("score: read midi file %q: %w", path, err)
	}
	ticksPerBeat, ok := rd.TimeFormat.(smf.MetricTicks)
	if !ok {
		return SheetMusic{}, fmt.Errorf("score: %q uses %T timing, only metric ticks are supported", path, rd.TimeFormat)
	}

	sections := decodeSections(rd, int64(ticksPerBeat))
	voices, endTick := decodeVoices(rd)

	return SheetMusic{
		Title:        titleOf(path),
		Sections:     sections,
		Voices:       voices,
		TicksPerBeat: int64(ticksPerBeat),
		EndTick:      endTick,
	}, nil
}

func titleOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type tempoChange struct {
	tick int64
	bpm  float64
}

type meterChange struct {
	tick int64
	num  uint8
}

// decodeSections scans every track for MetaTempo/MetaMeter events (conventionally on
// track 0, but a tempo map is allowed to live anywhere) and builds the Section list by
// walking the sorted set of ticks where either changes, integrating wall time and measure
// position forward from one boundary to the next.
func decodeSections(rd *smf.SMF, ticksPerBeat int64) []Section {
	tempos, meters := scanMeta(rd)

	boundarySet := map[int64]bool{0: true}
	for _, tc := range tempos {
		boundarySet[tc.tick] = true
	}
	for _, mc := range meters {
		boundarySet[mc.tick] = true
	}
	boundaries := make([]int64, 0, len(boundarySet))
	for t := range boundarySet {
		boundaries = append(boundaries, t)
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i] < boundaries[j] })

	sections := make([]Section, 0, len(boundaries))
	curBPM := 120.0
	var curMeter uint8 = 4
	var beginTime time.Duration
	var beginMeasure float64

	for i, tick := range boundaries {
		curBPM = bpmAt(tempos, tick, curBPM)
		curMeter = meterAt(meters, tick, curMeter)
		beatDuration := time.Duration(60e9 / curBPM)
		tickDuration := beatDuration / time.Duration(ticksPerBeat)

		sections = append(sections, Section{
			BeginTick:       tick,
			BeginTime:       beginTime,
			BeginMeasure:    beginMeasure,
			Key:             theory.C,
			Modality:        Major,
			BeatDuration:    beatDuration,
			BeatsPerMeasure: int(curMeter),
			TickDuration:    tickDuration,
		})

		if i+1 < len(boundaries) {
			span := boundaries[i+1] - tick
			beginTime += tickDuration * time.Duration(span)
			beginMeasure += float64(span) / float64(ticksPerBeat) / float64(curMeter)
		}
	}
	return sections
}

func scanMeta(rd *smf.SMF) ([]tempoChange, []meterChange) {
	var tempos []tempoChange
	var meters []meterChange
	for _, track := range rd.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				tempos = append(tempos, tempoChange{tick: tick, bpm: bpm})
			}
			var num, denom uint8
			if ev.Message.GetMetaMeter(&num, &denom) {
				meters = append(meters, meterChange{tick: tick, num: num})
			}
		}
	}
	sort.Slice(tempos, func(i, j int) bool { return tempos[i].tick < tempos[j].tick })
	sort.Slice(meters, func(i, j int) bool { return meters[i].tick < meters[j].tick })
	return tempos, meters
}

func bpmAt(tempos []tempoChange, tick int64, fallback float64) float64 {
	v := fallback
	for _, tc := range tempos {
		if tc.tick > tick {
			break
		}
		v = tc.bpm
	}
	return v
}

func meterAt(meters []meterChange, tick int64, fallback uint8) uint8 {
	v := fallback
	for _, mc := range meters {
		if mc.tick > tick {
			break
		}
		v = mc.num
	}
	return v
}

// decodeVoices walks every track accumulating absolute tick position and collecting
// note-on/note-off messages per MIDI channel (a zero-velocity note-on is a note-off, per
// MIDI convention). It returns one VoiceTrack per channel that had any note activity, in
// ascending channel order, plus the highest tick seen across the whole file.
func decodeVoices(rd *smf.SMF) ([]VoiceTrack, int64) {
	perChannel := make(map[uint8][]Event)
	var endTick int64

	for _, track := range rd.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			if tick > endTick {
				endTick = tick
			}

			var ch, key, vel uint8
			if ev.Message.GetNoteOn(&ch, &key, &vel) {
				pitch := theory.PitchFromIndex(int(key))
				id := control.Id{Pitch: pitch, Discriminator: ch}
				if vel > 0 {
					perChannel[ch] = append(perChannel[ch], Event{
						Tick:    tick,
						Command: control.NoteOnCmd{Pitch: pitch, Velocity: float64(vel) / 127, Id: id},
					})
				} else {
					perChannel[ch] = append(perChannel[ch], Event{Tick: tick, Command: control.NoteOffCmd{Id: id}})
				}
			} else if ev.Message.GetNoteOff(&ch, &key, &vel) {
				pitch := theory.PitchFromIndex(int(key))
				id := control.Id{Pitch: pitch, Discriminator: ch}
				perChannel[ch] = append(perChannel[ch], Event{Tick: tick, Command: control.NoteOffCmd{Id: id}})
			}
		}
	}

	channels := make([]uint8, 0, len(perChannel))
	for ch := range perChannel {
		channels = append(channels, ch)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })

	voices := make([]VoiceTrack, 0, len(channels))
	for _, ch := range channels {
		events := perChannel[ch]
		sort.SliceStable(events, func(i, j int) bool { return events[i].Tick < events[j].Tick })
		voices = append(voices, VoiceTrack{ChannelID: int(ch), Events: events})
	}
	return voices, endTick
}
