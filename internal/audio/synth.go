// Package audio adapts the control layer's sample pumps (control.Tools, score.Player) to
// the host audio device: an io.Reader-backed oto/v3 player pulls mono float64 samples
// off whichever pump is handed in and converts them to interleaved PCM16 stereo.
package audio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/vitobasso/gosynth/internal/control"
	"github.com/vitobasso/gosynth/internal/synth"
	"github.com/vitobasso/gosynth/internal/theory"
)

const (
	channelCount = 2 // the mono engine sample is duplicated across both channels
	bitDepth     = 2 // 16-bit
)

// Pump is anything that produces a bounded, backpressure-providing channel of mono
// float64 samples in [-1,1] — control.Tools and score.Player both satisfy it.
type Pump interface {
	Samples() <-chan float64
	Run(ctx context.Context) error
}

// Synth drives a Pump through an oto player: it owns the oto context, the player, and the
// goroutine running the pump's loop, and converts pump samples to PCM16 stereo on the fly.
type Synth struct {
	tools  *control.Tools
	player *oto.Player
	cancel context.CancelFunc
	done   chan error
}

// NewSynth builds a control.Tools sample pump over specs and wires it into a fresh oto
// playback stream at sampleRate.
func NewSynth(sampleRate int, specs synth.InstrumentSpecs, key theory.Key, loopSlots int) (*Synth, error) {
	tools := control.NewTools(specs, sampleRate, key, loopSlots, time.Now())
	player, cancel, done, err := start(tools, sampleRate)
	if err != nil {
		return nil, err
	}
	return &Synth{tools: tools, player: player, cancel: cancel, done: done}, nil
}

func start(pump Pump, sampleRate int) (*oto.Player, context.CancelFunc, chan error, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("audio: init oto context: %w", err)
	}
	<-ready

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pump.Run(ctx) }()

	player := otoCtx.NewPlayer(&sampleReader{samples: pump.Samples()})
	player.Play()
	return player, cancel, done, nil
}

// sampleReader implements io.Reader, pulling mono float64 samples off a pump's channel
// and converting them to interleaved PCM16 stereo (i16 = sample * 0x7FFF, clamped).
type sampleReader struct {
	samples <-chan float64
}

func (r *sampleReader) Read(buf []byte) (int, error) {
	frameSize := channelCount * bitDepth
	n := len(buf) / frameSize
	for i := 0; i < n; i++ {
		sample, ok := <-r.samples
		if !ok {
			return i * frameSize, io.EOF
		}
		writeFrame(buf[i*frameSize:], sample)
	}
	return n * frameSize, nil
}

func writeFrame(buf []byte, sample float64) {
	switch {
	case sample > 1:
		sample = 1
	case sample < -1:
		sample = -1
	}
	v := int16(sample * 0x7FFF)
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v)
	buf[3] = byte(v >> 8)
}

// Enqueue hands a command to the underlying controller. Never blocks.
func (s *Synth) Enqueue(cmd control.Command) { s.tools.Enqueue(cmd) }

// View exposes the controller's best-effort GUI snapshot channel.
func (s *Synth) View() <-chan control.View { return s.tools.View() }

// NoteOn is a convenience wrapper for producers (MIDI, keyboard) addressing notes by raw
// pitch/velocity/id rather than building a control.NoteOnCmd by hand.
func (s *Synth) NoteOn(pitch theory.Pitch, velocity float64, id control.Id) {
	s.Enqueue(control.NoteOnCmd{Pitch: pitch, Velocity: velocity, Id: id})
}

// NoteOff is the NoteOn counterpart.
func (s *Synth) NoteOff(id control.Id) {
	s.Enqueue(control.NoteOffCmd{Id: id})
}

// AllNotesOff releases every voice directly, bypassing the command queue's per-id
// bookkeeping — used for a MIDI "all notes off" CC or a panic button.
func (s *Synth) AllNotesOff() {
	s.tools.ReleaseAll()
}

// PlayPump drives any Pump (score.Player, in particular) through an oto playback stream
// until its Run returns or ctx is cancelled, blocking until playback finishes. Unlike
// Synth, which stays alive answering Enqueue/View calls from a live performer, a score
// has no further input once it starts, so there's nothing to return but the error.
func PlayPump(ctx context.Context, pump Pump, sampleRate int) error {
	_, cancel, done, err := start(pump, sampleRate)
	if err != nil {
		return err
	}
	defer cancel()
	select {
	case runErr := <-done:
		if runErr != nil && runErr != context.Canceled && runErr != io.EOF {
			return fmt.Errorf("audio: pump shutdown: %w", runErr)
		}
		return nil
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

// Close stops the pump's goroutine and waits for it to exit. The oto player has no
// explicit close in v3.4; it's reclaimed once playback stops.
func (s *Synth) Close() error {
	s.cancel()
	err := <-s.done
	if err != nil && err != context.Canceled {
		return fmt.Errorf("audio: pump shutdown: %w", err)
	}
	return nil
}
