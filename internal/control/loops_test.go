package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopRecordsThenPlaysBack(t *testing.T) {
	lm := NewLoopManager(2)
	lm.ToggleRecording(0)
	lm.Write(1.0)
	lm.Write(2.0)
	lm.Write(3.0)
	lm.ToggleRecording(0)

	lm.TogglePlayback(0)
	assert.Equal(t, 1.0, lm.NextSample())
	assert.Equal(t, 2.0, lm.NextSample())
	assert.Equal(t, 3.0, lm.NextSample())
	assert.Equal(t, 1.0, lm.NextSample()) // wraps
}

func TestOnlyOneLoopRecordsAtATime(t *testing.T) {
	lm := NewLoopManager(2)
	lm.ToggleRecording(0)
	lm.ToggleRecording(1)
	assert.False(t, lm.Loop(0).recording)
	assert.True(t, lm.Loop(1).recording)
}

func TestStartingRecordingClearsPreviousSamples(t *testing.T) {
	lm := NewLoopManager(1)
	lm.ToggleRecording(0)
	lm.Write(5.0)
	lm.ToggleRecording(0) // stop

	lm.ToggleRecording(0) // start again
	assert.Empty(t, lm.Loop(0).recordBuf)
}

func TestLoopsPlayIndependentlyAndSumWhenOverlapping(t *testing.T) {
	lm := NewLoopManager(2)
	lm.ToggleRecording(0)
	lm.Write(1.0)
	lm.ToggleRecording(0)

	lm.ToggleRecording(1)
	lm.Write(10.0)
	lm.ToggleRecording(1)

	lm.TogglePlayback(0)
	lm.TogglePlayback(1)
	assert.Equal(t, 11.0, lm.NextSample())
}

func TestNonRecordingLoopsUnaffectedByWrite(t *testing.T) {
	lm := NewLoopManager(2)
	lm.ToggleRecording(0)
	lm.Write(1.0)
	lm.ToggleRecording(0)

	assert.Empty(t, lm.Loop(1).recordBuf)
}

func TestRecordingOverSlotDoesNotCorruptItsOwnPlayback(t *testing.T) {
	lm := NewLoopManager(1)
	lm.ToggleRecording(0)
	lm.Write(1.0)
	lm.Write(2.0)
	lm.ToggleRecording(0) // stop: playBuf = [1.0, 2.0]

	lm.TogglePlayback(0)
	assert.Equal(t, 1.0, lm.NextSample())

	// Starting a new recording on the same slot must not truncate the buffer the
	// still-active playback above is reading from.
	lm.ToggleRecording(0)
	assert.Equal(t, 2.0, lm.NextSample())
	assert.Equal(t, 1.0, lm.NextSample()) // wraps against the old snapshot

	lm.Write(9.0)
	lm.ToggleRecording(0) // stop: playBuf swaps to [9.0]
	assert.Equal(t, 9.0, lm.NextSample())
}

func TestTogglePlaybackResetsPosition(t *testing.T) {
	lm := NewLoopManager(1)
	lm.ToggleRecording(0)
	lm.Write(1.0)
	lm.Write(2.0)
	lm.ToggleRecording(0)

	lm.TogglePlayback(0)
	lm.NextSample()
	lm.TogglePlayback(0) // stop
	lm.TogglePlayback(0) // start again, resets to pos 0
	assert.Equal(t, 1.0, lm.NextSample())
}

func TestTogglePlaybackOnEmptySlotIsNoOp(t *testing.T) {
	lm := NewLoopManager(1)
	lm.TogglePlayback(0)
	assert.False(t, lm.Loop(0).playing)
	assert.Equal(t, 0.0, lm.NextSample())
}
