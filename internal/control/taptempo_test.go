package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTapTempoFirstTapHasNoReading(t *testing.T) {
	var tt TapTempo
	tt.Tap(time.Unix(0, 0))
	_, ok := tt.Read()
	assert.False(t, ok)
}

func TestTapTempoSecondTapReads(t *testing.T) {
	var tt TapTempo
	base := time.Unix(0, 0)
	tt.Tap(base)
	tt.Tap(base.Add(500 * time.Millisecond))
	d, ok := tt.Read()
	assert.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestTapTempoSlidesWindow(t *testing.T) {
	var tt TapTempo
	base := time.Unix(0, 0)
	tt.Tap(base)
	tt.Tap(base.Add(500 * time.Millisecond))
	tt.Tap(base.Add(1100 * time.Millisecond))
	d, ok := tt.Read()
	assert.True(t, ok)
	assert.Equal(t, 600*time.Millisecond, d)
}
