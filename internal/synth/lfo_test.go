package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLFOOutputStaysWithinAmount(t *testing.T) {
	lfo := NewLFO(LFOSpecs{OscKind: Sine, Freq: 5, Amount: 0.4, Target: FilterCutoff})
	for i := 0; i < 1000; i++ {
		v := lfo.Tick(1.0 / 48000)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 0.4)
	}
}

func TestLFOAmountClamped(t *testing.T) {
	lfo := NewLFO(LFOSpecs{OscKind: Sine, Freq: 5, Amount: 3, Target: Volume})
	assert.Equal(t, 1.0, lfo.amount)
}

func TestLFOTarget(t *testing.T) {
	lfo := NewLFO(LFOSpecs{OscKind: Square, Freq: 1, Amount: 1, Target: OscPulseDuty})
	assert.Equal(t, OscPulseDuty, lfo.Target())
}
