package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDIVIncrementsOnTick(t *testing.T) {
	tm := New()
	tm.Tick()
	assert.Equal(t, uint8(0), tm.DIV())
	for i := 0; i < 64; i++ {
		tm.Tick()
	}
	assert.Equal(t, uint8(1), tm.DIV())
}

func TestWriteDIVResets(t *testing.T) {
	tm := New()
	for i := 0; i < 300; i++ {
		tm.Tick()
	}
	assert.NotEqual(t, uint8(0), tm.DIV())
	tm.WriteDIV()
	assert.Equal(t, uint8(0), tm.DIV())
}

func TestTIMAIncrementsOnFallingEdge(t *testing.T) {
	tm := New()
	tm.WriteTAC(0x05) // enabled, selector 01 -> bit 3, period 4 M-cycles
	for i := 0; i < 4; i++ {
		tm.Tick()
	}
	assert.Equal(t, uint8(1), tm.TIMA())
}

func TestTIMAOverflowReloadsAfterFourCycles(t *testing.T) {
	tm := New()
	interrupted := false
	tm.RequestInterrupt = func() { interrupted = true }
	tm.WriteTAC(0x05)
	tm.WriteTMA(0xAB)
	tm.WriteTIMA(0xFF)

	for i := 0; i < 4; i++ {
		tm.Tick()
	}
	assert.Equal(t, uint8(0), tm.TIMA(), "TIMA reads 0 during the overflow window")
	assert.False(t, interrupted)

	for i := 0; i < 4; i++ {
		tm.Tick()
	}
	assert.Equal(t, uint8(0xAB), tm.TIMA())
	assert.True(t, interrupted)
}

func TestWriteTIMADuringOverflowCancelsReload(t *testing.T) {
	tm := New()
	interrupted := false
	tm.RequestInterrupt = func() { interrupted = true }
	tm.WriteTAC(0x05)
	tm.WriteTMA(0xAB)
	tm.WriteTIMA(0xFF)

	for i := 0; i < 4; i++ {
		tm.Tick()
	}
	tm.WriteTIMA(0x10)

	for i := 0; i < 3; i++ {
		tm.Tick()
	}
	assert.False(t, interrupted)
	assert.Equal(t, uint8(0x10), tm.TIMA())
}

func TestScenarioD_TimerOverflowAndInterrupt(t *testing.T) {
	tm := New()
	var fired int
	tm.RequestInterrupt = func() { fired++ }
	tm.WriteTAC(0x05)
	tm.WriteTMA(0xAB)
	tm.WriteTIMA(0xFF)

	for i := 0; i < 8; i++ {
		tm.Tick()
	}

	assert.Equal(t, uint8(0xAB), tm.TIMA())
	assert.Equal(t, 1, fired)
}

func TestDisablingTACDuringHighMuxBitIncrementsTIMA(t *testing.T) {
	tm := New()
	tm.WriteTAC(0x04) // enabled, selector 00 -> bit 9
	// bit 9 of div16 requires div16 >= 512, i.e. 128 ticks of +4.
	for i := 0; i < 128; i++ {
		tm.Tick()
	}
	assert.Equal(t, uint8(0), tm.TIMA())
	tm.WriteTAC(0x00) // disable while mux bit is high: falling edge
	assert.Equal(t, uint8(1), tm.TIMA())
}
