package interrupt

import (
	"testing"

	"github.com/kalunga-dev/dmgcore/addr"
	"github.com/stretchr/testify/assert"
)

func TestRequestAndClear(t *testing.T) {
	c := New()
	c.Request(addr.TimerInterrupt)
	assert.Equal(t, uint8(0x04), c.f)
	c.Clear(addr.TimerInterrupt)
	assert.Equal(t, uint8(0x00), c.f)
}

func TestIFReadsUpperBitsSet(t *testing.T) {
	c := New()
	assert.Equal(t, uint8(0xE0), c.IF())
	c.SetIF(0x1F)
	assert.Equal(t, uint8(0xFF), c.IF())
}

func TestPending(t *testing.T) {
	c := New()
	c.SetIE(0x05)
	c.SetIF(0x07)
	assert.Equal(t, uint8(0x05), c.Pending())
}

func TestSetIFMasksUnusedBits(t *testing.T) {
	c := New()
	c.SetIF(0xFF)
	assert.Equal(t, uint8(0x1F), c.f)
}
