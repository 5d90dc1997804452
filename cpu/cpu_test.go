package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetSetsPostBootRegisters(t *testing.T) {
	c, _ := newRunning()
	assert.Equal(t, uint16(0x0100), c.PC())
	assert.Equal(t, uint16(0xFFFE), c.SP())
	assert.Equal(t, uint8(0x01), c.A())
	assert.False(t, c.IME())
}

func TestFlagLowNibbleAlwaysZero(t *testing.T) {
	c, _ := newRunning()
	c.setFlag(FlagZero, true)
	c.setFlag(FlagCarry, true)
	assert.Equal(t, uint8(0), c.F()&0x0F)
}

func TestPushPopStackByteOrder(t *testing.T) {
	c, bus := newRunning()
	c.sp = 0xFFFE
	c.pushStack(0x1234)

	assert.Equal(t, uint16(0xFFFC), c.sp)
	assert.Equal(t, uint8(0x34), bus.ReadByte(0xFFFC), "low byte at the final, lower SP address")
	assert.Equal(t, uint8(0x12), bus.ReadByte(0xFFFD), "high byte above it")

	v := c.popStack()
	assert.Equal(t, uint16(0x1234), v)
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

func TestPopAFMasksLowNibbleToZero(t *testing.T) {
	c, bus := newRunning()
	c.sp = 0xFFFC
	bus.WriteByte(0xFFFC, 0xFF)
	bus.WriteByte(0xFFFD, 0x12)

	c.setReg16stk(3, c.popStack())

	assert.Equal(t, uint8(0x12), c.A())
	assert.Equal(t, uint8(0xF0), c.F())
}
