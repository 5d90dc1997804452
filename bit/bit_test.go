package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetClear(t *testing.T) {
	assert.Equal(t, uint8(0b0001_0000), Set(4, 0))
	assert.Equal(t, uint8(0b1110_1111), Clear(4, 0xFF))
}

func TestIsSet(t *testing.T) {
	assert.True(t, IsSet(0, 0x01))
	assert.False(t, IsSet(1, 0x01))
	assert.True(t, IsSet16(9, 0x0200))
	assert.False(t, IsSet16(9, 0x0100))
}

func TestSetTo(t *testing.T) {
	assert.Equal(t, uint8(0x01), SetTo(0, 0x00, true))
	assert.Equal(t, uint8(0x00), SetTo(0, 0x01, false))
}

func TestCombineSplit(t *testing.T) {
	v := Combine(0x12, 0x34)
	assert.Equal(t, uint16(0x1234), v)
	assert.Equal(t, uint8(0x12), High(v))
	assert.Equal(t, uint8(0x34), Low(v))
}

func TestExtract(t *testing.T) {
	assert.Equal(t, uint8(0b11), Extract(0b1110_0000, 7, 6))
	assert.Equal(t, uint8(0b101), Extract(0b0010_1000, 5, 3))
}
