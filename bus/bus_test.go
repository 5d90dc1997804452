package bus

import (
	"testing"

	"github.com/kalunga-dev/dmgcore/cartridge"
	"github.com/stretchr/testify/assert"
)

func romOnlyCartridge(t *testing.T) *cartridge.Cartridge {
	t.Helper()
	rom := make([]byte, 0x8000)
	rom[0x0147] = 0x00 // ROM ONLY
	var sum uint8
	for a := 0x0134; a <= 0x014C; a++ {
		sum = sum - rom[a] - 1
	}
	rom[0x014D] = sum
	c, err := cartridge.New(rom)
	assert.NoError(t, err)
	return c
}

func TestWRAMRoundTrip(t *testing.T) {
	b := New(nil)
	b.LoadCartridge(romOnlyCartridge(t))
	b.WriteByte(0xC123, 0x42)
	assert.Equal(t, uint8(0x42), b.ReadByte(0xC123))
}

func TestHRAMRoundTrip(t *testing.T) {
	b := New(nil)
	b.WriteByte(0xFF90, 0x7E)
	assert.Equal(t, uint8(0x7E), b.ReadByte(0xFF90))
}

func TestEchoRAMMirrorsWRAM(t *testing.T) {
	// Scenario G
	b := New(nil)
	b.WriteByte(0xC123, 0x42)
	assert.Equal(t, uint8(0x42), b.ReadByte(0xE123))

	b.WriteByte(0xE123, 0x99)
	assert.Equal(t, uint8(0x99), b.ReadByte(0xC123))
}

func TestUnmappedRegionReadsFF(t *testing.T) {
	b := New(nil)
	assert.Equal(t, uint8(0xFF), b.ReadByte(0xFEA0))
	b.WriteByte(0xFEA0, 0x42) // ignored
	assert.Equal(t, uint8(0xFF), b.ReadByte(0xFEA0))
}

func TestOAMRoundTrip(t *testing.T) {
	b := New(nil)
	b.WriteByte(0xFE10, 0x55)
	assert.Equal(t, uint8(0x55), b.ReadByte(0xFE10))
}

func TestIFUpperBitsReadAsOne(t *testing.T) {
	b := New(nil)
	assert.Equal(t, uint8(0xE0), b.ReadByte(0xFF0F))
}

func TestDMATransferCopiesToOAM(t *testing.T) {
	b := New(nil)
	b.LoadCartridge(romOnlyCartridge(t))
	for i := uint16(0); i < 0xA0; i++ {
		b.WriteByte(0xC000+i, uint8(i))
	}
	b.WriteByte(0xFF46, 0xC0)
	for i := uint16(0); i < 0xA0; i++ {
		assert.Equal(t, uint8(i), b.ReadByte(0xFE00+i))
	}
}

func TestTimerPortsForwardToTimer(t *testing.T) {
	b := New(nil)
	b.WriteByte(0xFF07, 0x05)
	b.WriteByte(0xFF06, 0xAB)
	b.WriteByte(0xFF05, 0xFF)
	for i := 0; i < 8; i++ {
		b.Tick()
	}
	assert.Equal(t, uint8(0xAB), b.ReadByte(0xFF05))
	assert.Equal(t, uint8(0x04), b.ReadByte(0xFF0F)&0x04)
}

func TestMapperNotImplementedSetsFatal(t *testing.T) {
	b := New(nil)
	rom := make([]byte, 0x8000)
	rom[0x0147] = 0x01 // MBC1
	var sum uint8
	for a := 0x0134; a <= 0x014C; a++ {
		sum = sum - rom[a] - 1
	}
	rom[0x014D] = sum
	c, err := cartridge.New(rom)
	assert.NoError(t, err)
	b.LoadCartridge(c)

	b.WriteByte(0x2000, 0x01)
	assert.Error(t, b.Fatal())
}
