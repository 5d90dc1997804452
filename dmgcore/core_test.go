package dmgcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildROM(program ...byte) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0134:0x0144], "TESTROM")
	rom[0x0147] = 0x00 // ROM ONLY
	rom[0x0149] = 0x00 // no external RAM

	var sum uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	rom[0x014D] = sum

	copy(rom[0x0100:], program)
	return rom
}

func TestLoadROMBytesResetsToPostBootState(t *testing.T) {
	e := New()
	err := e.LoadROMBytes(buildROM(0x00))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0100), e.PC())
}

func TestStepInstructionRunsLDBC(t *testing.T) {
	e := New()
	assert.NoError(t, e.LoadROMBytes(buildROM(0x01, 0x34, 0x12))) // LD BC,0x1234

	cycles := e.StepInstruction()

	assert.Equal(t, uint64(3), cycles)
	assert.Equal(t, uint16(0x0103), e.PC())
}

func TestRunStopsOnFatalIllegalOpcode(t *testing.T) {
	e := New()
	assert.NoError(t, e.LoadROMBytes(buildROM(0xD3)))

	err := e.Run(10)

	assert.Error(t, err)
	assert.Equal(t, err, e.Fatal())
}

func TestDisassembleReadsMnemonicWithoutAdvancing(t *testing.T) {
	e := New()
	assert.NoError(t, e.LoadROMBytes(buildROM(0xCB, 0x37))) // SWAP A

	mnemonic := e.Disassemble(0x0100)

	assert.Equal(t, "SWAP A", mnemonic)
	assert.Equal(t, uint16(0x0100), e.PC(), "disassembly must not move PC")
}
