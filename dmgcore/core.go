// Package dmgcore is the root facade: it wires together the cartridge,
// bus, and CPU into a single emulation core and exposes the stepping API
// host programs (a CLI, a debugger, a test harness) drive.
package dmgcore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kalunga-dev/dmgcore/bus"
	"github.com/kalunga-dev/dmgcore/cartridge"
	"github.com/kalunga-dev/dmgcore/cpu"
)

// Emulator is the root struct and entry point for running the core.
type Emulator struct {
	cpu *cpu.CPU
	bus *bus.Bus

	logger *slog.Logger

	cycles uint64
}

// Option configures an Emulator at construction time.
type Option func(*Emulator)

// WithLogger overrides the default slog.Logger used for bus/cartridge
// diagnostics (header checksum mismatches, unimplemented mappers, serial
// output).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Emulator) { e.logger = logger }
}

// New returns an Emulator with no cartridge loaded. LoadROM or
// LoadROMBytes must be called before Step runs anything meaningful.
func New(opts ...Option) *Emulator {
	e := &Emulator{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	e.bus = bus.New(e.logger)
	e.cpu = cpu.New(e.bus)
	e.cpu.Reset()

	return e
}

// LoadROM reads path and installs it as the active cartridge.
func (e *Emulator) LoadROM(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("dmgcore: read rom: %w", err)
	}
	return e.LoadROMBytes(data)
}

// LoadROMBytes parses rom's header and installs it as the active
// cartridge, resetting the core to its post-boot-ROM state.
func (e *Emulator) LoadROMBytes(rom []byte) error {
	cart, err := cartridge.New(rom)
	if err != nil {
		return fmt.Errorf("dmgcore: load cartridge: %w", err)
	}
	if !cart.Header.ChecksumOK() {
		e.logger.Warn("cartridge header checksum mismatch", "title", cart.Header.Title)
	}

	e.bus.LoadCartridge(cart)
	e.Reset()

	e.logger.Info("cartridge loaded",
		"title", cart.Header.Title,
		"type", cart.Header.Type,
		"rom_bytes", len(rom))

	return nil
}

// Reset brings the CPU and bus back to their post-boot-ROM state. The
// cartridge is not reloaded.
func (e *Emulator) Reset() {
	e.bus.Reset()
	e.cpu.Reset()
	e.cycles = 0
}

// Step advances the core by exactly one machine cycle.
func (e *Emulator) Step() {
	e.cpu.StepMachineCycle()
	e.cycles++
}

// StepInstruction runs machine cycles until the CPU retires a complete
// instruction, interrupt dispatch, or HALT-idle cycle (or until a fatal
// condition is reached), returning the number of machine cycles consumed.
func (e *Emulator) StepInstruction() uint64 {
	before := e.cpu.Cycles()

	e.Step()
	for e.cpu.Fatal() == nil && e.cpu.CyclesLeft() > 0 {
		e.Step()
	}

	return e.cpu.Cycles() - before
}

// Run steps the core for exactly n machine cycles or until a fatal
// condition is reached, whichever comes first.
func (e *Emulator) Run(n uint64) error {
	for i := uint64(0); i < n; i++ {
		if err := e.cpu.Fatal(); err != nil {
			return err
		}
		e.Step()
	}
	return e.Fatal()
}

// Fatal returns the error that halted execution, or nil.
func (e *Emulator) Fatal() error {
	if err := e.cpu.Fatal(); err != nil {
		return err
	}
	return nil
}

// Cycles returns the total number of machine cycles executed since the
// last Reset.
func (e *Emulator) Cycles() uint64 { return e.cpu.Cycles() }

// PC returns the current program counter, for debug tooling.
func (e *Emulator) PC() uint16 { return e.cpu.PC() }

// SP returns the current stack pointer, for debug tooling.
func (e *Emulator) SP() uint16 { return e.cpu.SP() }

// ReadByte reads a single byte from the full address space, for debug
// tooling (a memory viewer, a test harness asserting on RAM contents).
func (e *Emulator) ReadByte(addr uint16) uint8 { return e.bus.ReadByte(addr) }

// WriteByte writes a single byte to the full address space, for debug
// tooling (poking a test ROM's state directly).
func (e *Emulator) WriteByte(addr uint16, v uint8) { e.bus.WriteByte(addr, v) }

// Disassemble returns the mnemonic of the opcode at addr without
// advancing execution, by reading its first byte (and, for CB-prefixed
// opcodes, its second) straight off the bus.
func (e *Emulator) Disassemble(addr uint16) string {
	op := e.bus.ReadByte(addr)
	if op == 0xCB {
		return cpu.Decode(0xCB00 | uint16(e.bus.ReadByte(addr+1))).Mnemonic
	}
	return cpu.Decode(uint16(op)).Mnemonic
}
