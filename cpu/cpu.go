// Package cpu implements the SM83 instruction set: register file,
// fetch/decode/execute, machine-cycle accounting, and interrupt/HALT/STOP
// handling.
package cpu

import "fmt"

// MemoryBus is the narrow surface the CPU needs from the bus. bus.Bus
// satisfies it; tests may supply a lighter fake.
type MemoryBus interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, value uint8)
	Tick()
	InterruptPending() uint8
	ClearInterrupt(index uint8)
	Fatal() error
}

// Flag is one bit of the F register.
type Flag uint8

const (
	FlagZero      Flag = 1 << 7
	FlagSub       Flag = 1 << 6
	FlagHalfCarry Flag = 1 << 5
	FlagCarry     Flag = 1 << 4
)

// FatalError reports an unrecoverable condition raised during execution
// (an illegal opcode or a bus-level fatal write). StepMachineCycle records
// the first one and exposes it through Fatal; once it is set, further
// StepMachineCycle calls do nothing.
type FatalError struct {
	Reason string
	PC     uint16
	Opcode uint16
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("cpu: %s (pc=0x%04X opcode=0x%04X)", e.Reason, e.PC, e.Opcode)
}

// CPU holds the SM83 register file and execution state machine.
type CPU struct {
	a, f, b, c, d, e, h, l uint8
	sp, pc                 uint16

	bus MemoryBus

	ime      bool
	eiDelay  uint8
	halted   bool
	stopped  bool
	haltBug  bool

	cyclesLeft uint8
	cycles     uint64 // total M-cycles executed, for diagnostics/tests

	currentOpcode uint16 // 0x00-0xFF unprefixed, 0xCB00-0xCBFF CB-prefixed

	fatal *FatalError
}

// New returns a CPU wired to bus, with registers zeroed. Call Reset to
// bring it to post-boot-ROM state.
func New(bus MemoryBus) *CPU {
	return &CPU{bus: bus}
}

// Reset sets registers to their documented post-boot values and clears
// interrupt/halt state.
func (c *CPU) Reset() {
	c.setAF(0x01B0)
	c.setBC(0x0013)
	c.setDE(0x00D8)
	c.setHL(0x014D)
	c.sp = 0xFFFE
	c.pc = 0x0100

	c.ime = false
	c.eiDelay = 0
	c.halted = false
	c.stopped = false
	c.haltBug = false
	c.cyclesLeft = 0
	c.cycles = 0
	c.currentOpcode = 0
	c.fatal = nil
}

// Fatal returns the error that halted execution, or nil.
func (c *CPU) Fatal() *FatalError { return c.fatal }

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the stack pointer.
func (c *CPU) SP() uint16 { return c.sp }

// IME returns the master interrupt enable flag.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is in the HALT/STOP wait state.
func (c *CPU) Halted() bool { return c.halted }

// Cycles returns the total number of machine cycles executed since the
// last Reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// CyclesLeft returns the number of machine cycles still owed by the
// instruction currently in flight. Zero means the next StepMachineCycle
// call will fetch a new instruction or service a pending interrupt.
func (c *CPU) CyclesLeft() uint8 { return c.cyclesLeft }

// A returns the accumulator.
func (c *CPU) A() uint8 { return c.a }

// F returns the flag register.
func (c *CPU) F() uint8 { return c.f }

func (c *CPU) af() uint16 { return combine(c.a, c.f) }
func (c *CPU) bc() uint16 { return combine(c.b, c.c) }
func (c *CPU) de() uint16 { return combine(c.d, c.e) }
func (c *CPU) hl() uint16 { return combine(c.h, c.l) }

func (c *CPU) setAF(v uint16) { c.a, c.f = high(v), low(v)&0xF0 }
func (c *CPU) setBC(v uint16) { c.b, c.c = high(v), low(v) }
func (c *CPU) setDE(v uint16) { c.d, c.e = high(v), low(v) }
func (c *CPU) setHL(v uint16) { c.h, c.l = high(v), low(v) }

func combine(hi, lo uint8) uint16 { return uint16(hi)<<8 | uint16(lo) }
func high(v uint16) uint8         { return uint8(v >> 8) }
func low(v uint16) uint8          { return uint8(v & 0xFF) }

func (c *CPU) hasFlag(f Flag) bool { return c.f&uint8(f) != 0 }

func (c *CPU) setFlag(f Flag, v bool) {
	if v {
		c.f |= uint8(f)
	} else {
		c.f &^= uint8(f)
	}
	c.f &= 0xF0
}

// ReadByte exposes the bus for debug tooling.
func (c *CPU) ReadByte(addr uint16) uint8 { return c.bus.ReadByte(addr) }

// WriteByte exposes the bus for debug tooling.
func (c *CPU) WriteByte(addr uint16, v uint8) { c.bus.WriteByte(addr, v) }

// readImmediate reads the byte at PC and advances PC by one.
func (c *CPU) readImmediate() uint8 {
	v := c.bus.ReadByte(c.pc)
	c.pc++
	return v
}

// readImmediateWord reads the little-endian word at PC and advances PC by
// two.
func (c *CPU) readImmediateWord() uint16 {
	lo := c.readImmediate()
	hi := c.readImmediate()
	return combine(hi, lo)
}

// readSignedImmediate reads a signed 8-bit displacement and advances PC.
func (c *CPU) readSignedImmediate() int8 {
	return int8(c.readImmediate())
}

// pushStack pushes v onto the stack, high byte first, matching real SM83
// hardware (the low byte ends up at the final, lower SP address).
func (c *CPU) pushStack(v uint16) {
	c.sp--
	c.bus.WriteByte(c.sp, high(v))
	c.sp--
	c.bus.WriteByte(c.sp, low(v))
}

// popStack pops a word off the stack, low byte first.
func (c *CPU) popStack() uint16 {
	lo := c.bus.ReadByte(c.sp)
	c.sp++
	hi := c.bus.ReadByte(c.sp)
	c.sp++
	return combine(hi, lo)
}

func (c *CPU) fail(reason string) {
	if c.fatal == nil {
		c.fatal = &FatalError{Reason: reason, PC: c.pc, Opcode: c.currentOpcode}
	}
}
