package cpu

import "github.com/kalunga-dev/dmgcore/addr"

// StepMachineCycle advances the CPU by exactly one machine cycle. The bus
// is ticked on every call, whether this cycle fetches an instruction,
// executes one already in flight, dispatches an interrupt, or sits idle in
// HALT/STOP; once a fatal condition is recorded the call returns without
// doing anything.
func (c *CPU) StepMachineCycle() {
	if c.fatal != nil {
		return
	}

	if c.cyclesLeft == 0 {
		c.boundary()
	} else {
		c.cyclesLeft--
	}

	c.bus.Tick()
	c.cycles++

	if busErr := c.bus.Fatal(); busErr != nil && c.fatal == nil {
		c.fatal = &FatalError{Reason: busErr.Error(), PC: c.pc, Opcode: c.currentOpcode}
	}
}

// boundary runs at the start of a new instruction: it resolves the
// pending EI delay, checks for a deliverable interrupt, and otherwise
// fetches and executes the next opcode. cyclesLeft is set to the
// instruction's total M-cycle cost minus the one consumed by this call.
func (c *CPU) boundary() {
	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.ime = true
		}
	}

	pending := c.bus.InterruptPending()

	if c.halted && pending != 0 {
		c.halted = false
	}

	if c.halted {
		return
	}

	if c.ime && pending != 0 {
		c.cyclesLeft = c.dispatchInterrupt(pending) - 1
		return
	}

	c.fetchAndExecute()
}

// dispatchInterrupt services the highest-priority pending interrupt: it
// costs 5 M-cycles (two internal, a PC push, and a vector load).
func (c *CPU) dispatchInterrupt(pending uint8) uint8 {
	index := lowestSetBit(pending)
	c.bus.ClearInterrupt(index)
	c.ime = false
	c.pushStack(c.pc)
	c.pc = addr.Vector(index)
	return 5
}

func lowestSetBit(v uint8) uint8 {
	for i := uint8(0); i < 8; i++ {
		if v&(1<<i) != 0 {
			return i
		}
	}
	return 0
}

func (c *CPU) fetchAndExecute() {
	var opcodeByte uint8
	if c.haltBug {
		opcodeByte = c.bus.ReadByte(c.pc)
		c.haltBug = false
	} else {
		opcodeByte = c.readImmediate()
	}

	if opcodeByte == 0xCB {
		cb := c.readImmediate()
		c.currentOpcode = 0xCB00 | uint16(cb)
		c.cyclesLeft = c.execCB(cb) - 1
		return
	}

	c.currentOpcode = uint16(opcodeByte)
	if illegalOpcodes[opcodeByte] {
		c.fail("illegal opcode")
		return
	}
	c.cyclesLeft = c.execUnprefixed(opcodeByte) - 1
}
