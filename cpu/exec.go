package cpu

// execUnprefixed performs the full effect of an unprefixed opcode
// (already consumed from the instruction stream) and returns the actual
// number of M-cycles it took, accounting for conditional mispredicts.
func (c *CPU) execUnprefixed(op uint8) uint8 {
	switch {
	case op == 0x76:
		return c.opHALT()
	case op >= 0x40 && op <= 0x7F:
		dst := (op >> 3) & 7
		src := op & 7
		c.setReg8(dst, c.reg8(src))
		return unprefixedTable[op].Cycles
	case op >= 0x80 && op <= 0xBF:
		aluOp := (op >> 3) & 7
		src := op & 7
		c.applyALU(aluOp, c.reg8(src))
		return unprefixedTable[op].Cycles
	}

	switch op {
	case 0x00:
		return 1

	case 0x01, 0x11, 0x21, 0x31:
		c.setReg16sp((op>>4)&3, c.readImmediateWord())
		return 3
	case 0x03, 0x13, 0x23, 0x33:
		idx := (op >> 4) & 3
		c.setReg16sp(idx, c.reg16sp(idx)+1)
		return 2
	case 0x0B, 0x1B, 0x2B, 0x3B:
		idx := (op >> 4) & 3
		c.setReg16sp(idx, c.reg16sp(idx)-1)
		return 2
	case 0x09, 0x19, 0x29, 0x39:
		c.addHL(c.reg16sp((op >> 4) & 3))
		return 2

	case 0x02:
		c.bus.WriteByte(c.bc(), c.a)
		return 2
	case 0x12:
		c.bus.WriteByte(c.de(), c.a)
		return 2
	case 0x22:
		c.bus.WriteByte(c.hl(), c.a)
		c.setHL(c.hl() + 1)
		return 2
	case 0x32:
		c.bus.WriteByte(c.hl(), c.a)
		c.setHL(c.hl() - 1)
		return 2
	case 0x0A:
		c.a = c.bus.ReadByte(c.bc())
		return 2
	case 0x1A:
		c.a = c.bus.ReadByte(c.de())
		return 2
	case 0x2A:
		c.a = c.bus.ReadByte(c.hl())
		c.setHL(c.hl() + 1)
		return 2
	case 0x3A:
		c.a = c.bus.ReadByte(c.hl())
		c.setHL(c.hl() - 1)
		return 2

	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C:
		r := (op >> 3) & 7
		c.setReg8(r, c.inc8(c.reg8(r)))
		if r == 6 {
			return 3
		}
		return 1
	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D:
		r := (op >> 3) & 7
		c.setReg8(r, c.dec8(c.reg8(r)))
		if r == 6 {
			return 3
		}
		return 1
	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E:
		r := (op >> 3) & 7
		c.setReg8(r, c.readImmediate())
		if r == 6 {
			return 3
		}
		return 2

	case 0x07:
		c.a = c.rlc(c.a)
		c.setFlag(FlagZero, false)
		return 1
	case 0x0F:
		c.a = c.rrc(c.a)
		c.setFlag(FlagZero, false)
		return 1
	case 0x17:
		c.a = c.rl(c.a)
		c.setFlag(FlagZero, false)
		return 1
	case 0x1F:
		c.a = c.rr(c.a)
		c.setFlag(FlagZero, false)
		return 1

	case 0x08:
		addr16 := c.readImmediateWord()
		c.bus.WriteByte(addr16, low(c.sp))
		c.bus.WriteByte(addr16+1, high(c.sp))
		return 5

	case 0x10:
		c.readImmediate() // STOP's second byte, conventionally 0x00
		c.stopped = true
		c.halted = true
		return 1

	case 0x18:
		return c.jr(true)
	case 0x20, 0x28, 0x30, 0x38:
		return c.jr(c.condition((op >> 3) & 3))

	case 0x27:
		c.daa()
		return 1
	case 0x2F:
		c.a = ^c.a
		c.setFlag(FlagSub, true)
		c.setFlag(FlagHalfCarry, true)
		return 1
	case 0x37:
		c.setFlag(FlagSub, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, true)
		return 1
	case 0x3F:
		c.setFlag(FlagSub, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, !c.hasFlag(FlagCarry))
		return 1

	case 0xC6:
		c.add(c.readImmediate())
		return 2
	case 0xCE:
		c.adc(c.readImmediate())
		return 2
	case 0xD6:
		c.sub(c.readImmediate())
		return 2
	case 0xDE:
		c.sbc(c.readImmediate())
		return 2
	case 0xE6:
		c.and(c.readImmediate())
		return 2
	case 0xEE:
		c.xor(c.readImmediate())
		return 2
	case 0xF6:
		c.or(c.readImmediate())
		return 2
	case 0xFE:
		c.cp(c.readImmediate())
		return 2

	case 0xC1, 0xD1, 0xE1, 0xF1:
		c.setReg16stk((op>>4)&3, c.popStack())
		return 3
	case 0xC5, 0xD5, 0xE5, 0xF5:
		c.pushStack(c.reg16stk((op >> 4) & 3))
		return 4

	case 0xC0, 0xC8, 0xD0, 0xD8:
		return c.retCond(c.condition((op >> 3) & 3))
	case 0xC9:
		c.pc = c.popStack()
		return 4
	case 0xD9:
		c.pc = c.popStack()
		c.ime = true
		return 4

	case 0xC2, 0xCA, 0xD2, 0xDA:
		return c.jpCond(c.condition((op >> 3) & 3))
	case 0xC3:
		c.pc = c.readImmediateWord()
		return 4
	case 0xE9:
		c.pc = c.hl()
		return 1

	case 0xC4, 0xCC, 0xD4, 0xDC:
		return c.callCond(c.condition((op >> 3) & 3))
	case 0xCD:
		return c.callCond(true)

	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		c.pushStack(c.pc)
		c.pc = uint16(op & 0x38)
		return 4

	case 0xE0:
		a := 0xFF00 + uint16(c.readImmediate())
		c.bus.WriteByte(a, c.a)
		return 3
	case 0xF0:
		a := 0xFF00 + uint16(c.readImmediate())
		c.a = c.bus.ReadByte(a)
		return 3
	case 0xE2:
		c.bus.WriteByte(0xFF00+uint16(c.c), c.a)
		return 2
	case 0xF2:
		c.a = c.bus.ReadByte(0xFF00 + uint16(c.c))
		return 2
	case 0xEA:
		c.bus.WriteByte(c.readImmediateWord(), c.a)
		return 4
	case 0xFA:
		c.a = c.bus.ReadByte(c.readImmediateWord())
		return 4

	case 0xE8:
		c.sp = c.addSPSigned(c.readSignedImmediate())
		return 4
	case 0xF8:
		c.setHL(c.addSPSigned(c.readSignedImmediate()))
		return 3
	case 0xF9:
		c.sp = c.hl()
		return 2

	case 0xF3:
		c.ime = false
		c.eiDelay = 0
		return 1
	case 0xFB:
		c.eiDelay = 2
		return 1

	default:
		c.fail("illegal opcode")
		return 1
	}
}

func (c *CPU) applyALU(aluOp uint8, value uint8) {
	switch aluOp {
	case 0:
		c.add(value)
	case 1:
		c.adc(value)
	case 2:
		c.sub(value)
	case 3:
		c.sbc(value)
	case 4:
		c.and(value)
	case 5:
		c.xor(value)
	case 6:
		c.or(value)
	case 7:
		c.cp(value)
	}
}

func (c *CPU) opHALT() uint8 {
	if !c.ime && c.bus.InterruptPending() != 0 {
		c.haltBug = true
	}
	c.halted = true
	return 1
}

func (c *CPU) jr(taken bool) uint8 {
	e := c.readSignedImmediate()
	if taken {
		c.pc = uint16(int32(c.pc) + int32(e))
		return 3
	}
	return 2
}

func (c *CPU) jpCond(taken bool) uint8 {
	target := c.readImmediateWord()
	if taken {
		c.pc = target
		return 4
	}
	return 3
}

func (c *CPU) callCond(taken bool) uint8 {
	target := c.readImmediateWord()
	if taken {
		c.pushStack(c.pc)
		c.pc = target
		return 6
	}
	return 3
}

func (c *CPU) retCond(taken bool) uint8 {
	if taken {
		c.pc = c.popStack()
		return 5
	}
	return 2
}

// execCB performs the full effect of a CB-prefixed opcode and returns its
// total M-cycle cost, including the CB-fetch cycle already spent before
// this call (see cbTable's Cycles documentation).
func (c *CPU) execCB(op uint8) uint8 {
	group := (op >> 6) & 3
	reg := op & 7
	n := (op >> 3) & 7

	switch group {
	case 0:
		v := c.reg8(reg)
		var result uint8
		switch n {
		case 0:
			result = c.rlc(v)
		case 1:
			result = c.rrc(v)
		case 2:
			result = c.rl(v)
		case 3:
			result = c.rr(v)
		case 4:
			result = c.sla(v)
		case 5:
			result = c.sra(v)
		case 6:
			result = c.swap(v)
		case 7:
			result = c.srl(v)
		}
		c.setReg8(reg, result)
	case 1:
		c.bit(n, c.reg8(reg))
	case 2:
		c.setReg8(reg, c.reg8(reg)&^(1<<n))
	case 3:
		c.setReg8(reg, c.reg8(reg)|(1<<n))
	}

	return cbTable[op].Cycles
}
