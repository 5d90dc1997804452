package bus

import "github.com/kalunga-dev/dmgcore/addr"

// readIOPage and writeIOPage resolve the 0xFF00-0xFFFF page: the I/O
// register file, high RAM, and the IE register all share this high byte.
func (b *Bus) readIOPage(a uint16) uint8 {
	switch {
	case a == addr.P1:
		return b.Joypad.Read()
	case a == addr.SB:
		return b.Serial.Read(0)
	case a == addr.SC:
		return b.Serial.Read(1)
	case a == addr.DIV:
		return b.Timer.DIV()
	case a == addr.TIMA:
		return b.Timer.TIMA()
	case a == addr.TMA:
		return b.Timer.TMA()
	case a == addr.TAC:
		return b.Timer.TAC()
	case a == addr.IF:
		return b.Interrupt.IF()
	case a >= addr.AudioStart && a <= addr.NR52:
		return b.Audio.ReadRegister(a - addr.AudioStart)
	case a >= addr.WaveRAMStart && a <= addr.WaveRAMEnd:
		return b.Audio.ReadWaveRAM(a - addr.WaveRAMStart)
	case a >= addr.LCDC && a <= addr.WX:
		return b.Video.ReadRegister(a - addr.LCDC)
	case a == addr.VRAMBank, a == addr.BootROMDisable,
		a == addr.HDMA1, a == addr.HDMA2, a == addr.HDMA3, a == addr.HDMA4, a == addr.HDMA5,
		a == addr.BCPS, a == addr.OCPS, a == addr.WRAMBank:
		// CGB-only registers and the boot ROM disable latch, ignored on
		// DMG; read back as 0xFF per platform convention for an
		// unimplemented collaborator register.
		return 0xFF
	case a >= addr.HRAMStart && a <= addr.HRAMEnd:
		return b.hram[a-addr.HRAMStart]
	case a == addr.IE:
		return b.Interrupt.IE()
	default:
		// Unimplemented I/O register: reads as 0xFF per platform
		// convention.
		return 0xFF
	}
}

func (b *Bus) writeIOPage(a uint16, v uint8) {
	switch {
	case a == addr.P1:
		b.Joypad.Write(v)
	case a == addr.SB:
		b.Serial.Write(0, v)
	case a == addr.SC:
		b.Serial.Write(1, v)
	case a == addr.DIV:
		b.Timer.WriteDIV()
	case a == addr.TIMA:
		b.Timer.WriteTIMA(v)
	case a == addr.TMA:
		b.Timer.WriteTMA(v)
	case a == addr.TAC:
		b.Timer.WriteTAC(v)
	case a == addr.IF:
		b.Interrupt.SetIF(v)
	case a == addr.DMA:
		b.doDMATransfer(v)
	case a >= addr.AudioStart && a <= addr.NR52:
		b.Audio.WriteRegister(a-addr.AudioStart, v)
	case a >= addr.WaveRAMStart && a <= addr.WaveRAMEnd:
		b.Audio.WriteWaveRAM(a-addr.WaveRAMStart, v)
	case a >= addr.LCDC && a <= addr.WX:
		b.Video.WriteRegister(a-addr.LCDC, v)
	case a == addr.VRAMBank, a == addr.BootROMDisable,
		a == addr.HDMA1, a == addr.HDMA2, a == addr.HDMA3, a == addr.HDMA4, a == addr.HDMA5,
		a == addr.BCPS, a == addr.OCPS, a == addr.WRAMBank:
		// CGB-only registers and the boot ROM disable latch: writes are
		// dropped on DMG.
	case a >= addr.HRAMStart && a <= addr.HRAMEnd:
		b.hram[a-addr.HRAMStart] = v
	case a == addr.IE:
		b.Interrupt.SetIE(v)
	default:
		// Unimplemented I/O register write: dropped.
	}
}

// doDMATransfer copies 160 bytes from (value<<8) into OAM, matching the
// DMG's OAM DMA register at 0xFF46. Real hardware spends 160 M-cycles on
// this and locks out CPU access to most memory; that timing/contention
// detail is out of this core's scope (sub-instruction PPU/OAM contention
// is an explicit non-goal), so the copy is modelled as instantaneous.
func (b *Bus) doDMATransfer(value uint8) {
	src := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.Video.WriteOAM(i, b.ReadByte(src+i))
	}
}
