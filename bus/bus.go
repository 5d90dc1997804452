// Package bus implements the DMG 16-bit address space: dispatch to work
// RAM, echo RAM, high RAM, the cartridge, the I/O register file, the
// timer, the interrupt controller, and the collaborator stubs (VRAM, OAM,
// APU, joypad, serial).
package bus

import (
	"log/slog"

	"github.com/kalunga-dev/dmgcore/addr"
	"github.com/kalunga-dev/dmgcore/audio"
	"github.com/kalunga-dev/dmgcore/cartridge"
	"github.com/kalunga-dev/dmgcore/interrupt"
	"github.com/kalunga-dev/dmgcore/joypad"
	"github.com/kalunga-dev/dmgcore/serial"
	"github.com/kalunga-dev/dmgcore/timer"
	"github.com/kalunga-dev/dmgcore/video"
)

// Bus is the CPU's sole path to memory and to every external collaborator.
// It is a data-only structure the CPU owns; collaborators never hold a
// reference back to the CPU, only to the Bus, avoiding the cyclic
// ownership the teacher's source worked around the same way.
type Bus struct {
	cart *cartridge.Cartridge

	wram [0x2000]byte // C000-DFFF
	hram [0x7F]byte   // FF80-FFFE

	Timer     *timer.Timer
	Interrupt *interrupt.Controller
	Video     *video.Stub
	Audio     *audio.Stub
	Joypad    *joypad.Stub
	Serial    *serial.Stub

	bootROMDisabled byte

	logger *slog.Logger

	// fatal records the first fatal condition raised by a write (e.g. an
	// unimplemented mapper). The CPU checks this at the end of every
	// machine cycle.
	fatal error
}

// New returns a Bus with no cartridge loaded; LoadCartridge must be called
// before ROM reads are meaningful.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bus{
		Timer:     timer.New(),
		Interrupt: interrupt.New(),
		Video:     video.New(),
		Audio:     audio.New(),
		Joypad:    joypad.New(),
		logger:    logger,
	}
	b.Serial = serial.New(func() { b.Interrupt.Request(addr.SerialInterrupt) }, logger)
	b.Timer.RequestInterrupt = func() { b.Interrupt.Request(addr.TimerInterrupt) }
	return b
}

// LoadCartridge installs cart as the bus's ROM/external-RAM owner.
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
}

// Reset clears work RAM, high RAM, and every owned subsystem. The
// cartridge is not reloaded.
func (b *Bus) Reset() {
	b.wram = [0x2000]byte{}
	b.hram = [0x7F]byte{}
	b.Timer.Reset()
	b.Interrupt.Reset()
	b.Video = video.New()
	b.Audio = audio.New()
	b.Joypad = joypad.New()
	b.Serial = serial.New(func() { b.Interrupt.Request(addr.SerialInterrupt) }, b.logger)
	b.fatal = nil
}

// Fatal returns the first fatal condition raised since the last Reset, or
// nil.
func (b *Bus) Fatal() error { return b.fatal }

// Tick advances the timer by one machine cycle, requesting the Timer
// interrupt if TIMA's reload completes on this tick.
func (b *Bus) Tick() {
	b.Timer.Tick()
}

// InterruptPending returns the bits that are both enabled and requested
// (IE & IF & 0x1F), the value the CPU checks at every instruction
// boundary.
func (b *Bus) InterruptPending() uint8 {
	return b.Interrupt.Pending()
}

// ClearInterrupt clears the IF bit at the given index (0=VBlank..4=Joypad).
func (b *Bus) ClearInterrupt(index uint8) {
	b.Interrupt.Clear(addr.Interrupt(1 << index))
}

// RequestInterrupt sets the IF bit for kind. Exposed for collaborators
// (PPU, joypad, serial) that need to raise an interrupt synchronously
// from within a bus call.
func (b *Bus) RequestInterrupt(kind addr.Interrupt) {
	b.Interrupt.Request(kind)
}

// ReadByte reads a single byte from the full 16-bit address space.
func (b *Bus) ReadByte(a uint16) uint8 {
	switch regionMap[a>>8] {
	case regionROM:
		return b.readCart(a)
	case regionVRAM:
		return b.Video.ReadVRAM(a - addr.VRAMStart)
	case regionExtRAM:
		return b.readCart(a)
	case regionWRAM:
		return b.wram[a-0xC000]
	case regionEcho:
		return b.wram[a-0xE000]
	case regionOAMPage:
		return b.readOAMPage(a)
	default:
		return b.readIOPage(a)
	}
}

// WriteByte writes a single byte to the full 16-bit address space.
func (b *Bus) WriteByte(a uint16, v uint8) {
	switch regionMap[a>>8] {
	case regionROM:
		b.writeCart(a, v)
	case regionVRAM:
		b.Video.WriteVRAM(a-addr.VRAMStart, v)
	case regionExtRAM:
		b.writeCart(a, v)
	case regionWRAM:
		b.wram[a-0xC000] = v
	case regionEcho:
		b.wram[a-0xE000] = v
	case regionOAMPage:
		b.writeOAMPage(a, v)
	default:
		b.writeIOPage(a, v)
	}
}

func (b *Bus) readCart(a uint16) uint8 {
	if b.cart == nil {
		return 0xFF
	}
	return b.cart.Read(a)
}

func (b *Bus) writeCart(a uint16, v uint8) {
	if b.cart == nil {
		return
	}
	if err := b.cart.Write(a, v); err != nil && b.fatal == nil {
		b.fatal = err
		b.logger.Error("fatal cartridge write", "addr", a, "error", err)
	}
}

func (b *Bus) readOAMPage(a uint16) uint8 {
	if a <= addr.OAMEnd {
		return b.Video.ReadOAM(a - addr.OAMStart)
	}
	return 0xFF // 0xFEA0-0xFEFF: unmapped
}

func (b *Bus) writeOAMPage(a uint16, v uint8) {
	if a <= addr.OAMEnd {
		b.Video.WriteOAM(a-addr.OAMStart, v)
		return
	}
	// 0xFEA0-0xFEFF: unmapped, writes ignored
}
