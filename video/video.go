// Package video is the minimal PPU stand-in this core talks to: it owns
// VRAM and OAM storage and the LCD register file, but never turns them
// into pixels. Pixel generation is explicitly out of this core's scope.
package video

// Stub backs the video RAM, OAM, and LCD register window the bus forwards
// to. It behaves like a passive RAM bank: every register is readable and
// writable, but none of them drive rendering.
type Stub struct {
	vram [0x2000]byte
	oam  [0xA0]byte
	regs [0x0C]byte // LCDC..WX, FF40-FF4B
}

// New returns a Stub with VRAM/OAM/registers all zeroed.
func New() *Stub {
	return &Stub{}
}

// ReadVRAM reads a VRAM-relative offset (0x0000-0x1FFF).
func (s *Stub) ReadVRAM(offset uint16) uint8 { return s.vram[offset] }

// WriteVRAM writes a VRAM-relative offset.
func (s *Stub) WriteVRAM(offset uint16, v uint8) { s.vram[offset] = v }

// ReadOAM reads an OAM-relative offset (0x00-0x9F).
func (s *Stub) ReadOAM(offset uint16) uint8 { return s.oam[offset] }

// WriteOAM writes an OAM-relative offset.
func (s *Stub) WriteOAM(offset uint16, v uint8) { s.oam[offset] = v }

// ReadRegister reads one of the FF40-FF4B LCD registers by its
// register-relative offset.
func (s *Stub) ReadRegister(offset uint16) uint8 { return s.regs[offset] }

// WriteRegister writes one of the FF40-FF4B LCD registers.
func (s *Stub) WriteRegister(offset uint16, v uint8) { s.regs[offset] = v }
