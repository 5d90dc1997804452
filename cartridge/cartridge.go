// Package cartridge owns the ROM image, parses its header, and serves
// reads/writes for the 0000-7FFF and A000-BFFF address windows. Only the
// no-mapper (ROM ONLY) baseline is fully executable; other header types
// are recognized for diagnostics and fail fast on banked access.
package cartridge

// Cartridge is a loaded ROM image plus its derived header and backing
// store.
type Cartridge struct {
	Header Header
	mbc    MBC
}

// New parses rom's header and constructs the appropriate backing MBC.
// Returns an error only on a malformed header (unknown size code, image
// too small); an unsupported mapper type is not itself an error at load
// time, only on first banked access (see MBC).
func New(rom []byte) (*Cartridge, error) {
	h, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	var mbc MBC
	if h.Type.HasMapper() {
		mbc = newUnimplementedMBC(h.Type, rom, h.RAMSizeBytes)
	} else {
		mbc = NewNoMBC(rom, h.RAMSizeBytes)
	}

	return &Cartridge{Header: h, mbc: mbc}, nil
}

// Read returns the byte at addr within the cartridge's ROM/RAM windows.
func (c *Cartridge) Read(addr uint16) uint8 {
	return c.mbc.Read(addr)
}

// Write forwards addr/value to the backing MBC. The returned error is
// non-nil only for ErrMapperNotImplemented; callers treat that as fatal
// per the core's error taxonomy.
func (c *Cartridge) Write(addr uint16, value uint8) error {
	return c.mbc.Write(addr, value)
}
