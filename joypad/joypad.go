// Package joypad stubs the P1 register. The button/d-pad matrix and its
// interrupt-on-press behaviour are an explicit non-goal; this stub only
// preserves the register's read convention (unselected/unpressed lines
// read high) so test ROMs that probe P1 without requiring input don't
// observe garbage.
package joypad

// Stub is a single-register latch standing in for the joypad matrix.
type Stub struct {
	p1 uint8
}

// New returns a Stub with P1 reading as if no button group is selected
// and nothing is pressed (all low nibble bits high).
func New() *Stub {
	return &Stub{p1: 0xCF}
}

// Read returns the current P1 value.
func (s *Stub) Read() uint8 { return s.p1 | 0xC0 }

// Write updates the selection bits (P1 bits 4-5); the lower nibble always
// reads as unpressed since no input source is wired.
func (s *Stub) Write(v uint8) {
	s.p1 = (v & 0x30) | 0x0F
}
