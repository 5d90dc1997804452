// Package interrupt implements the DMG interrupt controller: the IE and IF
// registers and the bit manipulation the bus and CPU need against them.
package interrupt

import (
	"github.com/kalunga-dev/dmgcore/addr"
	"github.com/kalunga-dev/dmgcore/bit"
)

// Controller holds the Interrupt Enable and Interrupt Flag bytes.
type Controller struct {
	ie uint8
	f  uint8
}

// New returns a Controller with IE and IF both cleared.
func New() *Controller {
	return &Controller{}
}

// Reset clears IE and IF.
func (c *Controller) Reset() {
	c.ie = 0
	c.f = 0
}

// IE returns the Interrupt Enable register.
func (c *Controller) IE() uint8 { return c.ie }

// SetIE writes the Interrupt Enable register.
func (c *Controller) SetIE(v uint8) { c.ie = v }

// IF returns the Interrupt Flag register with its unused upper 3 bits read
// as 1, matching hardware.
func (c *Controller) IF() uint8 { return c.f | 0xE0 }

// SetIF writes the Interrupt Flag register (only the low 5 bits are
// meaningful; the upper bits are not stored).
func (c *Controller) SetIF(v uint8) { c.f = v & addr.InterruptMask }

// Request sets the IF bit for the given interrupt.
func (c *Controller) Request(kind addr.Interrupt) {
	c.f = bit.SetTo(bitIndex(kind), c.f, true) & addr.InterruptMask
}

// Clear clears the IF bit for the given interrupt.
func (c *Controller) Clear(kind addr.Interrupt) {
	c.f = bit.SetTo(bitIndex(kind), c.f, false)
}

// Pending returns the bits that are both enabled (IE) and requested (IF),
// masked to the 5 meaningful bits.
func (c *Controller) Pending() uint8 {
	return c.ie & c.f & addr.InterruptMask
}

func bitIndex(kind addr.Interrupt) uint8 {
	switch kind {
	case addr.VBlankInterrupt:
		return 0
	case addr.LCDSTATInterrupt:
		return 1
	case addr.TimerInterrupt:
		return 2
	case addr.SerialInterrupt:
		return 3
	case addr.JoypadInterrupt:
		return 4
	default:
		panic("interrupt: unknown interrupt kind")
	}
}
