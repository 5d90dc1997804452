// Package timer implements the DMG DIV/TIMA/TMA/TAC timer, including the
// falling-edge TIMA increment and the TIMA-overflow reload delay.
package timer

import "github.com/kalunga-dev/dmgcore/bit"

// muxSelector maps TAC's low two bits to the div16 bit that feeds the TIMA
// falling-edge detector.
var muxSelector = [4]uint8{9, 3, 5, 7}

// Timer models the free-running 16-bit divider and the TIMA/TMA/TAC
// counter built on top of it.
type Timer struct {
	div16 uint16
	tima  uint8
	tma   uint8
	tac   uint8

	lastAnd bool

	overflowPending bool
	overflowAge     uint8

	preWriteTMA       uint8
	tmaWrittenThisCycle bool

	// RequestInterrupt is called when TIMA's reload completes. May be nil
	// in tests that only assert register state.
	RequestInterrupt func()
}

// New returns a Timer with all registers at their post-reset value of 0.
func New() *Timer {
	return &Timer{}
}

// Reset clears all timer state.
func (t *Timer) Reset() {
	*t = Timer{RequestInterrupt: t.RequestInterrupt}
}

// DIV returns the visible divider byte (the high byte of div16).
func (t *Timer) DIV() uint8 { return bit.High(t.div16) }

// TIMA returns the timer counter. While a reload is pending it reads as 0,
// matching hardware.
func (t *Timer) TIMA() uint8 {
	if t.overflowPending {
		return 0
	}
	return t.tima
}

// TMA returns the timer modulo register.
func (t *Timer) TMA() uint8 { return t.tma }

// TAC returns the timer control register (low 3 bits meaningful; the rest
// read back as 1 on hardware, mirrored here as the unused upper bits set).
func (t *Timer) TAC() uint8 { return t.tac | 0xF8 }

func (t *Timer) andNow() bool {
	sel := muxSelector[t.tac&0x03]
	muxBit := bit.IsSet16(sel, t.div16)
	return muxBit && (t.tac&0x04 != 0)
}

// Tick advances the timer by exactly one machine cycle (4 T-cycles).
func (t *Timer) Tick() {
	t.div16 += 4
	// Snapshot before checkEdge: a falling edge this cycle may itself set
	// overflowPending, and that freshly-started overflow must not also age
	// by one in the same call, or the reload lands a cycle early.
	wasPending := t.overflowPending
	t.checkEdge()
	if wasPending {
		t.advanceOverflow()
	}
	t.tmaWrittenThisCycle = false
}

func (t *Timer) checkEdge() {
	now := t.andNow()
	if t.lastAnd && !now {
		t.incrementTIMA()
	}
	t.lastAnd = now
}

func (t *Timer) incrementTIMA() {
	if t.tima == 0xFF {
		t.tima = 0
		t.overflowPending = true
		t.overflowAge = 0
		return
	}
	t.tima++
}

func (t *Timer) advanceOverflow() {
	if !t.overflowPending {
		return
	}
	t.overflowAge++
	if t.overflowAge < 4 {
		return
	}
	reload := t.tma
	if t.tmaWrittenThisCycle {
		reload = t.preWriteTMA
	}
	t.tima = reload
	t.overflowPending = false
	t.overflowAge = 0
	if t.RequestInterrupt != nil {
		t.RequestInterrupt()
	}
}

// WriteDIV resets the internal counter to 0. Because this can pull the mux
// bit low, a falling edge (and TIMA increment) may fire on the same cycle.
func (t *Timer) WriteDIV() {
	t.div16 = 0
	t.checkEdge()
}

// WriteTIMA writes the TIMA register. A write during the overflow reload
// window cancels the pending reload and interrupt.
func (t *Timer) WriteTIMA(v uint8) {
	if t.overflowPending {
		t.overflowPending = false
		t.overflowAge = 0
	}
	t.tima = v
}

// WriteTMA writes the TMA register, recording the old value in case this
// cycle's reload needs to observe the pre-write value.
func (t *Timer) WriteTMA(v uint8) {
	t.preWriteTMA = t.tma
	t.tmaWrittenThisCycle = true
	t.tma = v
}

// WriteTAC writes the TAC register. Disabling the timer, or changing the
// selector in a way that drops the mux AND output, counts as a falling
// edge and increments TIMA immediately.
func (t *Timer) WriteTAC(v uint8) {
	t.tac = v & 0x07
	now := t.andNow()
	if t.lastAnd && !now {
		t.incrementTIMA()
	}
	t.lastAnd = now
}
