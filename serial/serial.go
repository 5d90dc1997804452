// Package serial stubs the link-cable port. It implements the common
// test-ROM convention of writing output bytes to SB and starting a
// transfer via SC: instead of driving a real link partner it logs
// completed lines and immediately acknowledges the transfer, which is
// enough to satisfy blargg-style test ROMs that report results over
// serial without implementing the link protocol (an explicit non-goal).
package serial

import (
	"log/slog"

	"github.com/kalunga-dev/dmgcore/bit"
)

// Stub is a logging serial device.
type Stub struct {
	irqHandler func()
	sb, sc     byte
	logger     *slog.Logger
	line       []byte
}

// New returns a Stub. irq is called whenever a transfer completes; it
// should request the Serial interrupt on the bus.
func New(irq func(), logger *slog.Logger) *Stub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stub{irqHandler: irq, logger: logger}
}

// Read returns SB or SC.
func (s *Stub) Read(register uint8) uint8 {
	switch register {
	case 0:
		return s.sb
	case 1:
		return s.sc
	default:
		panic("serial: invalid register")
	}
}

// Write updates SB or SC, starting a transfer when SC's start and
// internal-clock bits are both set.
func (s *Stub) Write(register uint8, value uint8) {
	switch register {
	case 0:
		s.sb = value
	case 1:
		s.sc = value
		s.maybeTransfer()
	default:
		panic("serial: invalid register")
	}
}

func (s *Stub) maybeTransfer() {
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			s.logger.Info("serial output", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	s.sb = 0xFF
	s.sc = bit.Clear(7, s.sc)
	if s.irqHandler != nil {
		s.irqHandler()
	}
}
