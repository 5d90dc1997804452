package cartridge

import "fmt"

// Type identifies the mapper/feature combination declared in the cartridge
// header at 0x0147.
type Type uint8

const (
	TypeROMOnly            Type = 0x00
	TypeMBC1               Type = 0x01
	TypeMBC1RAM            Type = 0x02
	TypeMBC1RAMBattery     Type = 0x03
	TypeMBC2               Type = 0x05
	TypeMBC2Battery        Type = 0x06
	TypeMBC3RAMBattery     Type = 0x13
	TypeMBC5               Type = 0x19
	TypeMBC5RAM            Type = 0x1A
	TypeMBC5RAMBattery     Type = 0x1B
)

func (t Type) String() string {
	switch t {
	case TypeROMOnly:
		return "ROM ONLY"
	case TypeMBC1:
		return "MBC1"
	case TypeMBC1RAM:
		return "MBC1+RAM"
	case TypeMBC1RAMBattery:
		return "MBC1+RAM+BATTERY"
	case TypeMBC2:
		return "MBC2"
	case TypeMBC2Battery:
		return "MBC2+BATTERY"
	case TypeMBC3RAMBattery:
		return "MBC3+RAM+BATTERY"
	case TypeMBC5:
		return "MBC5"
	case TypeMBC5RAM:
		return "MBC5+RAM"
	case TypeMBC5RAMBattery:
		return "MBC5+RAM+BATTERY"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
	}
}

// HasMapper reports whether this type requires bank-switching logic beyond
// the no-mapper baseline.
func (t Type) HasMapper() bool {
	return t != TypeROMOnly
}

// ramSizeBytes maps the 0x0149 RAM size code to a byte count.
var ramSizeBytes = map[uint8]int{
	0: 0,
	1: 0, // unused/listed as 2KiB on some references, treated as absent here
	2: 8 * 1024,
	3: 32 * 1024,
	4: 128 * 1024,
	5: 64 * 1024,
}

// Header is the parsed subset of the cartridge header this core cares
// about.
type Header struct {
	Title        string
	CGBFlag      uint8
	Type         Type
	ROMSizeCode  uint8
	RAMSizeCode  uint8
	RAMSizeBytes int
	DestCode     uint8
	Version      uint8
	HeaderChecksum uint8
	ComputedChecksum uint8
}

// ChecksumOK reports whether the stored header checksum matches the
// computed one.
func (h Header) ChecksumOK() bool {
	return h.HeaderChecksum == h.ComputedChecksum
}

func parseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, fmt.Errorf("cartridge: rom image too small to contain a header (%d bytes)", len(rom))
	}

	h := Header{
		Title:       cleanTitle(rom[0x0134:0x0144]),
		CGBFlag:     rom[0x0143],
		Type:        Type(rom[0x0147]),
		ROMSizeCode: rom[0x0148],
		RAMSizeCode: rom[0x0149],
		DestCode:    rom[0x014A],
		Version:     rom[0x014C],
		HeaderChecksum: rom[0x014D],
	}

	size, ok := ramSizeBytes[h.RAMSizeCode]
	if !ok {
		return Header{}, fmt.Errorf("cartridge: unknown RAM size code 0x%02X", h.RAMSizeCode)
	}
	h.RAMSizeBytes = size

	var sum uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	h.ComputedChecksum = sum

	return h, nil
}

func cleanTitle(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch {
		case c == 0:
			continue
		case c < 0x20 || c > 0x7E:
			out = append(out, '?')
		default:
			out = append(out, c)
		}
	}
	for len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "(untitled)"
	}
	return string(out)
}
