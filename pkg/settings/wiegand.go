package settings

import "github.com/tagfleet/rfid-reader/pkg/protocol"

// Wiegand is the reader's Wiegand output configuration block (spec.md
// §3: "open-flag, byte-order, protocol variant").
type Wiegand struct {
	IsOpen        bool
	ByteFirstType protocol.WiegandByteFirstType
	Protocol      protocol.WiegandProtocol
}

// Encode writes is_open(1) | byte_first_type(1) | protocol(1).
func (w Wiegand) Encode() []byte {
	open := byte(0)
	if w.IsOpen {
		open = 1
	}
	return []byte{open, byte(w.ByteFirstType), byte(w.Protocol)}
}

// DecodeWiegand parses the 3-byte Wiegand block.
func DecodeWiegand(buf []byte) Wiegand {
	return Wiegand{
		IsOpen:        buf[0] != 0,
		ByteFirstType: protocol.WiegandByteFirstType(buf[1]),
		Protocol:      protocol.WiegandProtocol(buf[2]),
	}
}
