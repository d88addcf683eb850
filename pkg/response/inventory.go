package response

import (
	"encoding/binary"
	"fmt"

	"github.com/tagfleet/rfid-reader/pkg/protocol"
)

// InventoryTag is parsed from an inventory SUCCESS frame body (spec.md
// §3). It is nil on Inventory responses carrying the NO_COUNT_LABEL
// terminator, which have no tag fields.
type InventoryTag struct {
	Antenna  byte
	CRC      uint16
	PC       uint16
	EPCLength byte
	EPC      []byte
	RSSIRaw  byte
}

const inventoryTagFixedLen = 1 + 2 + 2 + 1 // antenna + crc + pc + epc_length, before EPC+rssi

// Inventory is the decoded body of an INVENTORY_ISO_CONTINUE frame.
type Inventory struct {
	Response
	Tag *InventoryTag
}

// ParseInventory decodes one inventory response frame. When Status is
// NO_COUNT_LABEL the body carries no tag and Tag is nil.
func ParseInventory(r Response) (Inventory, error) {
	if r.Status == protocol.StatusNoCountLabel {
		return Inventory{Response: r}, nil
	}
	if len(r.Body) < inventoryTagFixedLen {
		return Inventory{Response: r}, fmt.Errorf("response: inventory tag body too short: %d < %d", len(r.Body), inventoryTagFixedLen)
	}

	tag := &InventoryTag{
		Antenna:   r.Body[0],
		CRC:       binary.BigEndian.Uint16(r.Body[1:3]),
		PC:        binary.BigEndian.Uint16(r.Body[3:5]),
		EPCLength: r.Body[5],
	}

	epcEnd := inventoryTagFixedLen + int(tag.EPCLength)
	if len(r.Body) < epcEnd+1 {
		return Inventory{Response: r}, fmt.Errorf("response: inventory tag epc/rssi truncated: need %d, have %d", epcEnd+1, len(r.Body))
	}
	tag.EPC = append([]byte(nil), r.Body[inventoryTagFixedLen:epcEnd]...)
	tag.RSSIRaw = r.Body[epcEnd]

	return Inventory{Response: r, Tag: tag}, nil
}
