package settings

import (
	"fmt"

	"github.com/tagfleet/rfid-reader/pkg/protocol"
)

// OutputControl configures which memory bank and byte range the reader
// reports on each inventory tag, plus the relay's idle state (spec.md
// §4.4).
type OutputControl struct {
	MemoryBank  protocol.MemoryBank
	StartOffset byte
	Length      byte
	RelayOpen   bool
}

const outputControlWireLen = 1 + 1 + 1 + 1

// ToCommandData serializes the output-control block.
func (o OutputControl) ToCommandData() []byte {
	relay := byte(0)
	if o.RelayOpen {
		relay = 1
	}
	return []byte{byte(o.MemoryBank), o.StartOffset, o.Length, relay}
}

// DecodeOutputControl parses a GET response body.
func DecodeOutputControl(buf []byte) (OutputControl, error) {
	if len(buf) < outputControlWireLen {
		return OutputControl{}, fmt.Errorf("settings: output control body too short: %d < %d", len(buf), outputControlWireLen)
	}
	return OutputControl{
		MemoryBank:  protocol.MemoryBank(buf[0]),
		StartOffset: buf[1],
		Length:      buf[2],
		RelayOpen:   buf[3] != 0,
	}, nil
}

// MaskInventoryPermission enables or disables applying the active select
// mask to inventory cycles.
type MaskInventoryPermission struct {
	Enabled bool
}

// ToCommandData serializes the single enable-flag byte.
func (m MaskInventoryPermission) ToCommandData() []byte {
	v := byte(0)
	if m.Enabled {
		v = 1
	}
	return []byte{v}
}

// DecodeMaskInventoryPermission parses a GET response body.
func DecodeMaskInventoryPermission(buf []byte) (MaskInventoryPermission, error) {
	if len(buf) < 1 {
		return MaskInventoryPermission{}, fmt.Errorf("settings: mask inventory permission body empty")
	}
	return MaskInventoryPermission{Enabled: buf[0] != 0}, nil
}

// AnswerModeInventoryParameter selects how a WorkModeAnswerMode inventory
// stream terminates: after a fixed duration or a fixed tag count
// (spec.md §3, §4.5).
type AnswerModeInventoryParameter struct {
	StopAfter protocol.StopAfter
	Value     uint32
}

// Encode serializes stop_after(1) | value(4 BE).
func (p AnswerModeInventoryParameter) Encode() []byte {
	buf := make([]byte, 5)
	buf[0] = byte(p.StopAfter)
	buf[1] = byte(p.Value >> 24)
	buf[2] = byte(p.Value >> 16)
	buf[3] = byte(p.Value >> 8)
	buf[4] = byte(p.Value)
	return buf
}
