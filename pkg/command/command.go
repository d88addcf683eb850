// Package command builds the Command value the protocol engine sends,
// and serializes it through the frame codec (spec.md §3).
package command

import "github.com/tagfleet/rfid-reader/pkg/protocol"

// Command is a one-shot request: an opcode plus an optional payload.
// Serializing it produces a Frame with ADDRESS=0 by default.
type Command struct {
	Opcode  protocol.Opcode
	Payload []byte
}

// New builds a Command with no payload.
func New(opcode protocol.Opcode) Command {
	return Command{Opcode: opcode}
}

// NewWithPayload builds a Command carrying payload bytes.
func NewWithPayload(opcode protocol.Opcode, payload []byte) Command {
	return Command{Opcode: opcode, Payload: payload}
}

// Serialize encodes the command into wire bytes.
func (c Command) Serialize() ([]byte, error) {
	return protocol.Encode(c.Opcode, c.Payload)
}
