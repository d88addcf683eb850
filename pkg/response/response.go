// Package response implements opcode-dispatched typed decoders over a
// parsed protocol.Frame. Every decoder consumes a frame body beginning
// with a 1-byte Status followed by opcode-specific fields (spec.md
// §4.2, §6), and tolerates extra trailing bytes the firmware may send
// beyond the documented layout (spec.md §9).
package response

import (
	"fmt"

	"github.com/tagfleet/rfid-reader/pkg/protocol"
)

// Response is the generic decoded reply: an opcode, a status, and the
// body bytes following the status byte. A response carrying a
// non-SUCCESS status is a valid return, not an error — callers inspect
// Status themselves (spec.md §7).
type Response struct {
	Opcode protocol.Opcode
	Status protocol.Status
	Body   []byte
	Raw    *protocol.Frame
}

// Parse extracts the generic Response shape from a decoded frame.
func Parse(frame *protocol.Frame) (Response, error) {
	if frame == nil {
		return Response{}, fmt.Errorf("response: nil frame")
	}
	if len(frame.Payload) < 1 {
		return Response{}, fmt.Errorf("response: frame payload empty, no status byte")
	}
	return Response{
		Opcode: frame.Opcode,
		Status: protocol.Status(frame.Payload[0]),
		Body:   frame.Payload[1:],
		Raw:    frame,
	}, nil
}
