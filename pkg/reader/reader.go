// Package reader implements the protocol engine: it correlates one-shot
// commands with their response frame, drives the streaming inventory/
// read/write/lock/kill state machine, and owns the single Transport a
// reader handle is constructed with (spec.md §4.5, §5).
package reader

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/tagfleet/rfid-reader/pkg/command"
	"github.com/tagfleet/rfid-reader/pkg/protocol"
	"github.com/tagfleet/rfid-reader/pkg/response"
	"github.com/tagfleet/rfid-reader/pkg/transport"
)

// maxReceiveAttempts bounds the one-shot opcode-correlation retry loop. The
// vendor protocol does not guarantee convergence within any fixed number of
// frames; 20 is a heuristic ceiling carried over unchanged from the
// reference driver (spec.md §9).
const maxReceiveAttempts = 20

// packetFramed is implemented by transports (USB) whose ReadBytes returns
// one discrete packet instead of honoring the requested byte count.
type packetFramed interface {
	IsPacketFramed() bool
}

// Reader is a protocol engine bound to one connected Transport. It is not
// safe for concurrent use by more than one goroutine; the reader is
// single-command-at-a-time by contract (spec.md §5).
type Reader struct {
	transport transport.Transport
	isBusy    atomic.Bool
	framed    bool

	// OnTx and OnRx are optional sniffer hooks invoked with raw wire bytes
	// on every write and every successfully reassembled read. Both default
	// to no-ops (spec.md §9 "signal/slot GUI wiring").
	OnTx func(buf []byte)
	OnRx func(buf []byte)
}

// New constructs a Reader over an already-connected Transport.
func New(t transport.Transport) *Reader {
	_, framed := t.(packetFramed)
	return &Reader{transport: t, framed: framed}
}

// Close releases the underlying transport.
func (r *Reader) Close() error {
	return r.transport.Close()
}

// IsBusy reports whether a streaming operation currently owns the reader.
func (r *Reader) IsBusy() bool {
	return r.isBusy.Load()
}

func (r *Reader) emitTx(buf []byte) {
	if r.OnTx != nil {
		r.OnTx(buf)
	}
}

func (r *Reader) emitRx(buf []byte) {
	if r.OnRx != nil {
		r.OnRx(buf)
	}
}

// writeCommand flushes the input buffer and writes one serialized command.
func (r *Reader) writeCommand(c command.Command) error {
	buf, err := c.Serialize()
	if err != nil {
		return newProtocolError(ErrKindInvalidArgument, err)
	}
	if err := r.transport.ClearBuffer(); err != nil {
		return err
	}
	if err := r.transport.WriteAll(buf); err != nil {
		return err
	}
	r.emitTx(buf)
	return nil
}

// writeCommandNoFlush writes a command without first clearing the input
// buffer, used by StopInventory so a frame already in flight is not lost
// (spec.md §4.5 "Cancellation").
func (r *Reader) writeCommandNoFlush(c command.Command) error {
	buf, err := c.Serialize()
	if err != nil {
		return newProtocolError(ErrKindInvalidArgument, err)
	}
	if err := r.transport.WriteAll(buf); err != nil {
		return err
	}
	r.emitTx(buf)
	return nil
}

// doOneShot writes cmd, then receives up to maxReceiveAttempts frames until
// one matches expected or the ceiling is reached, returning the parsed
// Response (spec.md §4.5 "One-shot request/response").
func (r *Reader) doOneShot(c command.Command, expected protocol.Opcode) (response.Response, error) {
	if r.isBusy.Load() {
		return response.Response{}, newProtocolError(ErrKindBusyReentrance, nil)
	}
	if err := r.writeCommand(c); err != nil {
		return response.Response{}, err
	}
	resp, ok, err := r.receiveOne(expected, true, maxReceiveAttempts)
	if err != nil {
		return response.Response{}, err
	}
	if !ok {
		return response.Response{}, newProtocolError(ErrKindOpcodeMismatch, fmt.Errorf("no frame for %s after %d attempts", expected, maxReceiveAttempts))
	}
	return resp, nil
}

// receiveOne performs up to maxAttempts transport-appropriate reads,
// parsing one frame per attempt and comparing its opcode against expected.
// ok=false with a nil error means no matching frame turned up in the
// attempts it was given — for a one-shot call (maxAttempts=20) the caller
// treats that as OpcodeMismatch; for a streaming tick (maxAttempts=1) the
// caller treats it as "no item this tick", not an error (spec.md §4.5).
// A frame whose opcode is INVENTORY_STOP is swallowed rather than counted
// as a mismatch, matching the streaming inventory framing rule.
func (r *Reader) receiveOne(expected protocol.Opcode, verifyHeader bool, maxAttempts int) (response.Response, bool, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		frame, ok, err := r.readFrame(verifyHeader)
		if err != nil {
			return response.Response{}, false, err
		}
		if !ok {
			// Recoverable: timeout, short read, or a parse error already
			// handled by flushing the input buffer.
			continue
		}
		if frame.Opcode == protocol.InventoryStop && expected != protocol.InventoryStop {
			continue
		}
		if frame.Opcode != expected {
			if err := r.transport.ClearBuffer(); err != nil {
				return response.Response{}, false, err
			}
			continue
		}
		resp, err := response.Parse(frame)
		if err != nil {
			return response.Response{}, false, err
		}
		return resp, true, nil
	}
	return response.Response{}, false, nil
}

// readFrame reads and parses one frame using the transport's native
// reassembly rule, reporting ok=false for any recoverable condition
// (timeout, short read, bad header, bad checksum) rather than an error.
// Only a transport Disconnected/Io failure is returned as err.
func (r *Reader) readFrame(verifyHeader bool) (*protocol.Frame, bool, error) {
	if r.framed {
		return r.readFrameUSB()
	}
	return r.readFrameTwoStage(verifyHeader)
}

func (r *Reader) readFrameTwoStage(verifyHeader bool) (*protocol.Frame, bool, error) {
	prefix, err := r.transport.ReadBytes(5)
	if err != nil {
		if isRecoverable(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(prefix) < 5 {
		return nil, false, nil
	}
	if prefix[0] != protocol.Header {
		_ = r.transport.ClearBuffer()
		return nil, false, nil
	}

	length := int(prefix[4])
	rest, err := r.transport.ReadBytes(length + 2)
	if err != nil {
		if isRecoverable(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(rest) < length+2 {
		_ = r.transport.ClearBuffer()
		return nil, false, nil
	}

	buf := make([]byte, 0, 5+length+2)
	buf = append(buf, prefix...)
	buf = append(buf, rest...)

	frame, perr := protocol.Decode(buf)
	if perr != nil {
		_ = r.transport.ClearBuffer()
		return nil, false, nil
	}
	r.emitRx(buf)
	return frame, true, nil
}

// readFrameUSB reassembles one frame from one or more bulk packets,
// discarding anything beyond the first complete frame in hand (spec.md
// §4.5 "remaining buffer ignored to avoid over-reporting").
func (r *Reader) readFrameUSB() (*protocol.Frame, bool, error) {
	packet, err := r.transport.ReadBytes(0)
	if err != nil {
		if isRecoverable(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(packet) == 0 {
		return nil, false, nil
	}
	if packet[0] != protocol.Header || len(packet) < 5 {
		return nil, false, nil
	}

	length := int(packet[4])
	total := protocol.MinFrameLen + length

	buf := make([]byte, len(packet))
	copy(buf, packet)

	for len(buf) < total {
		more, err := r.transport.ReadBytes(0)
		if err != nil {
			if isRecoverable(err) {
				break
			}
			return nil, false, err
		}
		if len(more) == 0 {
			break
		}
		buf = append(buf, more...)
	}

	if len(buf) < total {
		return nil, false, nil
	}

	frame, perr := protocol.Decode(buf[:total])
	if perr != nil {
		return nil, false, nil
	}
	r.emitRx(buf[:total])
	return frame, true, nil
}

// isRecoverable reports whether a transport error is a timeout, which the
// engine treats as a non-fatal "no frame this tick" rather than an abort
// (spec.md §4.1, §7).
func isRecoverable(err error) bool {
	return errors.Is(err, transport.ErrTimeout)
}
