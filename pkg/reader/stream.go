package reader

import (
	"github.com/tagfleet/rfid-reader/pkg/command"
	"github.com/tagfleet/rfid-reader/pkg/protocol"
	"github.com/tagfleet/rfid-reader/pkg/response"
)

// Stream is the explicit iterator produced by a streaming operation
// (start_inventory, read/write/lock/kill). Next yields one decoded item per
// call; ok=false with a nil error means "no frame this tick, try again or
// cancel" (spec.md §9 "lazy generators → explicit iterator objects").
// Next returns ok=false and a non-nil error exactly once, on the call that
// discovers a fatal transport error or a decode failure. A NO_COUNT_LABEL
// terminator is returned as a final ok=true item, and a stream ended by
// Cancel or StopInventory returns ok=false, err=nil. Once the stream has
// ended, every call returns ok=false, err=nil ("already done").
type Stream[T any] struct {
	r      *Reader
	opcode protocol.Opcode
	decode func(response.Response) (T, error)
	done   bool
}

// Next advances the stream by one tick. It sets is_busy=false on the reader
// the moment the stream reaches a terminal state, for any reason.
func (s *Stream[T]) Next() (item T, ok bool, err error) {
	if s.done {
		return item, false, nil
	}

	if !s.r.isBusy.Load() {
		s.finish()
		return item, false, nil
	}

	resp, found, rerr := s.r.receiveOne(s.opcode, false, 1)
	if rerr != nil {
		s.finish()
		return item, false, rerr
	}
	if !found {
		return item, false, nil
	}

	item, derr := s.decode(resp)
	if derr != nil {
		s.finish()
		return item, false, derr
	}

	if resp.Status == protocol.StatusNoCountLabel {
		s.finish()
		return item, true, nil
	}
	return item, true, nil
}

// Cancel ends the stream without waiting for a terminator frame,
// equivalent to the reader's StopInventory clearing is_busy externally.
func (s *Stream[T]) Cancel() {
	s.finish()
}

func (s *Stream[T]) finish() {
	if !s.done {
		s.done = true
		s.r.isBusy.Store(false)
	}
}

// startStream arms a streaming operation: it refuses reentrance, writes the
// command once, sets is_busy=true, and returns a Stream bound to the given
// decoder.
func startStream[T any](r *Reader, c command.Command, expected protocol.Opcode, decode func(response.Response) (T, error)) (*Stream[T], error) {
	if r.isBusy.Load() {
		return nil, newProtocolError(ErrKindBusyReentrance, nil)
	}
	if err := r.writeCommand(c); err != nil {
		return nil, err
	}
	r.isBusy.Store(true)
	return &Stream[T]{r: r, opcode: expected, decode: decode}, nil
}

// StartInventory begins a streaming inventory cycle with the given
// termination parameter (a nil param sends no payload); workMode does not
// change the command written. Each Next() call yields one
// response.Inventory per in-band frame until NO_COUNT_LABEL or
// cancellation (spec.md §4.5).
func (r *Reader) StartInventory(workMode protocol.WorkMode, param interface{ Encode() []byte }) (*Stream[response.Inventory], error) {
	var payload []byte
	if param != nil {
		payload = param.Encode()
	}
	c := command.NewWithPayload(protocol.InventoryISOContinue, payload)
	return startStream(r, c, protocol.InventoryISOContinue, func(resp response.Response) (response.Inventory, error) {
		return response.ParseInventory(resp)
	})
}

// StopInventory cancels an in-progress streaming operation (spec.md §4.5
// "Cancellation"). In ANSWER_MODE it also writes an INVENTORY_STOP command
// without flushing the input buffer and makes one best-effort receive,
// tolerating a timeout. is_busy is cleared unconditionally.
func (r *Reader) StopInventory(workMode protocol.WorkMode) error {
	defer r.isBusy.Store(false)

	if workMode != protocol.WorkModeAnswerMode {
		return nil
	}

	c := command.New(protocol.InventoryStop)
	if err := r.writeCommandNoFlush(c); err != nil {
		return err
	}

	// Best-effort: a timeout or a frame that never arrives is tolerated: a
	// fatal transport error (Disconnected/Io) still propagates.
	_, _, err := r.receiveOne(protocol.InventoryStop, false, 1)
	return err
}

// ReadMemory reads the given memory bank from the selected tag(s) as an
// open-ended stream of per-tag results, terminated by NO_COUNT_LABEL.
func (r *Reader) ReadMemory(c command.Command) (*Stream[response.ReadMemory], error) {
	return startStream(r, c, protocol.ReadISOTag, func(resp response.Response) (response.ReadMemory, error) {
		return response.ParseReadMemory(resp)
	})
}

// WriteMemory writes to the given memory bank on the selected tag(s) as a
// stream, terminated by NO_COUNT_LABEL.
func (r *Reader) WriteMemory(c command.Command) (*Stream[response.WriteMemory], error) {
	return startStream(r, c, protocol.WriteISOTag, func(resp response.Response) (response.WriteMemory, error) {
		return response.ParseWriteMemory(resp)
	})
}

// LockMemory locks or unlocks a memory region on the selected tag(s) as a
// stream, terminated by NO_COUNT_LABEL.
func (r *Reader) LockMemory(c command.Command) (*Stream[response.LockMemory], error) {
	return startStream(r, c, protocol.LockISOTag, func(resp response.Response) (response.LockMemory, error) {
		return response.ParseLockMemory(resp)
	})
}

// KillTag permanently disables the selected tag(s) as a stream, terminated
// by NO_COUNT_LABEL.
func (r *Reader) KillTag(c command.Command) (*Stream[response.KillTag], error) {
	return startStream(r, c, protocol.KillISOTag, func(resp response.Response) (response.KillTag, error) {
		return response.ParseKillTag(resp)
	})
}
