package reader

import (
	"github.com/tagfleet/rfid-reader/pkg/command"
	"github.com/tagfleet/rfid-reader/pkg/protocol"
	"github.com/tagfleet/rfid-reader/pkg/response"
)

// StartReadMemory reads length words starting at startAddress (in words)
// from bank, gated by accessPassword, on every tag matching the active
// select mask, as an open-ended stream terminated by NO_COUNT_LABEL
// (spec.md §4.5; original_source rfid/reader.py's read_memory: a leading
// 0x00 option byte, then the 4-byte access password, then bank/address/
// length). A mask should be installed with SelectMask beforehand to
// target specific tags.
func (r *Reader) StartReadMemory(bank protocol.MemoryBank, startAddress uint16, length byte, accessPassword [4]byte) (*Stream[response.ReadMemory], error) {
	payload := make([]byte, 0, 1+4+1+2+1)
	payload = append(payload, 0x00)
	payload = append(payload, accessPassword[:]...)
	payload = append(payload, byte(bank), byte(startAddress>>8), byte(startAddress), length)
	return r.ReadMemory(command.NewWithPayload(protocol.ReadISOTag, payload))
}

// StartWriteMemory writes data starting at startAddress (in words) in
// bank, gated by accessPassword, as a stream terminated by NO_COUNT_LABEL.
// A length of 0 defaults to len(data), matching original_source
// rfid/reader.py's write_memory ("if length == 0: length = len(data)")
// verbatim, including its choice to default the word-count field to the
// raw byte length of data rather than data's word count.
func (r *Reader) StartWriteMemory(bank protocol.MemoryBank, startAddress uint16, data []byte, length byte, accessPassword [4]byte) (*Stream[response.WriteMemory], error) {
	if length == 0 {
		length = byte(len(data))
	}
	payload := make([]byte, 0, 1+4+1+2+1+len(data))
	payload = append(payload, 0x00)
	payload = append(payload, accessPassword[:]...)
	payload = append(payload, byte(bank), byte(startAddress>>8), byte(startAddress), length)
	payload = append(payload, data...)
	return r.WriteMemory(command.NewWithPayload(protocol.WriteISOTag, payload))
}

// StartLockMemory applies action to bank, gated by accessPassword, on
// every tag matching the active select mask, as a stream terminated by
// NO_COUNT_LABEL. Unlike read/write, lock carries no leading option byte
// (original_source rfid/reader.py's lock_memory).
func (r *Reader) StartLockMemory(bank protocol.LockMemoryBank, action protocol.LockAction, accessPassword [4]byte) (*Stream[response.LockMemory], error) {
	payload := make([]byte, 0, 4+1+1)
	payload = append(payload, accessPassword[:]...)
	payload = append(payload, byte(bank), byte(action))
	return r.LockMemory(command.NewWithPayload(protocol.LockISOTag, payload))
}

// StartKillTag permanently disables every tag matching the active select
// mask using the given 4-byte kill password, as a stream terminated by
// NO_COUNT_LABEL.
func (r *Reader) StartKillTag(killPassword [4]byte) (*Stream[response.KillTag], error) {
	return r.KillTag(command.NewWithPayload(protocol.KillISOTag, killPassword[:]))
}
