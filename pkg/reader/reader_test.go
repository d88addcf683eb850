package reader

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/tagfleet/rfid-reader/pkg/protocol"
	"github.com/tagfleet/rfid-reader/pkg/settings"
)

func mustEncode(t *testing.T, opcode protocol.Opcode, payload []byte) []byte {
	t.Helper()
	buf, err := protocol.Encode(opcode, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf
}

func deviceInfoPayload() []byte {
	return []byte{byte(protocol.StatusSuccess), 1, 2, 3, 4, 0xAA, 0xBB, 0xCC, 0xDD}
}

func inventoryTagPayload(antenna byte, epc []byte) []byte {
	body := make([]byte, 0, 6+len(epc)+1)
	body = append(body, byte(protocol.StatusSuccess), antenna)
	var crc, pc [2]byte
	binary.BigEndian.PutUint16(crc[:], 0x1234)
	binary.BigEndian.PutUint16(pc[:], 0x3000)
	body = append(body, crc[:]...)
	body = append(body, pc[:]...)
	body = append(body, byte(len(epc)))
	body = append(body, epc...)
	body = append(body, 0xC0) // rssi_raw
	return body
}

// TestGetDeviceInfo covers spec.md §8 scenario 1: a one-shot request/
// response round trip.
func TestGetDeviceInfo(t *testing.T) {
	frame := mustEncode(t, protocol.GetDeviceInfo, deviceInfoPayload())
	ft := &twoStageFake{chunks: [][]byte{frame[:5], frame[5:]}}
	r := New(ft)

	if r.IsBusy() {
		t.Fatal("reader is busy before any operation")
	}

	info, err := r.GetDeviceInfo()
	if err != nil {
		t.Fatalf("GetDeviceInfo: %v", err)
	}
	if info.HardwareMajor != 1 || info.HardwareMinor != 2 || info.FirmwareMajor != 3 || info.FirmwareMinor != 4 {
		t.Fatalf("unexpected version fields: %+v", info)
	}
	if info.SerialNumber != ([4]byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Fatalf("unexpected serial: % x", info.SerialNumber)
	}
	if len(ft.writes) != 1 {
		t.Fatalf("expected exactly one command written, got %d", len(ft.writes))
	}
	if r.IsBusy() {
		t.Fatal("reader left busy after a one-shot call")
	}
}

// TestInventoryAnswerModeTwoTagsThenTerminator covers spec.md §8 scenario 2:
// a streaming inventory that yields two tags then a NO_COUNT_LABEL
// terminator, after which is_busy is false and the stream is exhausted.
func TestInventoryAnswerModeTwoTagsThenTerminator(t *testing.T) {
	tag1 := mustEncode(t, protocol.InventoryISOContinue, inventoryTagPayload(1, []byte{0x01, 0x02, 0x03, 0x04}))
	tag2 := mustEncode(t, protocol.InventoryISOContinue, inventoryTagPayload(2, []byte{0x05, 0x06, 0x07, 0x08}))
	term := mustEncode(t, protocol.InventoryISOContinue, []byte{byte(protocol.StatusNoCountLabel)})

	ft := &twoStageFake{chunks: [][]byte{
		tag1[:5], tag1[5:],
		tag2[:5], tag2[5:],
		term[:5], term[5:],
	}}
	r := New(ft)

	param := settings.AnswerModeInventoryParameter{StopAfter: protocol.StopAfterNumber, Value: 2}
	stream, err := r.StartInventory(protocol.WorkModeAnswerMode, param)
	if err != nil {
		t.Fatalf("StartInventory: %v", err)
	}
	if !r.IsBusy() {
		t.Fatal("reader should be busy once a stream is started")
	}

	inv1, ok, err := stream.Next()
	if err != nil || !ok {
		t.Fatalf("tag 1: ok=%v err=%v", ok, err)
	}
	if inv1.Tag == nil || inv1.Tag.Antenna != 1 {
		t.Fatalf("unexpected tag 1: %+v", inv1.Tag)
	}

	inv2, ok, err := stream.Next()
	if err != nil || !ok {
		t.Fatalf("tag 2: ok=%v err=%v", ok, err)
	}
	if inv2.Tag == nil || inv2.Tag.Antenna != 2 {
		t.Fatalf("unexpected tag 2: %+v", inv2.Tag)
	}

	termResp, ok, err := stream.Next()
	if err != nil || !ok {
		t.Fatalf("terminator: ok=%v err=%v", ok, err)
	}
	if termResp.Tag != nil || termResp.Status != protocol.StatusNoCountLabel {
		t.Fatalf("expected a tagless NO_COUNT_LABEL terminator, got %+v", termResp)
	}
	if r.IsBusy() {
		t.Fatal("reader left busy after the terminator")
	}

	if _, ok, err := stream.Next(); ok || err != nil {
		t.Fatalf("stream should be exhausted: ok=%v err=%v", ok, err)
	}
}

// TestOneShotRecoversFromStrayByte covers spec.md §8 scenario 3: a garbled
// 5-byte prefix is flushed and the retry loop picks up the real frame.
func TestOneShotRecoversFromStrayByte(t *testing.T) {
	frame := mustEncode(t, protocol.GetDeviceInfo, deviceInfoPayload())
	garbage := []byte{0xFF, 0x00, 0x00, 0x00, 0x00}

	ft := &twoStageFake{chunks: [][]byte{garbage, frame[:5], frame[5:]}}
	r := New(ft)

	info, err := r.GetDeviceInfo()
	if err != nil {
		t.Fatalf("GetDeviceInfo: %v", err)
	}
	if info.HardwareMajor != 1 {
		t.Fatalf("unexpected device info after recovery: %+v", info)
	}
	if ft.clears != 2 {
		t.Fatalf("expected 1 pre-write flush plus 1 flush for the garbled prefix, got %d", ft.clears)
	}
}

// TestUSBPacketFragmentation covers spec.md §8 scenario 4: a frame larger
// than one bulk packet arrives split across two ReadBytes calls and is
// reassembled before decoding.
func TestUSBPacketFragmentation(t *testing.T) {
	payload := make([]byte, 73) // total frame length 80, split as 64+16
	frame := mustEncode(t, protocol.ModuleInit, payload)
	if len(frame) != 80 {
		t.Fatalf("test setup: expected an 80-byte frame, got %d", len(frame))
	}

	pf := &packetFake{packets: [][]byte{frame[:64], frame[64:]}}
	r := New(pf)

	resp, err := r.Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if resp.Opcode != protocol.ModuleInit || resp.Status != protocol.StatusSuccess {
		t.Fatalf("unexpected reassembled response: %+v", resp)
	}
}

// TestOneShotRetriesOnOpcodeMismatch covers spec.md §8 scenario 5: stray
// frames for an unrelated opcode are discarded (with a buffer flush each
// time) until the expected opcode shows up.
func TestOneShotRetriesOnOpcodeMismatch(t *testing.T) {
	wrong := mustEncode(t, protocol.Reboot, []byte{byte(protocol.StatusSuccess)})
	right := mustEncode(t, protocol.GetDeviceInfo, deviceInfoPayload())

	ft := &twoStageFake{chunks: [][]byte{
		wrong[:5], wrong[5:],
		wrong[:5], wrong[5:],
		wrong[:5], wrong[5:],
		right[:5], right[5:],
	}}
	r := New(ft)

	info, err := r.GetDeviceInfo()
	if err != nil {
		t.Fatalf("GetDeviceInfo: %v", err)
	}
	if info.HardwareMajor != 1 {
		t.Fatalf("unexpected device info: %+v", info)
	}
	if ft.clears != 1+3 {
		t.Fatalf("expected 1 pre-write flush plus 3 mismatch flushes, got %d", ft.clears)
	}
}

// TestStopInventoryCancels covers spec.md §8 scenario 6: StopInventory ends
// an in-progress stream and clears is_busy regardless of whether a reply to
// INVENTORY_STOP ever arrives.
func TestStopInventoryCancels(t *testing.T) {
	tag1 := mustEncode(t, protocol.InventoryISOContinue, inventoryTagPayload(1, []byte{0xAA, 0xBB, 0xCC, 0xDD}))
	ft := &twoStageFake{chunks: [][]byte{tag1[:5], tag1[5:]}}
	r := New(ft)

	stream, err := r.StartInventory(protocol.WorkModeAnswerMode, nil)
	if err != nil {
		t.Fatalf("StartInventory: %v", err)
	}

	if _, ok, err := stream.Next(); !ok || err != nil {
		t.Fatalf("expected the first tag to decode: ok=%v err=%v", ok, err)
	}
	if !r.IsBusy() {
		t.Fatal("reader should still be busy mid-stream")
	}

	if err := r.StopInventory(protocol.WorkModeAnswerMode); err != nil {
		t.Fatalf("StopInventory: %v", err)
	}
	if r.IsBusy() {
		t.Fatal("is_busy must be false once StopInventory returns")
	}

	if _, ok, err := stream.Next(); ok || err != nil {
		t.Fatalf("stream should end quietly once cancelled: ok=%v err=%v", ok, err)
	}
	// Idempotent: calling Next again on an already-finished stream is safe.
	if _, ok, err := stream.Next(); ok || err != nil {
		t.Fatalf("stream should stay done: ok=%v err=%v", ok, err)
	}
}

// TestBusyReentranceRejected checks the is_busy invariant from spec.md §8
// testable property #4: a one-shot call made while a stream owns the
// reader is rejected rather than interleaving with it.
func TestBusyReentranceRejected(t *testing.T) {
	tag1 := mustEncode(t, protocol.InventoryISOContinue, inventoryTagPayload(1, []byte{0x01}))
	ft := &twoStageFake{chunks: [][]byte{tag1[:5], tag1[5:]}}
	r := New(ft)

	if _, err := r.StartInventory(protocol.WorkModeAnswerMode, nil); err != nil {
		t.Fatalf("StartInventory: %v", err)
	}

	_, err := r.GetDeviceInfo()
	if !errors.Is(err, ErrBusyReentrance) {
		t.Fatalf("expected ErrBusyReentrance, got %v", err)
	}
}
