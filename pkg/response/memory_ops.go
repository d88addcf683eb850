package response

import (
	"encoding/binary"
	"fmt"

	"github.com/tagfleet/rfid-reader/pkg/protocol"
)

// tagRecord is the common per-tag shape shared by read/write/lock/kill
// responses (spec.md §3; original_source rfid/read_write.py).
type tagRecord struct {
	TagStatus protocol.TagStatus
	Antenna   byte
	CRC       uint16
	PC        uint16
	EPCLength byte
	EPC       []byte
}

const tagRecordFixedLen = 1 + 1 + 2 + 2 + 1 // tag_status + antenna + crc + pc + epc_length

func parseTagRecord(body []byte) (tagRecord, []byte, error) {
	if len(body) < tagRecordFixedLen {
		return tagRecord{}, nil, fmt.Errorf("response: tag record body too short: %d < %d", len(body), tagRecordFixedLen)
	}
	rec := tagRecord{
		TagStatus: protocol.TagStatus(body[0]),
		Antenna:   body[1],
		CRC:       binary.BigEndian.Uint16(body[2:4]),
		PC:        binary.BigEndian.Uint16(body[4:6]),
		EPCLength: body[6],
	}
	epcEnd := tagRecordFixedLen + int(rec.EPCLength)
	if len(body) < epcEnd {
		return tagRecord{}, nil, fmt.Errorf("response: tag record epc truncated: need %d, have %d", epcEnd, len(body))
	}
	rec.EPC = append([]byte(nil), body[tagRecordFixedLen:epcEnd]...)
	return rec, body[epcEnd:], nil
}

// ReadMemory is the decoded body of one READ_ISO_TAG response frame.
type ReadMemory struct {
	Response
	TagStatus      protocol.TagStatus
	Antenna        byte
	CRC            uint16
	PC             uint16
	EPCLength      byte
	EPC            []byte
	DataWordLength byte
	Data           []byte
}

// ParseReadMemory decodes a READ_ISO_TAG response. NO_COUNT_LABEL frames
// carry no tag record.
func ParseReadMemory(r Response) (ReadMemory, error) {
	if r.Status == protocol.StatusNoCountLabel {
		return ReadMemory{Response: r}, nil
	}
	rec, rest, err := parseTagRecord(r.Body)
	if err != nil {
		return ReadMemory{Response: r}, err
	}
	if len(rest) < 1 {
		return ReadMemory{Response: r}, fmt.Errorf("response: read memory missing data_word_length")
	}
	wordLen := rest[0]
	dataEnd := 1 + int(wordLen)*2
	if len(rest) < dataEnd {
		return ReadMemory{Response: r}, fmt.Errorf("response: read memory data truncated: need %d, have %d", dataEnd, len(rest))
	}
	return ReadMemory{
		Response:       r,
		TagStatus:      rec.TagStatus,
		Antenna:        rec.Antenna,
		CRC:            rec.CRC,
		PC:             rec.PC,
		EPCLength:      rec.EPCLength,
		EPC:            rec.EPC,
		DataWordLength: wordLen,
		Data:           append([]byte(nil), rest[1:dataEnd]...),
	}, nil
}

// WriteMemory is the decoded body of one WRITE_ISO_TAG response frame.
type WriteMemory struct {
	Response
	TagStatus protocol.TagStatus
	Antenna   byte
	CRC       uint16
	PC        uint16
	EPCLength byte
	EPC       []byte
}

// ParseWriteMemory decodes a WRITE_ISO_TAG response.
func ParseWriteMemory(r Response) (WriteMemory, error) {
	if r.Status == protocol.StatusNoCountLabel {
		return WriteMemory{Response: r}, nil
	}
	rec, _, err := parseTagRecord(r.Body)
	if err != nil {
		return WriteMemory{Response: r}, err
	}
	return WriteMemory{
		Response: r, TagStatus: rec.TagStatus, Antenna: rec.Antenna,
		CRC: rec.CRC, PC: rec.PC, EPCLength: rec.EPCLength, EPC: rec.EPC,
	}, nil
}

// LockMemory is the decoded body of one LOCK_ISO_TAG response frame.
type LockMemory struct {
	Response
	TagStatus protocol.TagStatus
	Antenna   byte
	CRC       uint16
	PC        uint16
	EPCLength byte
	EPC       []byte
}

// ParseLockMemory decodes a LOCK_ISO_TAG response.
func ParseLockMemory(r Response) (LockMemory, error) {
	if r.Status == protocol.StatusNoCountLabel {
		return LockMemory{Response: r}, nil
	}
	rec, _, err := parseTagRecord(r.Body)
	if err != nil {
		return LockMemory{Response: r}, err
	}
	return LockMemory{
		Response: r, TagStatus: rec.TagStatus, Antenna: rec.Antenna,
		CRC: rec.CRC, PC: rec.PC, EPCLength: rec.EPCLength, EPC: rec.EPC,
	}, nil
}

// KillTag is the decoded body of one KILL_ISO_TAG response frame.
type KillTag struct {
	Response
	TagStatus protocol.TagStatus
	Antenna   byte
	CRC       uint16
	PC        uint16
	EPCLength byte
	EPC       []byte
}

// ParseKillTag decodes a KILL_ISO_TAG response.
func ParseKillTag(r Response) (KillTag, error) {
	if r.Status == protocol.StatusNoCountLabel {
		return KillTag{Response: r}, nil
	}
	rec, _, err := parseTagRecord(r.Body)
	if err != nil {
		return KillTag{Response: r}, err
	}
	return KillTag{
		Response: r, TagStatus: rec.TagStatus, Antenna: rec.Antenna,
		CRC: rec.CRC, PC: rec.PC, EPCLength: rec.EPCLength, EPC: rec.EPC,
	}, nil
}
