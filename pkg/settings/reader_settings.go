package settings

import (
	"encoding/binary"
	"fmt"

	"github.com/tagfleet/rfid-reader/pkg/protocol"
)

// ReaderSettings is the compound configuration value round-tripped by
// GET_ALL_PARAM/SET_ALL_PARAM (spec.md §3). Every field here must survive
// an Encode followed by Decode unchanged.
type ReaderSettings struct {
	Address         byte
	RfidProtocol    protocol.RfidProtocol
	WorkMode        protocol.WorkMode
	OutputInterface protocol.OutputInterface
	BaudRate        protocol.BaudRate
	Wiegand         Wiegand
	Antenna         Antenna
	Frequency       Frequency
	Power           byte // 0..33
	Reserve         byte
	OutputMemoryBank protocol.MemoryBank
	QValue          byte
	Session         protocol.Session
	OutputStartAddress byte
	OutputLength    byte
	FilterTime      byte
	TriggerTime     byte
	BuzzerEnabled   bool
	InventoryInterval uint16 // milliseconds
}

// readerSettingsWireLen is the fixed encoded length of ReaderSettings'
// command-data body.
const readerSettingsWireLen = 1 + 1 + 1 + 1 + 1 + 3 + 1 + 5 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 2

// ToCommandData serializes the settings into the SET_ALL_PARAM payload
// body (spec.md §4.4).
func (s ReaderSettings) ToCommandData() ([]byte, error) {
	if s.Power > 33 {
		return nil, fmt.Errorf("settings: power %d out of range [0,33]", s.Power)
	}

	buf := make([]byte, 0, readerSettingsWireLen)
	buf = append(buf, s.Address, byte(s.RfidProtocol), byte(s.WorkMode), byte(s.OutputInterface), byte(s.BaudRate))
	buf = append(buf, s.Wiegand.Encode()...)
	buf = append(buf, s.Antenna.Encode())
	buf = append(buf, s.Frequency.Encode()...)
	buf = append(buf, s.Power, s.Reserve)
	buf = append(buf, byte(s.OutputMemoryBank), s.QValue, byte(s.Session))
	buf = append(buf, s.OutputStartAddress, s.OutputLength, s.FilterTime, s.TriggerTime)

	buzzer := byte(0)
	if s.BuzzerEnabled {
		buzzer = 1
	}
	buf = append(buf, buzzer)

	interval := make([]byte, 2)
	binary.BigEndian.PutUint16(interval, s.InventoryInterval)
	buf = append(buf, interval...)

	return buf, nil
}

// DecodeReaderSettings parses a GET_ALL_PARAM response body into
// ReaderSettings. Trailing bytes beyond the fixed layout are tolerated
// (spec.md §9: "decoders should tolerate extra trailing bytes").
func DecodeReaderSettings(buf []byte) (ReaderSettings, error) {
	if len(buf) < readerSettingsWireLen {
		return ReaderSettings{}, fmt.Errorf("settings: reader settings body too short: %d < %d", len(buf), readerSettingsWireLen)
	}

	var s ReaderSettings
	s.Address = buf[0]
	s.RfidProtocol = protocol.RfidProtocol(buf[1])
	s.WorkMode = protocol.WorkMode(buf[2])
	s.OutputInterface = protocol.OutputInterface(buf[3])
	s.BaudRate = protocol.BaudRate(buf[4])
	s.Wiegand = DecodeWiegand(buf[5:8])
	s.Antenna = DecodeAntenna(buf[8])
	s.Frequency = DecodeFrequency(buf[9:14])
	s.Power = buf[14]
	s.Reserve = buf[15]
	s.OutputMemoryBank = protocol.MemoryBank(buf[16])
	s.QValue = buf[17]
	s.Session = protocol.Session(buf[18])
	s.OutputStartAddress = buf[19]
	s.OutputLength = buf[20]
	s.FilterTime = buf[21]
	s.TriggerTime = buf[22]
	s.BuzzerEnabled = buf[23] != 0
	s.InventoryInterval = binary.BigEndian.Uint16(buf[24:26])

	return s, nil
}
