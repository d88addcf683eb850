package settings

import (
	"net"
	"reflect"
	"testing"

	"github.com/tagfleet/rfid-reader/pkg/protocol"
)

func TestReaderSettingsRoundTrip(t *testing.T) {
	s := ReaderSettings{
		Address:         0x01,
		RfidProtocol:    protocol.RfidProtocolISO18000_6C,
		WorkMode:        protocol.WorkModeAnswerMode,
		OutputInterface: protocol.OutputInterfaceNetwork,
		BaudRate:        protocol.Baud115200,
		Wiegand: Wiegand{
			IsOpen:        true,
			ByteFirstType: protocol.WiegandHighByteFirst,
			Protocol:      protocol.WiegandProtocolWG34,
		},
		Antenna: Antenna{Ant1: true, Ant3: true, Ant8: true},
		Frequency: Frequency{
			Region:       RegionMalaysia,
			MinFrequency: 902.5,
			MaxFrequency: 928.0,
		},
		Power:              30,
		Reserve:            0,
		OutputMemoryBank:   protocol.MemoryBankEPC,
		QValue:             4,
		Session:            protocol.Session1,
		OutputStartAddress: 2,
		OutputLength:       12,
		FilterTime:         5,
		TriggerTime:        10,
		BuzzerEnabled:      true,
		InventoryInterval:  250,
	}

	data, err := s.ToCommandData()
	if err != nil {
		t.Fatalf("ToCommandData: %v", err)
	}

	got, err := DecodeReaderSettings(data)
	if err != nil {
		t.Fatalf("DecodeReaderSettings: %v", err)
	}

	if !reflect.DeepEqual(s, got) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, s)
	}
}

func TestReaderSettingsRejectsOverPower(t *testing.T) {
	s := ReaderSettings{Power: 34}
	if _, err := s.ToCommandData(); err == nil {
		t.Fatal("expected an error for power > 33")
	}
}

func TestDecodeReaderSettingsTooShort(t *testing.T) {
	if _, err := DecodeReaderSettings(make([]byte, 5)); err == nil {
		t.Fatal("expected an error for a truncated buffer")
	}
}

func TestNetworkSettingsRoundTrip(t *testing.T) {
	n := NetworkSettings{
		DHCPEnabled: false,
		IPAddress:   net.IPv4(192, 168, 1, 190),
		SubnetMask:  net.IPv4(255, 255, 255, 0),
		Gateway:     net.IPv4(192, 168, 1, 1),
		Port:        6000,
	}

	data, err := n.ToCommandData()
	if err != nil {
		t.Fatalf("ToCommandData: %v", err)
	}

	got, err := DecodeNetworkSettings(data)
	if err != nil {
		t.Fatalf("DecodeNetworkSettings: %v", err)
	}

	if !got.IPAddress.Equal(n.IPAddress) || !got.SubnetMask.Equal(n.SubnetMask) || !got.Gateway.Equal(n.Gateway) {
		t.Fatalf("round trip address mismatch: got %+v, want %+v", got, n)
	}
	if got.DHCPEnabled != n.DHCPEnabled || got.Port != n.Port {
		t.Fatalf("round trip scalar mismatch: got %+v, want %+v", got, n)
	}
}

func TestAntennaEncodeDecode(t *testing.T) {
	a := Antenna{Ant1: true, Ant4: true, Ant8: true}
	got := DecodeAntenna(a.Encode())
	if got != a {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, a)
	}
}
