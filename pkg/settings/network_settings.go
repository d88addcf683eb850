package settings

import (
	"encoding/binary"
	"fmt"
	"net"
)

// NetworkSettings configures the reader's local Ethernet/Wi-Fi interface
// (spec.md §4.4).
type NetworkSettings struct {
	DHCPEnabled bool
	IPAddress   net.IP
	SubnetMask  net.IP
	Gateway     net.IP
	Port        uint16
}

const networkSettingsWireLen = 1 + 4 + 4 + 4 + 2

// ToCommandData serializes the network block.
func (n NetworkSettings) ToCommandData() ([]byte, error) {
	ip4 := n.IPAddress.To4()
	mask4 := n.SubnetMask.To4()
	gw4 := n.Gateway.To4()
	if ip4 == nil || mask4 == nil || gw4 == nil {
		return nil, fmt.Errorf("settings: network addresses must be IPv4")
	}

	dhcp := byte(0)
	if n.DHCPEnabled {
		dhcp = 1
	}

	buf := make([]byte, 0, networkSettingsWireLen)
	buf = append(buf, dhcp)
	buf = append(buf, ip4...)
	buf = append(buf, mask4...)
	buf = append(buf, gw4...)
	port := make([]byte, 2)
	binary.BigEndian.PutUint16(port, n.Port)
	buf = append(buf, port...)
	return buf, nil
}

// DecodeNetworkSettings parses a GET response body.
func DecodeNetworkSettings(buf []byte) (NetworkSettings, error) {
	if len(buf) < networkSettingsWireLen {
		return NetworkSettings{}, fmt.Errorf("settings: network settings body too short: %d < %d", len(buf), networkSettingsWireLen)
	}
	return NetworkSettings{
		DHCPEnabled: buf[0] != 0,
		IPAddress:   net.IPv4(buf[1], buf[2], buf[3], buf[4]),
		SubnetMask:  net.IPv4(buf[5], buf[6], buf[7], buf[8]),
		Gateway:     net.IPv4(buf[9], buf[10], buf[11], buf[12]),
		Port:        binary.BigEndian.Uint16(buf[13:15]),
	}, nil
}

// RemoteNetworkSettings configures the reader's upstream (server-side)
// network endpoint, the counterpart to NetworkSettings' local interface.
type RemoteNetworkSettings struct {
	ServerAddress net.IP
	ServerPort    uint16
	HeartbeatSecs uint16
}

const remoteNetworkSettingsWireLen = 4 + 2 + 2

// ToCommandData serializes the remote-network block.
func (r RemoteNetworkSettings) ToCommandData() ([]byte, error) {
	addr4 := r.ServerAddress.To4()
	if addr4 == nil {
		return nil, fmt.Errorf("settings: remote server address must be IPv4")
	}
	buf := make([]byte, 0, remoteNetworkSettingsWireLen)
	buf = append(buf, addr4...)
	port := make([]byte, 2)
	binary.BigEndian.PutUint16(port, r.ServerPort)
	buf = append(buf, port...)
	hb := make([]byte, 2)
	binary.BigEndian.PutUint16(hb, r.HeartbeatSecs)
	buf = append(buf, hb...)
	return buf, nil
}

// DecodeRemoteNetworkSettings parses a GET response body.
func DecodeRemoteNetworkSettings(buf []byte) (RemoteNetworkSettings, error) {
	if len(buf) < remoteNetworkSettingsWireLen {
		return RemoteNetworkSettings{}, fmt.Errorf("settings: remote network settings body too short: %d < %d", len(buf), remoteNetworkSettingsWireLen)
	}
	return RemoteNetworkSettings{
		ServerAddress: net.IPv4(buf[0], buf[1], buf[2], buf[3]),
		ServerPort:    binary.BigEndian.Uint16(buf[4:6]),
		HeartbeatSecs: binary.BigEndian.Uint16(buf[6:8]),
	}, nil
}
