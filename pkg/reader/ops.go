package reader

import (
	"fmt"
	"time"

	"github.com/tagfleet/rfid-reader/pkg/command"
	"github.com/tagfleet/rfid-reader/pkg/protocol"
	"github.com/tagfleet/rfid-reader/pkg/response"
	"github.com/tagfleet/rfid-reader/pkg/settings"
)

// Init sends MODULE_INIT, the handshake a caller performs once after
// opening a transport and before any other operation (spec.md §4.3).
func (r *Reader) Init() (response.Response, error) {
	return r.doOneShot(command.New(protocol.ModuleInit), protocol.ModuleInit)
}

// Reboot sends REBOOT, restoring factory defaults on the reader.
func (r *Reader) Reboot() (response.Response, error) {
	return r.doOneShot(command.New(protocol.Reboot), protocol.Reboot)
}

// GetDeviceInfo retrieves hardware/firmware version and serial number. The
// request carries no payload (spec.md §8 scenario 1: LENGTH=00).
func (r *Reader) GetDeviceInfo() (response.DeviceInfo, error) {
	resp, err := r.doOneShot(command.New(protocol.GetDeviceInfo), protocol.GetDeviceInfo)
	if err != nil {
		return response.DeviceInfo{}, err
	}
	return response.ParseDeviceInfo(resp)
}

// SetPower sets the RF output power in dBm, 0..33, plus a reserved byte
// (spec.md §4.4, §8 "Boundary behavior"). An out-of-range value is rejected
// before any transport I/O.
func (r *Reader) SetPower(dBm byte) (response.Response, error) {
	if dBm > 33 {
		return response.Response{}, newProtocolError(ErrKindInvalidArgument, fmt.Errorf("power %d out of range [0,33]", dBm))
	}
	const reserve = 0x00
	c := command.NewWithPayload(protocol.SetPower, []byte{dBm, reserve})
	return r.doOneShot(c, protocol.SetPower)
}

// ReleaseCloseRelay opens (release=true) or closes (release=false) the
// reader's relay output for validTime, the effective time when closing
// (original_source rfid/reader.py's set_relay).
func (r *Reader) ReleaseCloseRelay(release bool, validTime byte) (response.Response, error) {
	releaseValue := byte(0x02)
	if release {
		releaseValue = 0x01
	}
	c := command.NewWithPayload(protocol.ReleaseCloseRelay, []byte{releaseValue, validTime})
	return r.doOneShot(c, protocol.ReleaseCloseRelay)
}

// GetRfidProtocol retrieves the active air-interface protocol.
func (r *Reader) GetRfidProtocol() (response.RfidProtocol, error) {
	c := command.NewWithPayload(protocol.SetGetRfidProtocol, []byte{byte(protocol.CommandOptionGet)})
	resp, err := r.doOneShot(c, protocol.SetGetRfidProtocol)
	if err != nil {
		return response.RfidProtocol{}, err
	}
	return response.ParseRfidProtocol(resp)
}

// SetRfidProtocol sets the active air-interface protocol.
func (r *Reader) SetRfidProtocol(p protocol.RfidProtocol) (response.Response, error) {
	c := command.NewWithPayload(protocol.SetGetRfidProtocol, []byte{byte(protocol.CommandOptionSet), byte(p)})
	return r.doOneShot(c, protocol.SetGetRfidProtocol)
}

// GetReaderSettings retrieves the full compound configuration block.
func (r *Reader) GetReaderSettings() (response.ReaderSettings, error) {
	c := command.NewWithPayload(protocol.GetAllParam, []byte{byte(protocol.CommandOptionGet)})
	resp, err := r.doOneShot(c, protocol.GetAllParam)
	if err != nil {
		return response.ReaderSettings{}, err
	}
	return response.ParseReaderSettings(resp)
}

// SetReaderSettings writes the full compound configuration block.
func (r *Reader) SetReaderSettings(s settings.ReaderSettings) (response.Response, error) {
	data, err := s.ToCommandData()
	if err != nil {
		return response.Response{}, newProtocolError(ErrKindInvalidArgument, err)
	}
	payload := append([]byte{byte(protocol.CommandOptionSet)}, data...)
	c := command.NewWithPayload(protocol.SetAllParam, payload)
	return r.doOneShot(c, protocol.SetAllParam)
}

// GetNetworkSettings retrieves the reader's local network configuration.
func (r *Reader) GetNetworkSettings() (response.NetworkSettings, error) {
	c := command.NewWithPayload(protocol.SetGetNetwork, []byte{byte(protocol.CommandOptionGet)})
	resp, err := r.doOneShot(c, protocol.SetGetNetwork)
	if err != nil {
		return response.NetworkSettings{}, err
	}
	return response.ParseNetworkSettings(resp)
}

// SetNetworkSettings writes the reader's local network configuration.
func (r *Reader) SetNetworkSettings(n settings.NetworkSettings) (response.Response, error) {
	data, err := n.ToCommandData()
	if err != nil {
		return response.Response{}, newProtocolError(ErrKindInvalidArgument, err)
	}
	payload := append([]byte{byte(protocol.CommandOptionSet)}, data...)
	c := command.NewWithPayload(protocol.SetGetNetwork, payload)
	return r.doOneShot(c, protocol.SetGetNetwork)
}

// GetRemoteNetworkSettings retrieves the reader's upstream server endpoint.
func (r *Reader) GetRemoteNetworkSettings() (response.RemoteNetworkSettings, error) {
	c := command.NewWithPayload(protocol.SetGetRemoteNetwork, []byte{byte(protocol.CommandOptionGet)})
	resp, err := r.doOneShot(c, protocol.SetGetRemoteNetwork)
	if err != nil {
		return response.RemoteNetworkSettings{}, err
	}
	return response.ParseRemoteNetworkSettings(resp)
}

// SetRemoteNetworkSettings writes the reader's upstream server endpoint.
func (r *Reader) SetRemoteNetworkSettings(rn settings.RemoteNetworkSettings) (response.Response, error) {
	data, err := rn.ToCommandData()
	if err != nil {
		return response.Response{}, newProtocolError(ErrKindInvalidArgument, err)
	}
	payload := append([]byte{byte(protocol.CommandOptionSet)}, data...)
	c := command.NewWithPayload(protocol.SetGetRemoteNetwork, payload)
	return r.doOneShot(c, protocol.SetGetRemoteNetwork)
}

// SetMaxTemperature sets the thermal cutoff, in whole degrees Celsius,
// above which the reader suspends RF output.
func (r *Reader) SetMaxTemperature(celsius int8) (response.Response, error) {
	c := command.NewWithPayload(protocol.SetMaxTemperature, []byte{byte(celsius)})
	return r.doOneShot(c, protocol.SetMaxTemperature)
}

// GetCurrentTemperature reads the reader's current internal temperature.
func (r *Reader) GetCurrentTemperature() (response.CurrentTemperature, error) {
	resp, err := r.doOneShot(command.New(protocol.GetCurrentTemperature), protocol.GetCurrentTemperature)
	if err != nil {
		return response.CurrentTemperature{}, err
	}
	return response.ParseCurrentTemperature(resp)
}

// GetAntennaPower retrieves the enable flag and per-antenna power levels.
func (r *Reader) GetAntennaPower() (response.AntennaPower, error) {
	c := command.NewWithPayload(protocol.SetGetAntennaPower, []byte{byte(protocol.CommandOptionGet)})
	resp, err := r.doOneShot(c, protocol.SetGetAntennaPower)
	if err != nil {
		return response.AntennaPower{}, err
	}
	return response.ParseAntennaPower(resp)
}

// SetAntennaPower sets the enable flag and per-antenna power levels (one
// byte per antenna, antennas 1..8).
func (r *Reader) SetAntennaPower(enabled bool, power [8]byte) (response.Response, error) {
	v := byte(0)
	if enabled {
		v = 1
	}
	payload := make([]byte, 0, 2+8)
	payload = append(payload, byte(protocol.CommandOptionSet), v)
	payload = append(payload, power[:]...)
	c := command.NewWithPayload(protocol.SetGetAntennaPower, payload)
	return r.doOneShot(c, protocol.SetGetAntennaPower)
}

// SelectMask installs a pre-operation EPC filter mask restricting
// subsequent commands to matching tags. startAddress is in bytes and is
// encoded on the wire as a bit pointer; an odd-length mask is padded with
// one trailing zero byte before encoding, but the payload's declared
// length counts the pre-padding mask in bits (spec.md §8 "Boundary
// behavior"; original_source rfid/reader.py's select_mask).
func (r *Reader) SelectMask(startAddress uint16, mask []byte) (response.Response, error) {
	bitLen := len(mask) * 8
	bitAddress := startAddress * 8

	padded := mask
	if len(mask)%2 != 0 {
		padded = append(append([]byte(nil), mask...), 0)
	}

	payload := make([]byte, 0, 2+1+len(padded))
	payload = append(payload, byte(bitAddress>>8), byte(bitAddress))
	payload = append(payload, byte(bitLen))
	payload = append(payload, padded...)

	c := command.NewWithPayload(protocol.SelectMask, payload)
	return r.doOneShot(c, protocol.SelectMask)
}

// GetOutputControl retrieves the inventory output-shaping and relay-idle
// configuration.
func (r *Reader) GetOutputControl() (response.OutputControl, error) {
	c := command.NewWithPayload(protocol.SetGetOutputParameters, []byte{byte(protocol.CommandOptionGet)})
	resp, err := r.doOneShot(c, protocol.SetGetOutputParameters)
	if err != nil {
		return response.OutputControl{}, err
	}
	return response.ParseOutputControl(resp)
}

// SetOutputControl writes the inventory output-shaping and relay-idle
// configuration.
func (r *Reader) SetOutputControl(o settings.OutputControl) (response.Response, error) {
	payload := append([]byte{byte(protocol.CommandOptionSet)}, o.ToCommandData()...)
	c := command.NewWithPayload(protocol.SetGetOutputParameters, payload)
	return r.doOneShot(c, protocol.SetGetOutputParameters)
}

// GetMaskInventoryPermission retrieves whether the active select mask is
// applied to inventory cycles.
func (r *Reader) GetMaskInventoryPermission() (response.MaskInventoryPermission, error) {
	c := command.NewWithPayload(protocol.SetGetPermission, []byte{byte(protocol.CommandOptionGet)})
	resp, err := r.doOneShot(c, protocol.SetGetPermission)
	if err != nil {
		return response.MaskInventoryPermission{}, err
	}
	return response.ParseMaskInventoryPermission(resp)
}

// SetMaskInventoryPermission enables or disables applying the active
// select mask to inventory cycles. The reader is known to buffer stale
// tag reads across a filter change, so after the SET acknowledgment this
// fires a short inventory burst (StopAfter=NUMBER, value 2) and stops it,
// draining that
// buffer before a caller's next start_inventory sees it (original_source
// rfid/reader.py's set_mask_inventory_permission, "Handle inventory
// buffer after set filter").
func (r *Reader) SetMaskInventoryPermission(m settings.MaskInventoryPermission) (response.Response, error) {
	payload := append([]byte{byte(protocol.CommandOptionSet)}, m.ToCommandData()...)
	c := command.NewWithPayload(protocol.SetGetPermission, payload)
	resp, err := r.doOneShot(c, protocol.SetGetPermission)
	if err != nil {
		return response.Response{}, err
	}

	burst := settings.AnswerModeInventoryParameter{StopAfter: protocol.StopAfterNumber, Value: 2}
	burstCmd := command.NewWithPayload(protocol.InventoryISOContinue, burst.Encode())
	if err := r.writeCommand(burstCmd); err != nil {
		return response.Response{}, err
	}

	time.Sleep(200 * time.Millisecond)

	if err := r.writeCommandNoFlush(command.New(protocol.InventoryStop)); err != nil {
		return response.Response{}, err
	}

	return resp, nil
}

// GetInventoryRange retrieves the reader's configured inventory start
// address and length, used for analytics rather than operational control
// (original_source script.py).
func (r *Reader) GetInventoryRange() (response.InventoryRange, error) {
	c := command.NewWithPayload(protocol.InventoryRange, []byte{byte(protocol.CommandOptionGet)})
	resp, err := r.doOneShot(c, protocol.InventoryRange)
	if err != nil {
		return response.InventoryRange{}, err
	}
	return response.ParseInventoryRange(resp)
}

// SetInventoryRange writes the reader's inventory start address and
// length.
func (r *Reader) SetInventoryRange(startAddress, length byte) (response.Response, error) {
	payload := []byte{byte(protocol.CommandOptionSet), startAddress, length, 0, 0}
	c := command.NewWithPayload(protocol.InventoryRange, payload)
	return r.doOneShot(c, protocol.InventoryRange)
}
