package response

import "fmt"

// DeviceInfo is the decoded body of GET_DEVICE_INFO.
type DeviceInfo struct {
	Response
	HardwareMajor byte
	HardwareMinor byte
	FirmwareMajor byte
	FirmwareMinor byte
	SerialNumber  [4]byte
}

const deviceInfoWireLen = 1 + 1 + 1 + 1 + 4

// ParseDeviceInfo decodes a GET_DEVICE_INFO response.
func ParseDeviceInfo(r Response) (DeviceInfo, error) {
	if len(r.Body) < deviceInfoWireLen {
		return DeviceInfo{Response: r}, fmt.Errorf("response: device info body too short: %d < %d", len(r.Body), deviceInfoWireLen)
	}
	d := DeviceInfo{
		Response:      r,
		HardwareMajor: r.Body[0],
		HardwareMinor: r.Body[1],
		FirmwareMajor: r.Body[2],
		FirmwareMinor: r.Body[3],
	}
	copy(d.SerialNumber[:], r.Body[4:8])
	return d, nil
}

func (d DeviceInfo) String() string {
	return fmt.Sprintf("DeviceInfo(hw: %d.%d, fw: %d.%d, serial: %x)",
		d.HardwareMajor, d.HardwareMinor, d.FirmwareMajor, d.FirmwareMinor, d.SerialNumber)
}
