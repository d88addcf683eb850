package transport

import (
	"fmt"

	"github.com/google/gousb"
	"go.bug.st/serial"
)

// ReaderVendorID and ReaderProductID identify the reader's USB bulk
// interface (spec.md §6).
const (
	ReaderVendorID  = gousb.ID(0x0483)
	ReaderProductID = gousb.ID(0x5750)
)

// ScanSerialPorts enumerates candidate serial ports on the host. The
// original driver globbed /dev/tty[A-Za-z]* (Linux), /dev/tty.* (macOS) or
// COM1..COM15 (Windows) by hand; go.bug.st/serial already does this
// portably, so we delegate to it instead of re-implementing per-OS globs.
func ScanSerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("scan serial ports: %w", err)
	}
	return ports, nil
}

// USBAddress identifies one candidate reader on the USB bus.
type USBAddress struct {
	Bus     int
	Address int
}

func (a USBAddress) String() string {
	return fmt.Sprintf("Bus: %d, Address: %d", a.Bus, a.Address)
}

// ScanUSBDevices enumerates USB devices matching the reader's fixed
// vendor/product ID pair.
func ScanUSBDevices() ([]USBAddress, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var found []USBAddress
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if desc.Vendor == ReaderVendorID && desc.Product == ReaderProductID {
			found = append(found, USBAddress{Bus: desc.Bus, Address: desc.Address})
		}
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("scan usb devices: %w", err)
	}
	for _, d := range devs {
		d.Close()
	}
	return found, nil
}
