package transport

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/gousb"
)

// UsbTransport is a packet-driven transport over a USB bulk IN/OUT
// endpoint pair. One ReadBytes call returns one bulk packet, up to
// MaxPacketSize; the engine is responsible for concatenating packets into
// a complete frame (spec.md §4.1).
type UsbTransport struct {
	addr USBAddress

	ctx     *gousb.Context
	dev     *gousb.Device
	cfg     *gousb.Config
	intf    *gousb.Interface
	epIn    *gousb.InEndpoint
	epOut   *gousb.OutEndpoint
	timeout time.Duration

	MaxPacketSize int
}

// OpenUSB opens the reader at the given bus/address and claims its bulk
// IN/OUT endpoint pair.
func OpenUSB(addr USBAddress, timeout time.Duration) (*UsbTransport, error) {
	u := &UsbTransport{addr: addr, timeout: timeout}
	if err := u.connect(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *UsbTransport) connect() error {
	ctx := gousb.NewContext()

	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == ReaderVendorID && desc.Product == ReaderProductID &&
			desc.Bus == u.addr.Bus && desc.Address == u.addr.Address
	})
	if err != nil {
		for _, d := range devs {
			d.Close()
		}
		ctx.Close()
		return newError(KindIO, "usb.Open", err)
	}
	if len(devs) == 0 {
		ctx.Close()
		return newError(KindDisconnected, "usb.Open", fmt.Errorf("reader not found at %s", u.addr))
	}
	dev := devs[0]

	// Linux/macOS: let libusb detach the kernel driver for the claimed
	// interface and re-attach it automatically on Close.
	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		dev.SetAutoDetach(true)
	}

	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		ctx.Close()
		return newError(KindIO, "usb.Config", err)
	}

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return newError(KindIO, "usb.Interface", err)
	}

	epOut, err := findOutEndpoint(intf)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		ctx.Close()
		return newError(KindIO, "usb.OutEndpoint", err)
	}

	epIn, err := findInEndpoint(intf)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		ctx.Close()
		return newError(KindIO, "usb.InEndpoint", err)
	}

	u.ctx = ctx
	u.dev = dev
	u.cfg = cfg
	u.intf = intf
	u.epOut = epOut
	u.epIn = epIn
	u.MaxPacketSize = epIn.Desc.MaxPacketSize

	return nil
}

func findOutEndpoint(intf *gousb.Interface) (*gousb.OutEndpoint, error) {
	for _, ep := range intf.Setting.Endpoints {
		if ep.Direction == gousb.EndpointDirectionOut && ep.TransferType == gousb.TransferTypeBulk {
			return intf.OutEndpoint(ep.Number)
		}
	}
	return nil, fmt.Errorf("no bulk OUT endpoint found")
}

func findInEndpoint(intf *gousb.Interface) (*gousb.InEndpoint, error) {
	for _, ep := range intf.Setting.Endpoints {
		if ep.Direction == gousb.EndpointDirectionIn && ep.TransferType == gousb.TransferTypeBulk {
			return intf.InEndpoint(ep.Number)
		}
	}
	return nil, fmt.Errorf("no bulk IN endpoint found")
}

// IsPacketFramed reports that ReadBytes returns one discrete bulk packet
// rather than honoring the requested byte count, so callers reassemble
// frames by concatenating packets (spec.md §4.1).
func (u *UsbTransport) IsPacketFramed() bool { return true }

func (u *UsbTransport) String() string {
	return fmt.Sprintf("UsbTransport(addr: %s, max_packet_size: %d)", u.addr, u.MaxPacketSize)
}

// WriteAll writes buf as a single bulk OUT transfer.
func (u *UsbTransport) WriteAll(buf []byte) error {
	n, err := u.epOut.Write(buf)
	if err != nil {
		return newError(classifyUSBErr(err), "usb.Write", err)
	}
	if n != len(buf) {
		return newError(KindIO, "usb.Write", fmt.Errorf("short write: wrote %d of %d bytes", n, len(buf)))
	}
	return nil
}

// ReadBytes ignores n and returns exactly one bulk packet, up to
// MaxPacketSize. Callers reassemble multi-packet frames themselves.
func (u *UsbTransport) ReadBytes(_ int) ([]byte, error) {
	buf := make([]byte, u.MaxPacketSize)
	n, err := u.epIn.Read(buf)
	if err != nil {
		return nil, newError(classifyUSBErr(err), "usb.Read", err)
	}
	return buf[:n], nil
}

// ClearBuffer is a no-op: USB has no flushable input buffer in this
// design (spec.md §5).
func (u *UsbTransport) ClearBuffer() error { return nil }

// Close releases the claimed interface/config/device and, on Linux/macOS,
// re-attaches the kernel driver (handled by the auto-detach flag set at
// connect time).
func (u *UsbTransport) Close() error {
	u.intf.Close()
	u.cfg.Close()
	u.dev.Close()
	u.ctx.Close()
	return nil
}

// Reconnect closes and reopens the device. USB addresses can change
// across a close/reopen cycle (bus renumbering), so if the stored address
// no longer resolves, it re-scans for the reader and uses whatever it
// finds first — matching the original driver's reconnect policy.
func (u *UsbTransport) Reconnect() error {
	_ = u.Close()

	if err := u.connect(); err != nil {
		addrs, scanErr := ScanUSBDevices()
		if scanErr == nil && len(addrs) > 0 {
			u.addr = addrs[0]
			return u.connect()
		}
		return err
	}
	return nil
}

func classifyUSBErr(err error) Kind {
	if err == nil {
		return KindIO
	}
	if err == gousb.ErrorNotFound {
		return KindDisconnected
	}
	if err == gousb.ErrorTimeout {
		return KindTimeout
	}
	return KindIO
}
