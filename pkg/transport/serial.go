package transport

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// SerialTransport is a length-driven transport over a local serial port:
// 8-N-1, a configurable baud rate, and a read timeout (spec.md §6). No
// write timeout is set on the port.
type SerialTransport struct {
	port     serial.Port
	portName string
	baud     int
	timeout  time.Duration
}

// OpenSerial opens a serial port at baud with the given read timeout. Only
// the read timeout is configured; writes carry no timeout.
func OpenSerial(portName string, baud int, timeout time.Duration) (*SerialTransport, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, newError(KindIO, "serial.Open", err)
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, newError(KindIO, "serial.SetReadTimeout", err)
	}

	return &SerialTransport{
		port:     port,
		portName: portName,
		baud:     baud,
		timeout:  timeout,
	}, nil
}

func (s *SerialTransport) String() string {
	return fmt.Sprintf("SerialTransport(port: %s, baud: %d, timeout: %s)", s.portName, s.baud, s.timeout)
}

// WriteAll writes buf in full. No write deadline is set on the port.
func (s *SerialTransport) WriteAll(buf []byte) error {
	n, err := s.port.Write(buf)
	if err != nil {
		return newError(classifyErr(err), "serial.Write", err)
	}
	if n != len(buf) {
		return newError(KindIO, "serial.Write", fmt.Errorf("short write: wrote %d of %d bytes", n, len(buf)))
	}
	return nil
}

// ReadBytes performs the two-stage length-driven read: the engine calls
// this with 5 (HEADER..LENGTH) and then with LENGTH+2 (PAYLOAD+CHECKSUM).
// A timeout or short read returns whatever was read with a nil error; it
// is the caller's job to treat a too-short buffer as non-fatal.
func (s *SerialTransport) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(s.port, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return buf[:read], nil
		}
		return buf[:read], newError(classifyErr(err), "serial.Read", err)
	}
	return buf[:read], nil
}

// ClearBuffer flushes both the input and output OS buffers.
func (s *SerialTransport) ClearBuffer() error {
	if err := s.port.ResetInputBuffer(); err != nil {
		return newError(KindIO, "serial.ResetInputBuffer", err)
	}
	if err := s.port.ResetOutputBuffer(); err != nil {
		return newError(KindIO, "serial.ResetOutputBuffer", err)
	}
	return nil
}

// Close closes the underlying port.
func (s *SerialTransport) Close() error {
	if err := s.port.Close(); err != nil {
		return newError(KindIO, "serial.Close", err)
	}
	return nil
}

// Reconnect closes and reopens the same port at the same baud/timeout.
func (s *SerialTransport) Reconnect() error {
	_ = s.port.Close()

	mode := &serial.Mode{
		BaudRate: s.baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(s.portName, mode)
	if err != nil {
		return newError(KindDisconnected, "serial.Reconnect", err)
	}
	if err := port.SetReadTimeout(s.timeout); err != nil {
		port.Close()
		return newError(KindIO, "serial.Reconnect", err)
	}
	s.port = port
	return nil
}

// classifyErr maps whatever go.bug.st/serial returns for a timed-out read
// or write into KindTimeout; everything else is treated as an I/O error.
// An error counts as a timeout when it has a Timeout() method that reports
// true.
func classifyErr(err error) Kind {
	if err == nil {
		return KindIO
	}
	type timeouter interface{ Timeout() bool }
	if t, ok := err.(timeouter); ok && t.Timeout() {
		return KindTimeout
	}
	return KindIO
}
