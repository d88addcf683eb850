package reader

// twoStageFake is a scripted Transport modeling the serial/TCP read
// contract: each ReadBytes call returns the next queued chunk verbatim,
// regardless of the requested count, and an exhausted queue returns a
// possibly-empty, nil-error read (a timeout).
type twoStageFake struct {
	chunks [][]byte
	idx    int
	writes [][]byte
	clears int
}

func (f *twoStageFake) WriteAll(buf []byte) error {
	f.writes = append(f.writes, append([]byte(nil), buf...))
	return nil
}

func (f *twoStageFake) ReadBytes(n int) ([]byte, error) {
	if f.idx >= len(f.chunks) {
		return nil, nil
	}
	c := f.chunks[f.idx]
	f.idx++
	return c, nil
}

func (f *twoStageFake) ClearBuffer() error { f.clears++; return nil }
func (f *twoStageFake) Close() error       { return nil }
func (f *twoStageFake) Reconnect() error   { return nil }

// packetFake is a scripted Transport modeling the USB bulk-endpoint
// contract: ReadBytes ignores n and returns the next queued packet.
type packetFake struct {
	packets [][]byte
	idx     int
	writes  [][]byte
}

func (f *packetFake) WriteAll(buf []byte) error {
	f.writes = append(f.writes, append([]byte(nil), buf...))
	return nil
}

func (f *packetFake) ReadBytes(n int) ([]byte, error) {
	if f.idx >= len(f.packets) {
		return nil, nil
	}
	p := f.packets[f.idx]
	f.idx++
	return p, nil
}

func (f *packetFake) ClearBuffer() error   { return nil }
func (f *packetFake) Close() error         { return nil }
func (f *packetFake) Reconnect() error     { return nil }
func (f *packetFake) IsPacketFramed() bool { return true }
