// Package settings implements the structured payload codecs layered on
// top of the frame codec: ReaderSettings, NetworkSettings,
// RemoteNetworkSettings, OutputControl, MaskInventoryPermission,
// Frequency, Antenna, Wiegand, and AnswerModeInventoryParameter
// (spec.md §4.4).
package settings

// Antenna encodes up to eight antenna enable flags into a single mask
// byte, LSB=antenna 1 (spec.md §4.4).
type Antenna struct {
	Ant1, Ant2, Ant3, Ant4 bool
	Ant5, Ant6, Ant7, Ant8 bool
}

// Encode packs the eight flags into one byte.
func (a Antenna) Encode() byte {
	var b byte
	for i, on := range []bool{a.Ant1, a.Ant2, a.Ant3, a.Ant4, a.Ant5, a.Ant6, a.Ant7, a.Ant8} {
		if on {
			b |= 1 << uint(i)
		}
	}
	return b
}

// DecodeAntenna unpacks a mask byte into its eight flags.
func DecodeAntenna(b byte) Antenna {
	bit := func(n uint) bool { return b&(1<<n) != 0 }
	return Antenna{
		Ant1: bit(0), Ant2: bit(1), Ant3: bit(2), Ant4: bit(3),
		Ant5: bit(4), Ant6: bit(5), Ant7: bit(6), Ant8: bit(7),
	}
}
