package settings

import "encoding/binary"

// Region selects the frequency-plan byte the reader uses to interpret
// Frequency's scaled min/max fields.
type Region byte

// RegionMalaysia is the region selector used by the original driver's
// survey script (original_source/script.py).
const RegionMalaysia Region = 0x08

// Frequency encodes the hop-region selector plus a pair of 16-bit
// tenths-of-MHz scaled frequency bounds (spec.md §4.4).
type Frequency struct {
	Region      Region
	MinFrequency float64 // MHz
	MaxFrequency float64 // MHz
}

const freqScale = 10

// Encode writes region(1) | min(2 BE) | max(2 BE).
func (f Frequency) Encode() []byte {
	buf := make([]byte, 5)
	buf[0] = byte(f.Region)
	binary.BigEndian.PutUint16(buf[1:3], uint16(f.MinFrequency*freqScale+0.5))
	binary.BigEndian.PutUint16(buf[3:5], uint16(f.MaxFrequency*freqScale+0.5))
	return buf
}

// DecodeFrequency parses the 5-byte region+min+max block.
func DecodeFrequency(buf []byte) Frequency {
	return Frequency{
		Region:       Region(buf[0]),
		MinFrequency: float64(binary.BigEndian.Uint16(buf[1:3])) / freqScale,
		MaxFrequency: float64(binary.BigEndian.Uint16(buf[3:5])) / freqScale,
	}
}
