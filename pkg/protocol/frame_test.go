package protocol

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		opcode  Opcode
		payload []byte
	}{
		{"no payload", GetDeviceInfo, nil},
		{"short payload", SetPower, []byte{0x01, 33}},
		{"max payload", ReadISOTag, make([]byte, MaxPayloadLen)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := Encode(tc.opcode, tc.payload)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			frame, err := Decode(buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if frame.Opcode != tc.opcode {
				t.Errorf("opcode = %v, want %v", frame.Opcode, tc.opcode)
			}
			if len(frame.Payload) != len(tc.payload) {
				t.Errorf("payload len = %d, want %d", len(frame.Payload), len(tc.payload))
			}
			for i := range tc.payload {
				if frame.Payload[i] != tc.payload[i] {
					t.Fatalf("payload[%d] = %#x, want %#x", i, frame.Payload[i], tc.payload[i])
				}
			}
		})
	}
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	_, err := Encode(GetDeviceInfo, make([]byte, MaxPayloadLen+1))
	if err == nil {
		t.Fatal("expected an error for an oversized payload")
	}
}

func TestDecodeBadHeader(t *testing.T) {
	buf, _ := Encode(GetDeviceInfo, []byte{0x00})
	buf[0] = 0xFF

	_, err := Decode(buf)
	if err != ErrBadHeader {
		t.Fatalf("err = %v, want ErrBadHeader", err)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	buf, _ := Encode(GetDeviceInfo, []byte{0x00, 0x01, 0x02})
	_, err := Decode(buf[:len(buf)-2])
	if err != ErrShort {
		t.Fatalf("err = %v, want ErrShort", err)
	}
}

// TestChecksumDetectsSingleByteFlip exercises spec property #3: flipping
// any single byte inside a frame (excluding the checksum itself) must be
// rejected — as a checksum mismatch, or as a bad header or short frame
// when the flipped byte is HEADER or LENGTH.
func TestChecksumDetectsSingleByteFlip(t *testing.T) {
	buf, err := Encode(GetDeviceInfo, []byte{0x01, 0x02, 0x03, 0x04})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for i := 0; i < len(buf)-2; i++ {
		mutated := append([]byte(nil), buf...)
		mutated[i] ^= 0xFF

		_, err := Decode(mutated)
		if err == nil {
			t.Errorf("byte %d: flipping produced no error", i)
			continue
		}
		if err != ErrBadHeader && err != ErrBadChecksum && err != ErrShort {
			t.Errorf("byte %d: got %v, want BadHeader, BadChecksum, or Short (LENGTH byte flip)", i, err)
		}
	}
}
