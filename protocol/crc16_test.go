package protocol

import "testing"

func TestCRC16KnownValues(t *testing.T) {
	// Any single-bit difference must change the checksum.
	base := []byte{0x00, 0x40, 0xF6, 0x01}
	crc := CRC16(base)
	for i := range base {
		for bit := uint(0); bit < 8; bit++ {
			mutated := append([]byte(nil), base...)
			mutated[i] ^= 1 << bit
			if CRC16(mutated) == crc {
				t.Errorf("bit flip at byte %d bit %d not detected", i, bit)
			}
		}
	}
}

func TestCRC16Deterministic(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	if CRC16(data) != CRC16(data) {
		t.Fatal("CRC16 not deterministic")
	}
	if CRC16(nil) != 0xFFFF {
		t.Errorf("empty input: got %#x, want seed 0xFFFF", CRC16(nil))
	}
}
