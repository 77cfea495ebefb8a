package kemove

import "testing"

func TestCrc16KemoveCheckValue(t *testing.T) {
	// CRC-16/CCITT-FALSE check value
	if got := Crc16Kemove([]byte("123456789")); got != 0x29b1 {
		t.Errorf("Crc16Kemove(check string) = %#04x, want 0x29b1", got)
	}
}

func TestCrc16KemoveSingleZeroByte(t *testing.T) {
	if got := Crc16Kemove([]byte{0x00}); got != 0xe1f0 {
		t.Errorf("Crc16Kemove(00) = %#04x, want 0xe1f0", got)
	}
}

func TestCrc16EmptyInput(t *testing.T) {
	// no input bytes: the accumulator stays at the IV, then XOR-out applies
	if got := Crc16Kemove(nil); got != 0xffff {
		t.Errorf("Crc16Kemove(nil) = %#04x, want 0xffff", got)
	}
	if got := Crc16USB(nil); got != 0x0000 {
		t.Errorf("Crc16USB(nil) = %#04x, want 0x0000", got)
	}
}

func TestCrc16Deterministic(t *testing.T) {
	data := []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x74, 0x1b}
	a := Crc16Kemove(data)
	b := Crc16Kemove(data)
	if a != b {
		t.Errorf("Crc16Kemove not deterministic: %#04x vs %#04x", a, b)
	}
}

func TestCrc16VariantsDiffer(t *testing.T) {
	data := []byte("123456789")
	if Crc16Kemove(data) == Crc16USB(data) {
		t.Error("protocol and USB CRC variants should not collide on the check string")
	}
}
