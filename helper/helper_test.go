package helper

import (
	"strings"
	"testing"
)

func TestHexdumpLineFull(t *testing.T) {
	data := []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x74, 0x1b,
		0x41, 0x42, 0x43, 0x44, 0x00, 0x00, 0x00, 0x00}
	got := HexdumpLine(data)
	want := "01 01 00 00 00 00 74 1b  41 42 43 44 00 00 00 00   ......t. ABCD...."
	if got != want {
		t.Errorf("HexdumpLine mismatch:\n got  %q\n want %q", got, want)
	}
}

func TestHexdumpLineShort(t *testing.T) {
	got := HexdumpLine([]byte{0x61, 0x62})
	if !strings.HasPrefix(got, "61 62    ") {
		t.Errorf("unexpected short line prefix: %q", got)
	}
	if !strings.Contains(got, "ab") {
		t.Errorf("printable part missing: %q", got)
	}
}

func TestHexdumpOffsets(t *testing.T) {
	data := make([]byte, 40)
	out := Hexdump(data, 0x100)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines for 40 bytes, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "00000100  ") {
		t.Errorf("line 0 offset wrong: %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "00000120  ") {
		t.Errorf("line 2 offset wrong: %q", lines[2])
	}
}

func TestHexdumpEmpty(t *testing.T) {
	if out := Hexdump(nil, 0); out != "" {
		t.Errorf("expected empty dump, got %q", out)
	}
}
