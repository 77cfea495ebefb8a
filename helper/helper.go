package helper

import (
	"fmt"
	"strings"
)

// HexdumpLine formats up to 16 bytes as two hex column groups followed by
// their printable representation, e.g.
//
//	01 01 00 00 00 00 74 1b  00 00 00 00 00 00 00 00   ......t. ........
func HexdumpLine(data []byte) string {
	if len(data) > 16 {
		data = data[:16]
	}

	hexbytes := make([]string, 16)
	printable := make([]byte, len(data))
	for i := 0; i < 16; i++ {
		if i < len(data) {
			hexbytes[i] = fmt.Sprintf("%02x", data[i])
		} else {
			hexbytes[i] = "  "
		}
	}
	for i, b := range data {
		if b >= 0x20 && b < 0x7f {
			printable[i] = b
		} else {
			printable[i] = '.'
		}
	}

	p := string(printable)
	p1 := p
	p2 := ""
	if len(p) > 8 {
		p1, p2 = p[:8], p[8:]
	}

	return fmt.Sprintf("%s  %s   %s %s",
		strings.Join(hexbytes[:8], " "),
		strings.Join(hexbytes[8:], " "),
		p1, p2)
}

// Hexdump renders data as HexdumpLine rows prefixed with the running offset.
// start shifts the printed offsets, for dumping a chunk of a larger buffer.
func Hexdump(data []byte, start int) string {
	var sb strings.Builder
	for offset := 0; offset < len(data); offset += 16 {
		end := offset + 16
		if end > len(data) {
			end = len(data)
		}
		if offset > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%08x  %s", start+offset, HexdumpLine(data[offset:end]))
	}
	return sb.String()
}
