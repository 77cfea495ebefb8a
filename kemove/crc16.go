// Package kemove implements the USB HID control protocol of Kemove DK61
// family keyboards: 64-byte command/reply frames, the chunked upload
// commands for key maps and lighting data, and the layer programmer that
// drives them from a declarative profile.
package kemove

// Crc16 runs the generic bit-at-a-time CRC16 over data.
// Translated from http://mdfs.net/Info/Comp/Comms/CRC16.htm
func Crc16(data []byte, poly, iv, xorOut uint16) uint16 {
	crc := uint32(iv)
	for _, b := range data {
		crc ^= uint32(b) << 8
		for i := 0; i < 8; i++ {
			crc <<= 1
			if crc&0x10000 != 0 {
				crc = (crc ^ uint32(poly)) & 0xffff
			}
		}
	}
	return uint16(crc&0xffff) ^ xorOut
}

// Crc16USB is the CRC-16/USB parameterization. The firmware-update channel
// uses it; the control protocol does not.
func Crc16USB(data []byte) uint16 {
	return Crc16(data, 0x8005, 0xffff, 0xffff)
}

// Crc16Kemove is the checksum the control protocol puts into every frame:
// CRC-16/CCITT-FALSE without output XOR.
func Crc16Kemove(data []byte) uint16 {
	return Crc16(data, 0x1021, 0xffff, 0x0000)
}
