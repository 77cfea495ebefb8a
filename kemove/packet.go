package kemove

import (
	"encoding/binary"
	"fmt"

	"github.com/ebayerle/dk61ctl/helper"
)

// Frame geometry. Every packet on the control interface is exactly 64 bytes:
// an 8 byte header followed by up to 56 bytes of payload, zero padded.
//
// Command header: cmd(1) subcmd(1) offset(2,LE) pad(1) length(1) checksum(2,LE)
// Reply header:   cmd(1) subcmd(1) result(1) pad(3) checksum(2,LE)
//
// The checksum is Crc16Kemove over the whole 64 byte frame with the checksum
// field zeroed.
const (
	PacketSize  = 64
	HeaderSize  = 8
	PayloadSize = PacketSize - HeaderSize

	// MaxOffset is the largest logical offset encodable in a command
	// frame: 16 bit offset field plus the pad byte as third octet.
	MaxOffset = 0x00ffffff

	checksumPos = 6
)

// CommandPacket is one host-to-device frame. Value type; builders return
// modified copies so a checksum is never computed over a half-built frame.
type CommandPacket struct {
	Cmd      OpCode
	Subcmd   byte
	Offset   uint16
	Pad      byte
	Length   byte
	Checksum uint16
	Data     [PayloadSize]byte
}

// NewCommandPacket builds a command frame with the checksum already in
// place. Two offset encodings exist, chosen by the caller:
//
// Small offset: the 16 bit offset goes into the offset field and the payload
// length into the pad byte, the length field stays zero. Used for layer
// resets and key value uploads, whose offsets always fit in 16 bits.
//
// Full offset: a 24 bit offset is split across the offset field (low 16
// bits) and the pad byte (high 8 bits), with the payload length in the
// length field. Used for lighting uploads whose logical buffer can pass
// 64KB.
func NewCommandPacket(cmd OpCode, subcmd byte, offset uint32, length byte, payload []byte, smallOffset bool) (CommandPacket, error) {
	if offset > MaxOffset {
		return CommandPacket{}, fmt.Errorf("%w: offset %#010x > %#010x", ErrOffsetRange, offset, uint32(MaxOffset))
	}
	if smallOffset && offset > 0xffff {
		return CommandPacket{}, fmt.Errorf("%w: offset %#010x does not fit small offset encoding", ErrOffsetRange, offset)
	}
	if len(payload) > PayloadSize {
		return CommandPacket{}, fmt.Errorf("%w: %d bytes > %d", ErrPayloadSize, len(payload), PayloadSize)
	}

	p := CommandPacket{
		Cmd:    cmd,
		Subcmd: subcmd,
		Offset: uint16(offset),
	}
	if smallOffset {
		p.Pad = length
	} else {
		p.Pad = byte(offset >> 16)
		p.Length = length
	}
	copy(p.Data[:], payload)
	return p.WithChecksum(), nil
}

// Pack serializes the frame to its 64 byte wire image.
func (p CommandPacket) Pack() []byte {
	buf := make([]byte, PacketSize)
	buf[0] = byte(p.Cmd)
	buf[1] = p.Subcmd
	binary.LittleEndian.PutUint16(buf[2:4], p.Offset)
	buf[4] = p.Pad
	buf[5] = p.Length
	binary.LittleEndian.PutUint16(buf[checksumPos:checksumPos+2], p.Checksum)
	copy(buf[HeaderSize:], p.Data[:])
	return buf
}

// CalculateChecksum computes the frame checksum: the wire image with the
// checksum field zeroed, fed through Crc16Kemove.
func (p CommandPacket) CalculateChecksum() uint16 {
	z := p
	z.Checksum = 0
	return Crc16Kemove(z.Pack())
}

// WithChecksum returns a copy with the checksum field recomputed.
func (p CommandPacket) WithChecksum() CommandPacket {
	p.Checksum = p.CalculateChecksum()
	return p
}

// ChecksumOK reports whether the stored checksum matches the frame.
func (p CommandPacket) ChecksumOK() bool {
	return p.Checksum == p.CalculateChecksum()
}

// Hexdump renders the wire image for verbose traces.
func (p CommandPacket) Hexdump() string {
	return helper.Hexdump(p.Pack(), 0)
}

// DecodeCommandPacket parses a 64 byte wire image back into a CommandPacket.
func DecodeCommandPacket(buf []byte) (CommandPacket, error) {
	if len(buf) != PacketSize {
		return CommandPacket{}, fmt.Errorf("command packet must be %d bytes, got %d", PacketSize, len(buf))
	}
	p := CommandPacket{
		Cmd:      OpCode(buf[0]),
		Subcmd:   buf[1],
		Offset:   binary.LittleEndian.Uint16(buf[2:4]),
		Pad:      buf[4],
		Length:   buf[5],
		Checksum: binary.LittleEndian.Uint16(buf[checksumPos : checksumPos+2]),
	}
	copy(p.Data[:], buf[HeaderSize:])
	return p, nil
}

// ReplyResultOK is the result byte the firmware sets on success.
const ReplyResultOK = 0x01

// ReplyPacket is one device-to-host frame. Immutable once decoded; the raw
// wire image is retained so the checksum can be verified byte-exactly even
// if the firmware ever fills the padding.
type ReplyPacket struct {
	Cmd      OpCode
	Subcmd   byte
	Result   byte
	Checksum uint16
	Data     [PayloadSize]byte

	raw [PacketSize]byte
}

// DecodeReply parses a 64 byte reply frame.
func DecodeReply(buf []byte) (ReplyPacket, error) {
	if len(buf) != PacketSize {
		return ReplyPacket{}, fmt.Errorf("reply packet must be %d bytes, got %d", PacketSize, len(buf))
	}
	r := ReplyPacket{
		Cmd:      OpCode(buf[0]),
		Subcmd:   buf[1],
		Result:   buf[2],
		Checksum: binary.LittleEndian.Uint16(buf[checksumPos : checksumPos+2]),
	}
	copy(r.Data[:], buf[HeaderSize:])
	copy(r.raw[:], buf)
	return r, nil
}

// ChecksumOK recomputes the checksum over the received image with the
// checksum field zeroed and compares it to the stored one.
func (r ReplyPacket) ChecksumOK() bool {
	z := r.raw
	z[checksumPos] = 0
	z[checksumPos+1] = 0
	return r.Checksum == Crc16Kemove(z[:])
}

// Hexdump renders the received wire image for verbose traces.
func (r ReplyPacket) Hexdump() string {
	return helper.Hexdump(r.raw[:], 0)
}
