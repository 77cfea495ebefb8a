package kemove

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Channel is the open bidirectional HID pipe the protocol runs over.
// Writes and reads move whole 64 byte packets; Read blocks for at most
// timeout.
type Channel interface {
	Write(p []byte) (int, error)
	Read(p []byte, timeout time.Duration) (int, error)
}

// Transport moves single frames over a Channel. No retries live here; a
// timeout or short read surfaces to the command layer as-is.
type Transport struct {
	ch      Channel
	log     *zap.Logger
	verbose bool
}

func NewTransport(ch Channel, log *zap.Logger, verbose bool) *Transport {
	return &Transport{ch: ch, log: log, verbose: verbose}
}

// Send writes one command frame.
func (t *Transport) Send(p CommandPacket) error {
	if t.verbose {
		t.log.Debug("send packet\n" + p.Hexdump())
	}
	buf := p.Pack()
	n, err := t.ch.Write(buf)
	if err != nil {
		return fmt.Errorf("write command %#02x: %w", byte(p.Cmd), err)
	}
	if n != PacketSize {
		return fmt.Errorf("write command %#02x: wrote %d of %d bytes", byte(p.Cmd), n, PacketSize)
	}
	return nil
}

// SendReceive writes one command frame and blocks for the matching reply.
// The device answers with exactly one 64 byte frame; anything shorter, or a
// read timeout, is an error.
func (t *Transport) SendReceive(p CommandPacket, timeout time.Duration) (ReplyPacket, error) {
	if err := t.Send(p); err != nil {
		return ReplyPacket{}, err
	}

	buf := make([]byte, PacketSize)
	n, err := t.ch.Read(buf, timeout)
	if err != nil {
		return ReplyPacket{}, fmt.Errorf("read reply for command %#02x: %w", byte(p.Cmd), err)
	}
	if n != PacketSize {
		return ReplyPacket{}, fmt.Errorf("read reply for command %#02x: %w (%d bytes)", byte(p.Cmd), ErrShortPacket, n)
	}

	r, err := DecodeReply(buf)
	if err != nil {
		return ReplyPacket{}, err
	}
	if t.verbose {
		t.log.Debug("recv reply\n" + r.Hexdump())
	}
	if !r.ChecksumOK() {
		// The firmware occasionally pads replies inconsistently; log
		// instead of failing, the command layer validates the echoed
		// command byte anyway.
		t.log.Warn("reply checksum mismatch",
			zap.Uint8("cmd", byte(r.Cmd)),
			zap.Uint16("checksum", r.Checksum))
	}
	return r, nil
}
