package kemove

import (
	"errors"
	"fmt"
)

var (
	// ErrOffsetRange marks a logical offset that cannot be encoded in a
	// command frame. Rejected before any I/O happens.
	ErrOffsetRange = errors.New("offset out of range")

	// ErrPayloadSize marks a payload larger than the 56 byte frame
	// capacity. Oversized payloads are a caller bug, never truncated.
	ErrPayloadSize = errors.New("payload too large")

	// ErrShortPacket is returned when the device delivers fewer than 64
	// bytes for a reply.
	ErrShortPacket = errors.New("short reply packet")
)

// CmdError reports a protocol desync: the reply's command byte did not echo
// the request. Fatal for the operation in progress, never retried.
type CmdError struct {
	Op    OpCode
	Reply ReplyPacket
}

func (e *CmdError) Error() string {
	return fmt.Sprintf("command %#02x answered with command byte %#02x (result %#02x)",
		byte(e.Op), byte(e.Reply.Cmd), e.Reply.Result)
}

// LookupError reports a key, color or layer name from the profile that the
// model's tables do not know. Raised before any frame for the offending
// layer is sent.
type LookupError struct {
	What  string // "source key", "destination key", "layer"
	Name  string
	Layer string
}

func (e *LookupError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("unknown %s %q", e.What, e.Name)
	}
	return fmt.Sprintf("unknown %s %q inside %q", e.What, e.Name, e.Layer)
}
