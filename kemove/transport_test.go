package kemove

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type shortChannel struct {
	writeN  int
	readN   int
	readErr error
}

func (s *shortChannel) Write(p []byte) (int, error) { return s.writeN, nil }
func (s *shortChannel) Read(p []byte, timeout time.Duration) (int, error) {
	return s.readN, s.readErr
}

func TestTransportShortWrite(t *testing.T) {
	tp := NewTransport(&shortChannel{writeN: 10}, zaptest.NewLogger(t), false)
	p, err := NewCommandPacket(OpPing, 0, 0, 0, nil, true)
	require.NoError(t, err)

	err = tp.Send(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "wrote 10 of 64")
}

func TestTransportReadTimeoutSurfaces(t *testing.T) {
	timedOut := errors.New("libusb: transfer timed out")
	tp := NewTransport(&shortChannel{writeN: PacketSize, readErr: timedOut}, zaptest.NewLogger(t), false)
	p, err := NewCommandPacket(OpPing, 0, 0, 0, nil, true)
	require.NoError(t, err)

	_, err = tp.SendReceive(p, 100*time.Millisecond)
	require.ErrorIs(t, err, timedOut)
}

func TestTransportShortRead(t *testing.T) {
	tp := NewTransport(&shortChannel{writeN: PacketSize, readN: 12}, zaptest.NewLogger(t), false)
	p, err := NewCommandPacket(OpPing, 0, 0, 0, nil, true)
	require.NoError(t, err)

	_, err = tp.SendReceive(p, 100*time.Millisecond)
	require.ErrorIs(t, err, ErrShortPacket)
}
