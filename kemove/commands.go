package kemove

import (
	"encoding/binary"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Per-command reply deadlines. Key value writes are acknowledged quickly;
// layer resets and lighting writes make the firmware touch flash and can
// take most of a second.
const (
	keyValueTimeout = 100 * time.Millisecond
	resetTimeout    = 1000 * time.Millisecond
	lightingTimeout = 1000 * time.Millisecond
	infoTimeout     = 100 * time.Millisecond
)

// keyChunkCodes is how many 4 byte driver values fit one frame payload:
// 14 codes, exactly 56 bytes.
const keyChunkCodes = 14

// Device is the command layer: one method per device capability, each
// mapping to one or more frames. The channel is exclusively owned for the
// session; there is never more than one request in flight.
type Device struct {
	tp    *Transport
	model *Model
	log   *zap.Logger
}

func NewDevice(ch Channel, model *Model, log *zap.Logger, verbose bool) *Device {
	return &Device{
		tp:    NewTransport(ch, log, verbose),
		model: model,
		log:   log,
	}
}

func (d *Device) Model() *Model { return d.model }

// ResetLayerData wipes one data table of a layer. The firmware does not
// reliably answer this command; callers that know that (the lighting path)
// pass wantReply false, and a missing or mismatched reply is then swallowed.
func (d *Device) ResetLayerData(layer Layer, dt DataType, wantReply bool) error {
	pkt, err := NewCommandPacket(OpLayerResetDataType, byte(layer), uint32(dt), 0, nil, true)
	if err != nil {
		return err
	}

	r, err := d.tp.SendReceive(pkt, resetTimeout)
	if err != nil {
		if !wantReply {
			d.log.Debug("ignoring missing reset reply", zap.Error(err))
			return nil
		}
		return err
	}
	if r.Cmd != OpLayerResetDataType {
		cmdErr := &CmdError{Op: OpLayerResetDataType, Reply: r}
		if !wantReply {
			d.log.Debug("ignoring reset reply mismatch", zap.Error(cmdErr))
			return nil
		}
		return cmdErr
	}
	return nil
}

// SetKeyValues uploads a layer's key table: one driver value per physical
// key, in firmware key table order.
func (d *Device) SetKeyValues(layer Layer, codes []uint32) error {
	return d.setKeyValues(OpLayerSetKeyValues, layer, codes)
}

// SetFnKeyValues uploads a layer's Fn key table, the codes active while the
// Fn modifier is held. Same algorithm as SetKeyValues, different opcode.
func (d *Device) SetFnKeyValues(layer Layer, codes []uint32) error {
	return d.setKeyValues(OpLayerFnSetKeyValues, layer, codes)
}

func (d *Device) setKeyValues(op OpCode, layer Layer, codes []uint32) error {
	buf := make([]byte, 4*len(codes))
	for i, code := range codes {
		binary.LittleEndian.PutUint32(buf[4*i:], code)
	}

	chunkSize := 4 * keyChunkCodes
	for offset := 0; offset < len(buf); offset += chunkSize {
		end := offset + chunkSize
		if end > len(buf) {
			end = len(buf)
		}
		chunk := buf[offset:end]

		pkt, err := NewCommandPacket(op, byte(layer), uint32(offset), byte(len(chunk)), chunk, true)
		if err != nil {
			return err
		}
		r, err := d.tp.SendReceive(pkt, keyValueTimeout)
		if err != nil {
			return err
		}
		if r.Cmd != op {
			return &CmdError{Op: op, Reply: r}
		}
	}
	return nil
}

// Static lighting buffer layout: a fixed effect table of 32 slots of 16
// bytes, then a 4 byte local effect header, then one 32 bit RGB word per
// LED. Slot 0 points at the local header (byte offset 512, parameter word
// 1); the remaining slots carry the all-ones unused sentinel.
const (
	maxEffects        = 32
	effectHeaderSize  = 16
	effectTableSize   = maxEffects * effectHeaderSize
	localHeaderSize   = 4
	lightingStaticTyp = 0
	effectUnused      = 0xffffffff
)

func buildStaticLightingBuffer(colors []uint32) []byte {
	colorBytes := 4 * len(colors)
	data := make([]byte, effectTableSize+localHeaderSize+colorBytes)

	binary.LittleEndian.PutUint32(data[0:], effectTableSize)
	binary.LittleEndian.PutUint32(data[4:], 1)
	for slot := 1; slot < maxEffects; slot++ {
		for w := 0; w < effectHeaderSize; w += 4 {
			binary.LittleEndian.PutUint32(data[slot*effectHeaderSize+w:], effectUnused)
		}
	}

	binary.LittleEndian.PutUint16(data[effectTableSize:], lightingStaticTyp)
	binary.LittleEndian.PutUint16(data[effectTableSize+2:], uint16(colorBytes))

	for i, color := range colors {
		binary.LittleEndian.PutUint32(data[effectTableSize+localHeaderSize+4*i:], color)
	}
	return data
}

// SetStaticLighting uploads a static per-key color table for one layer.
// The logical buffer is chunked into 56 byte frames with the full 24 bit
// offset encoding: boards with large LED arrays push the buffer past what
// 16 offset bits can address.
func (d *Device) SetStaticLighting(layer Layer, colors []uint32) error {
	data := buildStaticLightingBuffer(colors)

	for offset := 0; offset < len(data); offset += PayloadSize {
		end := offset + PayloadSize
		if end > len(data) {
			end = len(data)
		}
		chunk := data[offset:end]

		pkt, err := NewCommandPacket(OpLayerSetLightValues, byte(layer), uint32(offset), byte(len(chunk)), chunk, false)
		if err != nil {
			return err
		}
		r, err := d.tp.SendReceive(pkt, lightingTimeout)
		if err != nil {
			return err
		}
		if r.Cmd != OpLayerSetLightValues {
			return &CmdError{Op: OpLayerSetLightValues, Reply: r}
		}
		d.log.Debug("lighting chunk written",
			zap.Int("offset", offset),
			zap.Int("size", len(chunk)))
	}
	return nil
}

// BufferSize asks the firmware for its command buffer geometry
// (Info subcommand 0x09), two bytes out of the reply payload.
func (d *Device) BufferSize() (byte, byte, error) {
	pkt, err := NewCommandPacket(OpInfo, 0x09, 0, 0, nil, true)
	if err != nil {
		return 0, 0, err
	}
	r, err := d.tp.SendReceive(pkt, infoTimeout)
	if err != nil {
		return 0, 0, err
	}
	if r.Cmd != OpInfo {
		return 0, 0, &CmdError{Op: OpInfo, Reply: r}
	}
	return r.Data[0], r.Data[1], nil
}

// SetActiveLayer switches which layer the keyboard currently uses.
func (d *Device) SetActiveLayer(layer Layer) error {
	pkt, err := NewCommandPacket(OpSetLayer, byte(layer), 0, 0, nil, true)
	if err != nil {
		return err
	}
	r, err := d.tp.SendReceive(pkt, infoTimeout)
	if err != nil {
		return err
	}
	if r.Cmd != OpSetLayer {
		return &CmdError{Op: OpSetLayer, Reply: r}
	}
	return nil
}

// Ping checks that the control channel is alive.
func (d *Device) Ping() error {
	pkt, err := NewCommandPacket(OpPing, 0, 0, 0, nil, true)
	if err != nil {
		return err
	}
	r, err := d.tp.SendReceive(pkt, infoTimeout)
	if err != nil {
		return err
	}
	if r.Cmd != OpPing {
		return &CmdError{Op: OpPing, Reply: r}
	}
	return nil
}

// Restart reboots the keyboard. The device drops off the bus instead of
// answering, so this is send-and-forget.
func (d *Device) Restart() error {
	pkt, err := NewCommandPacket(OpRestartKeyboard, 0, 0, 0, nil, true)
	if err != nil {
		return err
	}
	if err := d.tp.Send(pkt); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	return nil
}
