package kemove

import (
	"strings"

	"github.com/ebayerle/dk61ctl/hid"
)

// OpCode is the command byte of a control frame.
type OpCode byte

const (
	OpInfo                OpCode = 0x01
	OpRestartKeyboard     OpCode = 0x03
	OpSetLayer            OpCode = 0x0b
	OpPing                OpCode = 0x0c
	OpLayerResetDataType  OpCode = 0x21
	OpLayerSetKeyValues   OpCode = 0x22
	OpLayerSetMacros      OpCode = 0x25 // reserved, wire format unknown
	OpLayerSetLightValues OpCode = 0x27
	OpLayerFnSetKeyValues OpCode = 0x31
)

// Layer is the device's layer code, the subcommand byte of every layer
// command.
type Layer byte

const (
	LayerInvalid Layer = 0
	LayerBase    Layer = 1
	Layer1       Layer = 2
	Layer2       Layer = 3
	Layer3       Layer = 4
	LayerDriver  Layer = 5
)

// DataType selects which per-layer table OpLayerResetDataType wipes.
type DataType byte

const (
	DataTypeInvalid  DataType = 0
	DataTypeKeySet   DataType = 1
	DataTypeLEData   DataType = 3
	DataTypeMacros   DataType = 4
	DataTypeKeyPress DataType = 5
	DataTypeLighting DataType = 6
	DataTypeFnKeySet DataType = 7
)

// Driver values are the 32 bit key codes the firmware stores per position:
// class byte, modifier bits, HID usage ID, one reserved byte.
const (
	keyClassStandard uint32 = 0x02 << 24

	// UnusedKey is the sentinel for positions a layer does not remap.
	UnusedKey uint32 = keyClassStandard
)

// DriverValue packs modifier bits and a HID usage ID into a key code.
func DriverValue(mod hid.Mod, key hid.Key) uint32 {
	return keyClassStandard | uint32(mod)<<16 | uint32(key)<<8
}

// PhysicalKey is one position in the device's fixed key table. LED is the
// key's index in the lighting-addressable array, which does not follow the
// key table order.
type PhysicalKey struct {
	Name string
	LED  int
}

// LayerInfo describes how a profile layer name addresses the hardware:
// which layer code, and whether the Fn key table (separate opcode) is meant.
type LayerInfo struct {
	Code    Layer
	FnLayer bool
}

// Model is the per-device capability set: USB identity, endpoints, and the
// static lookup tables. The protocol core is shared; differing boards of
// the family differ only in their Model. Selected once at session start.
type Model struct {
	Name string

	VendorID        uint16
	ProductID       uint16
	InterfaceNumber int
	OutEndpoint     int
	InEndpoint      int

	// NumLEDs is the total addressable LED count, the length of a
	// lighting color table.
	NumLEDs int

	// Keys is the device's key table in firmware order; SetKeyValues
	// payloads carry one code per entry in this order.
	Keys []PhysicalKey

	// Keycodes maps lower-cased key names to driver values.
	Keycodes map[string]uint32

	// Layers maps lower-cased profile layer names to layer codes.
	Layers map[string]LayerInfo
}

// KeycodeFor resolves a key name, case-insensitively.
func (m *Model) KeycodeFor(name string) (uint32, bool) {
	code, ok := m.Keycodes[strings.ToLower(name)]
	return code, ok
}

// LayerFor resolves a profile layer name, case-insensitively.
func (m *Model) LayerFor(name string) (LayerInfo, bool) {
	li, ok := m.Layers[strings.ToLower(name)]
	return li, ok
}
