package kemove

import "github.com/ebayerle/dk61ctl/hid"

// ledStride is the per-row stride of the DK61 LED matrix. The lighting
// array is 6 rows of 22, 132 addressable positions, of which the 61 physical
// keys occupy a sparse subset.
const ledStride = 22

// dk61Keys is the firmware key table: row-major over the five physical
// rows. Key value uploads carry exactly one driver value per entry, in this
// order.
var dk61Keys = []PhysicalKey{
	// row 0
	{"Esc", 0}, {"1", 1}, {"2", 2}, {"3", 3}, {"4", 4}, {"5", 5},
	{"6", 6}, {"7", 7}, {"8", 8}, {"9", 9}, {"0", 10},
	{"Minus", 11}, {"Equal", 12}, {"Backspace", 13},
	// row 1
	{"Tab", ledStride + 0}, {"Q", ledStride + 1}, {"W", ledStride + 2},
	{"E", ledStride + 3}, {"R", ledStride + 4}, {"T", ledStride + 5},
	{"Y", ledStride + 6}, {"U", ledStride + 7}, {"I", ledStride + 8},
	{"O", ledStride + 9}, {"P", ledStride + 10},
	{"LeftBrace", ledStride + 11}, {"RightBrace", ledStride + 12},
	{"Backslash", ledStride + 13},
	// row 2
	{"CapsLock", 2*ledStride + 0}, {"A", 2*ledStride + 1},
	{"S", 2*ledStride + 2}, {"D", 2*ledStride + 3}, {"F", 2*ledStride + 4},
	{"G", 2*ledStride + 5}, {"H", 2*ledStride + 6}, {"J", 2*ledStride + 7},
	{"K", 2*ledStride + 8}, {"L", 2*ledStride + 9},
	{"Semicolon", 2*ledStride + 10}, {"Apostrophe", 2*ledStride + 11},
	{"Enter", 2*ledStride + 12},
	// row 3
	{"LeftShift", 3*ledStride + 0}, {"Z", 3*ledStride + 1},
	{"X", 3*ledStride + 2}, {"C", 3*ledStride + 3}, {"V", 3*ledStride + 4},
	{"B", 3*ledStride + 5}, {"N", 3*ledStride + 6}, {"M", 3*ledStride + 7},
	{"Comma", 3*ledStride + 8}, {"Dot", 3*ledStride + 9},
	{"Slash", 3*ledStride + 10}, {"RightShift", 3*ledStride + 11},
	// row 4
	{"LeftCtrl", 4*ledStride + 0}, {"LeftWin", 4*ledStride + 1},
	{"LeftAlt", 4*ledStride + 2}, {"Space", 4*ledStride + 3},
	{"RightAlt", 4*ledStride + 4}, {"Fn", 4*ledStride + 5},
	{"Menu", 4*ledStride + 6}, {"RightCtrl", 4*ledStride + 7},
}

// fnKeyValue is the driver value of the Fn key itself (class 0x0a, layer
// toggle). Not a HID usage.
const fnKeyValue uint32 = 0x0a010000

func dk61Keycodes() map[string]uint32 {
	codes := make(map[string]uint32, len(hid.StringToKey)+2)
	for name, key := range hid.StringToKey {
		mod := hid.StringToMod[name] // zero for non-modifier keys
		codes[name] = DriverValue(mod, key)
	}
	codes["unusedkey"] = UnusedKey
	codes["fn"] = fnKeyValue
	return codes
}

// DK61 is the capability set of the Kemove DK61 ("Snowfox"). Control
// traffic goes out on endpoint 4 and comes back on endpoint 3 of interface
// 1; in firmware update mode the device would use endpoints 2 and 1
// instead, which this tool does not touch.
var DK61 = &Model{
	Name:            "DK61",
	VendorID:        0x1ea7,
	ProductID:       0x0907,
	InterfaceNumber: 1,
	OutEndpoint:     4,
	InEndpoint:      3,
	NumLEDs:         132,
	Keys:            dk61Keys,
	Keycodes:        dk61Keycodes(),
	Layers: map[string]LayerInfo{
		"layer1":   {Code: Layer1, FnLayer: false},
		"layer2":   {Code: Layer2, FnLayer: false},
		"layer3":   {Code: Layer3, FnLayer: false},
		"fnlayer1": {Code: Layer1, FnLayer: true},
		"fnlayer2": {Code: Layer2, FnLayer: true},
		"fnlayer3": {Code: Layer3, FnLayer: true},
	},
}
