package hid

// USB HID keyboard usage IDs (usage page 0x07) and modifier bits, as far as
// a 60% board needs them. Names follow the HID usage tables.

type Key byte
type Mod byte

const (
	KEY_RESERVED   Key = 0x00
	KEY_A          Key = 0x04
	KEY_B          Key = 0x05
	KEY_C          Key = 0x06
	KEY_D          Key = 0x07
	KEY_E          Key = 0x08
	KEY_F          Key = 0x09
	KEY_G          Key = 0x0a
	KEY_H          Key = 0x0b
	KEY_I          Key = 0x0c
	KEY_J          Key = 0x0d
	KEY_K          Key = 0x0e
	KEY_L          Key = 0x0f
	KEY_M          Key = 0x10
	KEY_N          Key = 0x11
	KEY_O          Key = 0x12
	KEY_P          Key = 0x13
	KEY_Q          Key = 0x14
	KEY_R          Key = 0x15
	KEY_S          Key = 0x16
	KEY_T          Key = 0x17
	KEY_U          Key = 0x18
	KEY_V          Key = 0x19
	KEY_W          Key = 0x1a
	KEY_X          Key = 0x1b
	KEY_Y          Key = 0x1c
	KEY_Z          Key = 0x1d
	KEY_1          Key = 0x1e // Keyboard 1 and !
	KEY_2          Key = 0x1f // Keyboard 2 and @
	KEY_3          Key = 0x20 // Keyboard 3 and #
	KEY_4          Key = 0x21 // Keyboard 4 and $
	KEY_5          Key = 0x22 // Keyboard 5 and %
	KEY_6          Key = 0x23 // Keyboard 6 and ^
	KEY_7          Key = 0x24 // Keyboard 7 and &
	KEY_8          Key = 0x25 // Keyboard 8 and *
	KEY_9          Key = 0x26 // Keyboard 9 and (
	KEY_0          Key = 0x27 // Keyboard 0 and )
	KEY_ENTER      Key = 0x28
	KEY_ESC        Key = 0x29
	KEY_BACKSPACE  Key = 0x2a
	KEY_TAB        Key = 0x2b
	KEY_SPACE      Key = 0x2c
	KEY_MINUS      Key = 0x2d // Keyboard - and _
	KEY_EQUAL      Key = 0x2e // Keyboard = and +
	KEY_LEFTBRACE  Key = 0x2f // Keyboard [ and {
	KEY_RIGHTBRACE Key = 0x30 // Keyboard ] and }
	KEY_BACKSLASH  Key = 0x31 // Keyboard \ and |
	KEY_SEMICOLON  Key = 0x33 // Keyboard ; and :
	KEY_APOSTROPHE Key = 0x34 // Keyboard ' and "
	KEY_GRAVE      Key = 0x35 // Keyboard ` and ~
	KEY_COMMA      Key = 0x36 // Keyboard , and <
	KEY_DOT        Key = 0x37 // Keyboard . and >
	KEY_SLASH      Key = 0x38 // Keyboard / and ?
	KEY_CAPSLOCK   Key = 0x39
	KEY_F1         Key = 0x3a
	KEY_F2         Key = 0x3b
	KEY_F3         Key = 0x3c
	KEY_F4         Key = 0x3d
	KEY_F5         Key = 0x3e
	KEY_F6         Key = 0x3f
	KEY_F7         Key = 0x40
	KEY_F8         Key = 0x41
	KEY_F9         Key = 0x42
	KEY_F10        Key = 0x43
	KEY_F11        Key = 0x44
	KEY_F12        Key = 0x45
	KEY_SYSRQ      Key = 0x46 // Print Screen
	KEY_SCROLLLOCK Key = 0x47
	KEY_PAUSE      Key = 0x48
	KEY_INSERT     Key = 0x49
	KEY_HOME       Key = 0x4a
	KEY_PAGEUP     Key = 0x4b
	KEY_DELETE     Key = 0x4c
	KEY_END        Key = 0x4d
	KEY_PAGEDOWN   Key = 0x4e
	KEY_RIGHT      Key = 0x4f
	KEY_LEFT       Key = 0x50
	KEY_DOWN       Key = 0x51
	KEY_UP         Key = 0x52
	KEY_COMPOSE    Key = 0x65 // Keyboard Application (menu)

	KEY_LEFTCTRL   Key = 0xe0
	KEY_LEFTSHIFT  Key = 0xe1
	KEY_LEFTALT    Key = 0xe2
	KEY_LEFTMETA   Key = 0xe3
	KEY_RIGHTCTRL  Key = 0xe4
	KEY_RIGHTSHIFT Key = 0xe5
	KEY_RIGHTALT   Key = 0xe6
	KEY_RIGHTMETA  Key = 0xe7
)

const (
	MOD_NONE       Mod = 0x00
	MOD_LEFTCTRL   Mod = 0x01
	MOD_LEFTSHIFT  Mod = 0x02
	MOD_LEFTALT    Mod = 0x04
	MOD_LEFTMETA   Mod = 0x08
	MOD_RIGHTCTRL  Mod = 0x10
	MOD_RIGHTSHIFT Mod = 0x20
	MOD_RIGHTALT   Mod = 0x40
	MOD_RIGHTMETA  Mod = 0x80
)

// StringToKey maps lower-cased key names to usage IDs. Lower-case keys keep
// lookups case-insensitive, the viper-loaded profile arrives lower-cased
// anyway.
var StringToKey = map[string]Key{
	"a": KEY_A, "b": KEY_B, "c": KEY_C, "d": KEY_D, "e": KEY_E,
	"f": KEY_F, "g": KEY_G, "h": KEY_H, "i": KEY_I, "j": KEY_J,
	"k": KEY_K, "l": KEY_L, "m": KEY_M, "n": KEY_N, "o": KEY_O,
	"p": KEY_P, "q": KEY_Q, "r": KEY_R, "s": KEY_S, "t": KEY_T,
	"u": KEY_U, "v": KEY_V, "w": KEY_W, "x": KEY_X, "y": KEY_Y,
	"z": KEY_Z,

	"1": KEY_1, "2": KEY_2, "3": KEY_3, "4": KEY_4, "5": KEY_5,
	"6": KEY_6, "7": KEY_7, "8": KEY_8, "9": KEY_9, "0": KEY_0,

	"enter":      KEY_ENTER,
	"esc":        KEY_ESC,
	"backspace":  KEY_BACKSPACE,
	"tab":        KEY_TAB,
	"space":      KEY_SPACE,
	"minus":      KEY_MINUS,
	"equal":      KEY_EQUAL,
	"leftbrace":  KEY_LEFTBRACE,
	"rightbrace": KEY_RIGHTBRACE,
	"backslash":  KEY_BACKSLASH,
	"semicolon":  KEY_SEMICOLON,
	"apostrophe": KEY_APOSTROPHE,
	"grave":      KEY_GRAVE,
	"comma":      KEY_COMMA,
	"dot":        KEY_DOT,
	"slash":      KEY_SLASH,
	"capslock":   KEY_CAPSLOCK,

	"f1": KEY_F1, "f2": KEY_F2, "f3": KEY_F3, "f4": KEY_F4,
	"f5": KEY_F5, "f6": KEY_F6, "f7": KEY_F7, "f8": KEY_F8,
	"f9": KEY_F9, "f10": KEY_F10, "f11": KEY_F11, "f12": KEY_F12,

	"printscreen": KEY_SYSRQ,
	"scrolllock":  KEY_SCROLLLOCK,
	"pause":       KEY_PAUSE,
	"insert":      KEY_INSERT,
	"home":        KEY_HOME,
	"pageup":      KEY_PAGEUP,
	"delete":      KEY_DELETE,
	"end":         KEY_END,
	"pagedown":    KEY_PAGEDOWN,
	"right":       KEY_RIGHT,
	"left":        KEY_LEFT,
	"down":        KEY_DOWN,
	"up":          KEY_UP,
	"menu":        KEY_COMPOSE,

	"leftctrl":   KEY_LEFTCTRL,
	"leftshift":  KEY_LEFTSHIFT,
	"leftalt":    KEY_LEFTALT,
	"leftwin":    KEY_LEFTMETA,
	"rightctrl":  KEY_RIGHTCTRL,
	"rightshift": KEY_RIGHTSHIFT,
	"rightalt":   KEY_RIGHTALT,
	"rightwin":   KEY_RIGHTMETA,
}

// StringToMod maps the modifier key names to their report bit.
var StringToMod = map[string]Mod{
	"leftctrl":   MOD_LEFTCTRL,
	"leftshift":  MOD_LEFTSHIFT,
	"leftalt":    MOD_LEFTALT,
	"leftwin":    MOD_LEFTMETA,
	"rightctrl":  MOD_RIGHTCTRL,
	"rightshift": MOD_RIGHTSHIFT,
	"rightalt":   MOD_RIGHTALT,
	"rightwin":   MOD_RIGHTMETA,
}
