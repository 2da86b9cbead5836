package ps2

// Key codes occupy the low byte of a translated key event. Values below
// follow the ranges named in the external interface contract: 0x01-0x1F
// function/navigation, 0x20-0x60 printable (digits 0x30-0x39, uppercase
// 0x41-0x5A), 0x61-0xA0 function/multimedia, with 0xAA/0xFC/0xFE
// reserved for device responses and 0x8B for the extra European key.
const (
	KeyNone      = 0x00
	KeyEnter     = 0x01
	KeyEsc       = 0x02
	KeyBackspace = 0x03
	KeyTab       = 0x04
	KeyUp        = 0x05
	KeyDown      = 0x06
	KeyLeft      = 0x07
	KeyRight     = 0x08
	KeyHome      = 0x09
	KeyEnd       = 0x0A
	KeyPageUp    = 0x0B
	KeyPageDown  = 0x0C
	KeyInsert    = 0x0D
	KeyDelete    = 0x0E
	KeyPause     = 0x0F

	KeySpace = 0x20

	KeyF1  = 0x61
	KeyF2  = 0x62
	KeyF3  = 0x63
	KeyF4  = 0x64
	KeyF5  = 0x65
	KeyF6  = 0x66
	KeyF7  = 0x67
	KeyF8  = 0x68
	KeyF9  = 0x69
	KeyF10 = 0x6A
	KeyF11 = 0x6B
	KeyF12 = 0x6C

	KeyLeftShift  = 0x70
	KeyRightShift = 0x71
	KeyLeftCtrl   = 0x72
	KeyRightCtrl  = 0x73
	KeyLeftAlt    = 0x74
	KeyRightAlt   = 0x75
	KeyLeftGui    = 0x76
	KeyRightGui   = 0x77
	KeyCapsLock   = 0x78
	KeyNumLock    = 0x79
	KeyScrollLock = 0x7A

	KeyExtra = 0x8B

	KeyBAT     = 0xAA
	KeyBATFail = 0xFC
	KeyResend  = 0xFE
)

func isLetter(code byte) bool {
	return code >= 'A' && code <= 'Z'
}

// singleKey maps unprefixed Scan Code Set 2 make codes to key codes.
// Values are the standard, publicly documented Set 2 assignments.
var singleKey = map[byte]byte{
	0x1C: 'A', 0x32: 'B', 0x21: 'C', 0x23: 'D', 0x24: 'E', 0x2B: 'F',
	0x34: 'G', 0x33: 'H', 0x43: 'I', 0x3B: 'J', 0x42: 'K', 0x4B: 'L',
	0x3A: 'M', 0x31: 'N', 0x44: 'O', 0x4D: 'P', 0x15: 'Q', 0x2D: 'R',
	0x1B: 'S', 0x2C: 'T', 0x3C: 'U', 0x2A: 'V', 0x1D: 'W', 0x22: 'X',
	0x35: 'Y', 0x1A: 'Z',

	0x45: '0', 0x16: '1', 0x1E: '2', 0x26: '3', 0x25: '4',
	0x2E: '5', 0x36: '6', 0x3D: '7', 0x3E: '8', 0x46: '9',

	0x29: KeySpace,
	0x5A: KeyEnter,
	0x66: KeyBackspace,
	0x0D: KeyTab,
	0x76: KeyEsc,

	0x05: KeyF1, 0x06: KeyF2, 0x04: KeyF3, 0x0C: KeyF4,
	0x03: KeyF5, 0x0B: KeyF6, 0x83: KeyF7, 0x0A: KeyF8,
	0x01: KeyF9, 0x09: KeyF10, 0x78: KeyF11, 0x07: KeyF12,

	0x12: KeyLeftShift, 0x59: KeyRightShift,
	0x14: KeyLeftCtrl, 0x11: KeyLeftAlt,
	0x58: KeyCapsLock, 0x77: KeyNumLock, 0x7E: KeyScrollLock,

	// Numeric keypad, Num-Lock-on interpretation (digits and dot).
	0x70: '0', 0x69: '1', 0x72: '2', 0x7A: '3', 0x6B: '4',
	0x73: '5', 0x74: '6', 0x6C: '7', 0x75: '8', 0x7D: '9',
	0x71: '.',
	0x7C: '*', 0x7B: '-', 0x79: '+',
}

// keypadNavigation remaps keypad digit/dot codes to navigation keys when
// Num Lock is off (or Shift is held), keyed by the same singleKey code.
var keypadNavigation = map[byte]byte{
	0x70: KeyInsert, 0x69: KeyEnd, 0x72: KeyDown, 0x7A: KeyPageDown,
	0x6B: KeyLeft, 0x73: KeyNone, 0x74: KeyRight,
	0x6C: KeyHome, 0x75: KeyUp, 0x7D: KeyPageUp,
	0x71: KeyDelete,
}

// extendedKey maps E0-prefixed Scan Code Set 2 codes to key codes.
var extendedKey = map[byte]byte{
	0x75: KeyUp, 0x72: KeyDown, 0x6B: KeyLeft, 0x74: KeyRight,
	0x70: KeyInsert, 0x71: KeyDelete,
	0x6C: KeyHome, 0x69: KeyEnd, 0x7D: KeyPageUp, 0x7A: KeyPageDown,
	0x14: KeyRightCtrl, 0x11: KeyRightAlt,
	0x1F: KeyLeftGui, 0x27: KeyRightGui,
	0x4A: '/', 0x5A: KeyEnter,
}
