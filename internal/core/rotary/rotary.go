// Package rotary decodes a quadrature rotary encoder into {-1, 0, +1}
// ticks using a 4-bit transition history against a fixed lookup table.
package rotary

// validTransition flags which of the 16 possible (prev<<2 | current)
// 4-bit codes correspond to a legal quadrature edge.
var validTransition = [16]bool{
	false, true, true, false,
	true, false, false, true,
	true, false, false, true,
	false, true, true, false,
}

const (
	patternCW1  = 0xE8
	patternCW2  = 0x17
	patternCCW1 = 0xD4
	patternCCW2 = 0x2B
)

// Decoder tracks the rolling 16-bit shift history used to recognize a
// full detent in either direction.
type Decoder struct {
	store     uint16
	prevState uint8
}

// Sample feeds one (clk, data) reading and returns +1, -1, or 0 for no
// completed detent.
func (d *Decoder) Sample(clk, data bool) int {
	current := uint8(0)
	if data {
		current |= 1 << 1
	}
	if clk {
		current |= 1
	}

	code := (d.prevState << 2) | current
	d.prevState = current

	if !validTransition[code&0x0F] {
		return 0
	}

	d.store <<= 4
	d.store |= uint16(code & 0x0F)

	switch uint8(d.store & 0xFF) {
	case patternCW1, patternCW2:
		return 1
	case patternCCW1, patternCCW2:
		return -1
	default:
		return 0
	}
}
