// Package plugboard models the self-inverse letter-swap permutation
// applied at both ends of the cipher pipeline, and the pin-sweep scan
// that derives one from a physical wiring.
package plugboard

import (
	"errors"
	"fmt"

	"github.com/edu-ciaa/enigma-sim/internal/platform/gpio"
)

const alphabetSize = 26

var (
	ErrNotInvolution = errors.New("plugboard: mapping is not self-inverse")
	ErrInvalidPair   = errors.New("plugboard: pair references a letter outside A-Z")
)

// Plugboard is a 26-element self-inverse permutation: either P(c) = c
// (unplugged) or P(c) != c and P(P(c)) == c (paired).
type Plugboard struct {
	table [alphabetSize]int
}

// Blank is the identity plugboard: every letter maps to itself.
var Blank = identity()

func identity() Plugboard {
	var p Plugboard
	for i := 0; i < alphabetSize; i++ {
		p.table[i] = i
	}
	return p
}

// New builds a plugboard from explicit letter pairs, e.g. [][2]byte{{'A','B'}}.
// Returns ErrInvalidPair for out-of-range letters and ErrNotInvolution if a
// letter appears in more than one pair.
func New(pairs [][2]byte) (Plugboard, error) {
	p := identity()
	assigned := [alphabetSize]bool{}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if a < 'A' || a > 'Z' || b < 'A' || b > 'Z' {
			return Blank, fmt.Errorf("%w: %q-%q", ErrInvalidPair, string(a), string(b))
		}
		ai, bi := int(a-'A'), int(b-'A')
		if assigned[ai] || assigned[bi] {
			return Blank, fmt.Errorf("%w: %q reused", ErrNotInvolution, string(a))
		}
		assigned[ai], assigned[bi] = true, true
		p.table[ai] = bi
		p.table[bi] = ai
	}
	return p, nil
}

// Swap maps alphabet index x through the plugboard.
func (p Plugboard) Swap(x int) int {
	return p.table[x]
}

// Scanner emulates the physical plugboard: 26 GPIO pins swept to derive
// which letters are jumpered together.
type Scanner struct {
	bus gpio.Bus
}

// NewScanner binds a scanner to the 26-pin GPIO bus used as the physical
// plugboard matrix.
func NewScanner(bus gpio.Bus) *Scanner {
	return &Scanner{bus: bus}
}

// Init configures all 26 pins as pulled-down inputs, the scanner's idle
// state outside a sweep.
func (s *Scanner) Init() {
	for i := 0; i < alphabetSize; i++ {
		s.bus.InitInputPulldown(i)
	}
}

// Scan performs one full sweep and returns the involution it derived.
// For each letter i, i is driven high; the first other pin j that reads
// high wins the pairing (first-match); unconnected letters map to
// themselves.
func (s *Scanner) Scan() Plugboard {
	p := identity()
	for i := 0; i < alphabetSize; i++ {
		s.bus.InitOutput(i)
		s.bus.Write(i, true)

		matched := -1
		for j := 0; j < alphabetSize; j++ {
			if j == i {
				continue
			}
			if s.bus.Read(j) {
				matched = j
				break
			}
		}
		if matched >= 0 {
			p.table[i] = matched
			p.table[matched] = i
		}

		s.bus.InitInputPulldown(i)
	}
	return p
}
