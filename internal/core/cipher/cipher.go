// Package cipher wires three rotors, a reflector, and a plugboard into
// the full Enigma permutation pipeline, including double-step stepping.
package cipher

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/edu-ciaa/enigma-sim/internal/core/plugboard"
	"github.com/edu-ciaa/enigma-sim/internal/core/reflector"
	"github.com/edu-ciaa/enigma-sim/internal/core/rotor"
)

const numRotors = 3

var (
	ErrInvalidConfig    = errors.New("cipher: invalid rotor configuration")
	ErrInvalidPlugboard = errors.New("cipher: invalid plugboard mapping")
)

// Engine holds three rotors in fast-to-slow order, an immutable
// reflector, and a mutable plugboard installed between sessions.
type Engine struct {
	rotors    [numRotors]rotor.Rotor
	reflector reflector.Reflector
	plugboard plugboard.Plugboard

	upper  cases.Caser
	logger zerolog.Logger
}

// New builds an engine from three rotor numerals (1-8) and starting
// offsets, fast-to-slow, plus a required reflector — there is no hidden
// default reflector.
func New(numerals [numRotors]int, offsets [numRotors]int, refl reflector.Reflector, logger zerolog.Logger) (*Engine, error) {
	var rotors [numRotors]rotor.Rotor
	for i := 0; i < numRotors; i++ {
		r, err := rotor.New(numerals[i], offsets[i])
		if err != nil {
			return nil, fmt.Errorf("%w: rotor %d: %w", ErrInvalidConfig, i, err)
		}
		rotors[i] = r
	}
	return &Engine{
		rotors:    rotors,
		reflector: refl,
		plugboard: plugboard.Blank,
		upper:     cases.Upper(language.Und),
		logger:    logger,
	}, nil
}

// SetPlugboard installs a new plugboard involution, used by the FSM's
// ENCRYPT entry action to snapshot the scanner's most recent sweep.
func (e *Engine) SetPlugboard(p plugboard.Plugboard) {
	e.plugboard = p
}

// RotorOffset observes the current offset of rotor i (0=fastest).
func (e *Engine) RotorOffset(i int) int {
	return e.rotors[i].Offset
}

// SetRotorOffset overwrites rotor i's offset directly, used when
// CONFIG_ROTOR commits a rotary-encoder adjustment.
func (e *Engine) SetRotorOffset(i, offset int) error {
	if offset < 0 || offset > 25 {
		return fmt.Errorf("%w: offset %d", ErrInvalidConfig, offset)
	}
	e.rotors[i].Offset = offset
	return nil
}

// Encrypt upper-cases c, then steps the rotors and permutes it. A byte
// that is not a letter A-Z after upper-casing is not enciphered: the
// rotors do not step and the first byte of its upper-cased form is
// returned.
func (e *Engine) Encrypt(c byte) byte {
	normalized := e.upper.Bytes([]byte{c})
	c = normalized[0]
	if c < 'A' || c > 'Z' {
		return c
	}

	e.step()

	x := int(c - 'A')
	x = e.plugboard.Swap(x)

	for i := 0; i < numRotors; i++ {
		x = e.rotors[i].Forward(x)
	}

	x = e.reflector.Reflect(x)

	for i := numRotors - 1; i >= 0; i-- {
		x = e.rotors[i].Reverse(x)
	}

	x = e.plugboard.Swap(x)

	out := byte('A' + x)
	e.logger.Debug().
		Str("plain", string(c)).
		Str("cipher", string(out)).
		Int("r1", e.rotors[0].Offset).
		Int("r2", e.rotors[1].Offset).
		Int("r3", e.rotors[2].Offset).
		Msg("encrypted character")
	return out
}

// step advances the rotors before permutation. R1 always advances; R2's
// notch is checked against its offset from before this round's advance
// (R1 has already stepped, R2 has not yet); turnover flags then
// propagate left to right.
func (e *Engine) step() {
	r1, r2 := &e.rotors[0], &e.rotors[1]

	r1.Advance()

	if r2.AtNotch() {
		r2.Advance()
	}

	for i := 0; i < numRotors-1; i++ {
		if e.rotors[i].StepNext {
			e.rotors[i].StepNext = false
			e.rotors[i+1].Advance()
		}
	}
}
