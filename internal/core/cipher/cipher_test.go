package cipher_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-ciaa/enigma-sim/internal/core/cipher"
	"github.com/edu-ciaa/enigma-sim/internal/core/plugboard"
	"github.com/edu-ciaa/enigma-sim/internal/core/reflector"
)

func newEngine(t *testing.T, numerals, offsets [3]int, reflIdx int) *cipher.Engine {
	t.Helper()
	refl, err := reflector.New(reflIdx)
	require.NoError(t, err)
	e, err := cipher.New(numerals, offsets, refl, zerolog.Nop())
	require.NoError(t, err)
	return e
}

func TestEncryptSingleCharacter(t *testing.T) {
	// Rotors III, II, I (fast-to-slow index 0..2), reflector B, offsets
	// AAA, no plugboard: the first keystroke A encrypts to B.
	e := newEngine(t, [3]int{3, 2, 1}, [3]int{0, 0, 0}, 1)
	assert.Equal(t, byte('B'), e.Encrypt('A'))
}

func TestEncryptFiveCharacters(t *testing.T) {
	e := newEngine(t, [3]int{3, 2, 1}, [3]int{0, 0, 0}, 1)
	var out []byte
	for i := 0; i < 5; i++ {
		out = append(out, e.Encrypt('A'))
	}
	assert.Equal(t, "BDZGO", string(out))
}

func TestEncryptIsSelfInverseGivenSameStartingState(t *testing.T) {
	plaintext := "HELLOWORLD"

	encoder := newEngine(t, [3]int{3, 2, 1}, [3]int{0, 0, 0}, 1)
	var cipherText []byte
	for i := 0; i < len(plaintext); i++ {
		cipherText = append(cipherText, encoder.Encrypt(plaintext[i]))
	}

	decoder := newEngine(t, [3]int{3, 2, 1}, [3]int{0, 0, 0}, 1)
	var roundTrip []byte
	for _, c := range cipherText {
		roundTrip = append(roundTrip, decoder.Encrypt(c))
	}

	assert.Equal(t, plaintext, string(roundTrip))
}

func TestPlugboardSwapAppliesAtBothEnds(t *testing.T) {
	pb, err := plugboard.New([][2]byte{{'A', 'B'}})
	require.NoError(t, err)

	withPlugboard := newEngine(t, [3]int{3, 2, 1}, [3]int{0, 0, 0}, 1)
	withPlugboard.SetPlugboard(pb)

	without := newEngine(t, [3]int{3, 2, 1}, [3]int{0, 0, 0}, 1)

	assert.NotEqual(t, without.Encrypt('A'), withPlugboard.Encrypt('A'))
}

func TestSetRotorOffsetValidatesRange(t *testing.T) {
	e := newEngine(t, [3]int{3, 2, 1}, [3]int{0, 0, 0}, 1)
	require.NoError(t, e.SetRotorOffset(0, 25))
	assert.Equal(t, 25, e.RotorOffset(0))

	require.ErrorIs(t, e.SetRotorOffset(0, 26), cipher.ErrInvalidConfig)
	require.ErrorIs(t, e.SetRotorOffset(0, -1), cipher.ErrInvalidConfig)
}

func TestNewRejectsInvalidRotorNumeral(t *testing.T) {
	refl, err := reflector.New(1)
	require.NoError(t, err)
	_, err = cipher.New([3]int{9, 2, 1}, [3]int{0, 0, 0}, refl, zerolog.Nop())
	require.ErrorIs(t, err, cipher.ErrInvalidConfig)
}
