package rotor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-ciaa/enigma-sim/internal/core/rotor"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		numeral int
		offset  int
		wantErr error
	}{
		{"positive case - rotor I offset 0", 1, 0, nil},
		{"positive case - rotor VIII offset 25", 8, 25, nil},
		{"negative case - numeral too low", 0, 0, rotor.ErrInvalidNumeral},
		{"negative case - numeral too high", 9, 0, rotor.ErrInvalidNumeral},
		{"negative case - offset too low", 1, -1, rotor.ErrInvalidOffset},
		{"negative case - offset too high", 1, 26, rotor.ErrInvalidOffset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := rotor.New(tt.numeral, tt.offset)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, rotor.Blank, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.offset, r.Offset)
		})
	}
}

func TestRotorIIsForwardIsInverseOfReverse(t *testing.T) {
	r, err := rotor.New(1, 0)
	require.NoError(t, err)

	for x := 0; x < 26; x++ {
		assert.Equal(t, x, r.Reverse(r.Forward(x)), "x=%d", x)
	}
}

func TestRotorIWiringAtZeroOffset(t *testing.T) {
	// Rotor I: EKMFLGDQVZNTOWYHXUSPAIBRCJ, so A->E, B->K.
	r, err := rotor.New(1, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, r.Forward(0))  // A -> E
	assert.Equal(t, 10, r.Forward(1)) // B -> K
}

func TestAdvanceWrapsAndFlagsTurnover(t *testing.T) {
	// Rotor I's turnover position is R (offset 17); advancing from Q
	// (offset 16) lands on R and must flag StepNext for the next rotor.
	r, err := rotor.New(1, 16)
	require.NoError(t, err)

	r.Advance()
	assert.Equal(t, 17, r.Offset)
	assert.True(t, r.StepNext)
}

func TestAdvanceWrapsAtZ(t *testing.T) {
	r, err := rotor.New(1, 25)
	require.NoError(t, err)

	r.Advance()
	assert.Equal(t, 0, r.Offset)
}

func TestAtNotch(t *testing.T) {
	// Rotor I's notch is at Q (index 16).
	r, err := rotor.New(1, 16)
	require.NoError(t, err)
	assert.True(t, r.AtNotch())

	r2, err := rotor.New(1, 15)
	require.NoError(t, err)
	assert.False(t, r2.AtNotch())
}
