package reflector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-ciaa/enigma-sim/internal/core/reflector"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		idx     int
		want    byte
		wantErr error
	}{
		{"positive case - A", 0, 'A', nil},
		{"positive case - B", 1, 'B', nil},
		{"positive case - C", 2, 'C', nil},
		{"negative case - index too low", -1, 0, reflector.ErrInvalidIndex},
		{"negative case - index too high", 3, 0, reflector.ErrInvalidIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := reflector.New(tt.idx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, reflector.Blank, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Name())
		})
	}
}

func TestReflectIsInvolutionWithNoFixedPoints(t *testing.T) {
	for idx := 0; idx < 3; idx++ {
		r, err := reflector.New(idx)
		require.NoError(t, err)

		for x := 0; x < 26; x++ {
			y := r.Reflect(x)
			assert.NotEqual(t, x, y, "reflector %c has a fixed point at %d", r.Name(), x)
			assert.Equal(t, x, r.Reflect(y), "reflector %c is not an involution at %d", r.Name(), x)
		}
	}
}

func TestReflectorBKnownMapping(t *testing.T) {
	// Reflector B: YRUHQSLDPXNGOKMIEBFZCWVJAT, so A->Y.
	r, err := reflector.New(1)
	require.NoError(t, err)
	assert.Equal(t, 24, r.Reflect(0)) // A -> Y
}
