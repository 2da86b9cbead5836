package plugboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-ciaa/enigma-sim/internal/core/plugboard"
	"github.com/edu-ciaa/enigma-sim/internal/platform/gpio/memory"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		pairs   [][2]byte
		wantErr error
	}{
		{"positive case - no pairs", nil, nil},
		{"positive case - one pair", [][2]byte{{'A', 'B'}}, nil},
		{"positive case - several disjoint pairs", [][2]byte{{'A', 'B'}, {'C', 'D'}}, nil},
		{"negative case - letter out of range", [][2]byte{{'A', '1'}}, plugboard.ErrInvalidPair},
		{"negative case - letter reused", [][2]byte{{'A', 'B'}, {'B', 'C'}}, plugboard.ErrNotInvolution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := plugboard.New(tt.pairs)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, plugboard.Blank, p)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSwapIsInvolution(t *testing.T) {
	p, err := plugboard.New([][2]byte{{'A', 'B'}, {'C', 'D'}})
	require.NoError(t, err)

	assert.Equal(t, 1, p.Swap(0)) // A -> B
	assert.Equal(t, 0, p.Swap(1)) // B -> A
	assert.Equal(t, 3, p.Swap(2)) // C -> D
	assert.Equal(t, 4, p.Swap(4)) // E unplugged, maps to itself
}

func TestSwapUnplugged(t *testing.T) {
	p, err := plugboard.New([][2]byte{{'A', 'B'}})
	require.NoError(t, err)
	assert.Equal(t, 25, p.Swap(25)) // Z unplugged
}

func TestScanDerivesLinkedPairs(t *testing.T) {
	bus := memory.New()
	bus.Link(0, 1) // A-B jumpered
	bus.Link(2, 3) // C-D jumpered

	scanner := plugboard.NewScanner(bus)
	scanner.Init()
	p := scanner.Scan()

	assert.Equal(t, 1, p.Swap(0))
	assert.Equal(t, 0, p.Swap(1))
	assert.Equal(t, 3, p.Swap(2))
	assert.Equal(t, 2, p.Swap(3))
	assert.Equal(t, 25, p.Swap(25)) // unconnected letter maps to itself
}
