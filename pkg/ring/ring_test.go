package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-ciaa/enigma-sim/pkg/ring"
)

func TestPushPopFIFO(t *testing.T) {
	buf := ring.New(4)

	require.True(t, buf.Push(1))
	require.True(t, buf.Push(2))
	require.True(t, buf.Push(3))

	v, ok := buf.Pop()
	require.True(t, ok)
	assert.EqualValues(t, 1, v)

	v, ok = buf.Pop()
	require.True(t, ok)
	assert.EqualValues(t, 2, v)

	assert.Equal(t, 1, buf.Len())
}

func TestPopEmpty(t *testing.T) {
	buf := ring.New(4)
	_, ok := buf.Pop()
	assert.False(t, ok)
}

func TestPushDropsNewestWhenFull(t *testing.T) {
	buf := ring.New(2)

	require.True(t, buf.Push(1))
	require.True(t, buf.Push(2))
	require.False(t, buf.Push(3)) // dropped, buffer full

	assert.EqualValues(t, 1, buf.Dropped())

	v, ok := buf.Pop()
	require.True(t, ok)
	assert.EqualValues(t, 1, v)

	v, ok = buf.Pop()
	require.True(t, ok)
	assert.EqualValues(t, 2, v)

	_, ok = buf.Pop()
	assert.False(t, ok)
}

func TestNewPanicsOnNonPowerOfTwo(t *testing.T) {
	assert.Panics(t, func() {
		ring.New(3)
	})
}
