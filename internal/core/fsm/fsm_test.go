package fsm_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-ciaa/enigma-sim/internal/core/cipher"
	"github.com/edu-ciaa/enigma-sim/internal/core/debounce"
	"github.com/edu-ciaa/enigma-sim/internal/core/fsm"
	"github.com/edu-ciaa/enigma-sim/internal/core/plugboard"
	"github.com/edu-ciaa/enigma-sim/internal/core/ps2"
	"github.com/edu-ciaa/enigma-sim/internal/core/reflector"
	"github.com/edu-ciaa/enigma-sim/internal/core/rotary"
	displaymem "github.com/edu-ciaa/enigma-sim/internal/platform/display/memory"
	gpiomem "github.com/edu-ciaa/enigma-sim/internal/platform/gpio/memory"
)

type harness struct {
	fsm     *fsm.FSM
	clock   *clockwork.FakeClock
	display *displaymem.Sink
	button  *gpiomem.Pin
	encClk  *gpiomem.Pin
	encData *gpiomem.Pin
	ps2     *ps2.Driver
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	refl, err := reflector.New(1)
	require.NoError(t, err)
	engine, err := cipher.New([3]int{3, 2, 1}, [3]int{0, 0, 0}, refl, zerolog.Nop())
	require.NoError(t, err)

	bus := gpiomem.New()
	scanner := plugboard.NewScanner(bus)

	clock := clockwork.NewFakeClock()

	ps2Clk := gpiomem.NewPin()
	ps2Data := gpiomem.NewPin()
	driver := ps2.New(ps2Clk, ps2Data, clock, nil, zerolog.Nop())

	encClk := gpiomem.NewPin()
	encData := gpiomem.NewPin()
	button := gpiomem.NewPin()

	debouncer := debounce.New(clock, 10*time.Millisecond, 10*time.Millisecond)
	display := displaymem.New()

	machine := fsm.New(fsm.Deps{
		Clock:     clock,
		Logger:    zerolog.Nop(),
		Cipher:    engine,
		Scanner:   scanner,
		PS2:       driver,
		Rotary:    &rotary.Decoder{},
		EncClk:    encClk,
		EncData:   encData,
		ButtonPin: button,
		Button:    debouncer,
		Display:   display,
		Metrics:   nil,
	})

	return &harness{
		fsm:     machine,
		clock:   clock,
		display: display,
		button:  button,
		encClk:  encClk,
		encData: encData,
		ps2:     driver,
	}
}

// press drives the button pin high (pressed), then low (released), sampling on every 10ms
// tick so the debouncer sees a full press-and-release.
func (h *harness) press(t *testing.T) {
	t.Helper()
	h.button.Write(true)
	for i := 0; i < 2; i++ {
		h.clock.Advance(10 * time.Millisecond)
		h.fsm.Tick()
	}
	h.button.Write(false)
	for i := 0; i < 2; i++ {
		h.clock.Advance(10 * time.Millisecond)
		h.fsm.Tick()
	}
}

func TestNewStartsInEncryptWithIRQEnabled(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, fsm.ModeEncrypt, h.fsm.Mode())

	// OnClockEdge is a no-op unless ENCRYPT's entry action armed the IRQ.
	sendFrame(h.ps2, 0x1C)
	assert.Equal(t, 1, h.ps2.Available())
}

func TestButtonPressCyclesThroughRotorSlotsBeforeAdvancingMode(t *testing.T) {
	h := newHarness(t)

	h.press(t) // ENCRYPT -> CONFIG_PB
	assert.Equal(t, fsm.ModeConfigPlugboard, h.fsm.Mode())

	h.press(t) // CONFIG_PB -> CONFIG_ROTOR
	assert.Equal(t, fsm.ModeConfigRotor, h.fsm.Mode())

	h.press(t) // rotor slot 0 -> 1
	assert.Equal(t, fsm.ModeConfigRotor, h.fsm.Mode())

	h.press(t) // rotor slot 1 -> 2
	assert.Equal(t, fsm.ModeConfigRotor, h.fsm.Mode())

	h.press(t) // rotor slot 2 (last) -> ENCRYPT
	assert.Equal(t, fsm.ModeEncrypt, h.fsm.Mode())
}

func TestConfigPlugboardShiftsTextEveryTick(t *testing.T) {
	h := newHarness(t)
	h.press(t) // -> CONFIG_PB

	before := h.display.ShiftCalls
	h.clock.Advance(500 * time.Millisecond)
	h.fsm.Tick() // also triggers the periodic scan against the empty bus

	assert.Greater(t, h.display.ShiftCalls, before)
}

func TestConfigRotorAdjustsPositionOnRotaryTicks(t *testing.T) {
	h := newHarness(t)
	h.press(t) // -> CONFIG_PB
	h.press(t) // -> CONFIG_ROTOR

	before := h.fsm.RotorPositions()[0]

	// One clockwise detent through the encoder pins.
	sequence := [][2]bool{
		{true, true}, {false, true}, {false, false}, {true, false}, {true, true},
	}
	for _, s := range sequence {
		h.encClk.Write(s[0])
		h.encData.Write(s[1])
		h.fsm.Tick()
	}

	after := h.fsm.RotorPositions()[0]
	assert.Greater(t, after, before)
}

func TestEncryptModeDrainsPS2LettersOnly(t *testing.T) {
	h := newHarness(t)

	sendFrame(h.ps2, 0x1C) // 'A' make code, plain letter
	h.fsm.Tick()

	require.Len(t, h.display.Chars, 1)
	assert.Equal(t, byte('B'), h.display.Chars[0])
}

// sendFrame replays a full 11-bit PS/2 frame for raw with valid odd
// parity, mirroring the ps2 package's own test helper.
func sendFrame(d *ps2.Driver, raw byte) {
	d.OnClockEdge(false)
	ones := 0
	for i := 0; i < 8; i++ {
		bit := raw&(1<<uint(i)) != 0
		if bit {
			ones++
		}
		d.OnClockEdge(bit)
	}
	d.OnClockEdge(ones%2 == 0)
	d.OnClockEdge(true)
}
