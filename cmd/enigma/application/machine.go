package application

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/edu-ciaa/enigma-sim/internal/core/cipher"
	"github.com/edu-ciaa/enigma-sim/internal/core/debounce"
	"github.com/edu-ciaa/enigma-sim/internal/core/fsm"
	"github.com/edu-ciaa/enigma-sim/internal/core/plugboard"
	"github.com/edu-ciaa/enigma-sim/internal/core/ps2"
	"github.com/edu-ciaa/enigma-sim/internal/core/reflector"
	"github.com/edu-ciaa/enigma-sim/internal/core/rotary"
	"github.com/edu-ciaa/enigma-sim/internal/metrics"
	"github.com/edu-ciaa/enigma-sim/internal/platform/display"
	"github.com/edu-ciaa/enigma-sim/internal/platform/gpio"
	memorygpio "github.com/edu-ciaa/enigma-sim/internal/platform/gpio/memory"
)

const sampleInterval = 10 * time.Millisecond

// MachineConfig captures the starting hardware and cipher configuration
// read from the CLI globals.
type MachineConfig struct {
	Rotors         []int
	RotorOffsets   []int
	Reflector      string
	PlugboardPairs string

	PS2ClockPin int
	PS2DataPin  int

	RotaryClockPin int
	RotaryDataPin  int
	ButtonPin      int

	DebounceSamples int
}

// Machine bundles the constructed FSM for the rest of the application
// to inject. Real GPIO wiring is out of scope for this module (see
// SPEC_FULL.md's Non-goals); every pin underneath the FSM is backed by
// the in-memory GPIO adapters, and the display sink is the console
// adapter writing to stdout.
type Machine struct {
	fx.Out

	FSM *fsm.FSM
}

// startupParams is the parsed, validator-checked shape of MachineConfig:
// rotor numerals, rotor offsets, and the resolved reflector index, each
// bound to the domain's registered validators before anything is handed
// to the cipher engine.
type startupParams struct {
	Rotors       [3]int `validate:"dive,rotorindex"`
	RotorOffsets [3]int `validate:"dive,offset"`
	Reflector    int    `validate:"reflectorindex"`
}

func parseReflectorIndex(name string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "A":
		return 0, nil
	case "B":
		return 1, nil
	case "C":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown reflector %q", name)
	}
}

func parsePlugboardPairs(spec string) ([][2]byte, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var pairs [][2]byte
	for _, chunk := range strings.Split(spec, ",") {
		chunk = strings.ToUpper(strings.TrimSpace(chunk))
		if len(chunk) != 2 {
			return nil, fmt.Errorf("invalid plugboard pair %q", chunk)
		}
		pairs = append(pairs, [2]byte{chunk[0], chunk[1]})
	}
	return pairs, nil
}

func provideMachine(
	lc fx.Lifecycle,
	cfg MachineConfig,
	clock clockwork.Clock,
	validate *validator.Validate,
	m *metrics.Collector,
	logger *zerolog.Logger,
) (Machine, error) {
	if len(cfg.Rotors) != 3 || len(cfg.RotorOffsets) != 3 {
		return Machine{}, fmt.Errorf("exactly 3 rotors and 3 offsets are required, got %d and %d",
			len(cfg.Rotors), len(cfg.RotorOffsets))
	}

	reflIdx, err := parseReflectorIndex(cfg.Reflector)
	if err != nil {
		return Machine{}, err
	}

	var numerals, offsets [3]int
	copy(numerals[:], cfg.Rotors)
	copy(offsets[:], cfg.RotorOffsets)

	if err := validate.Struct(startupParams{
		Rotors:       numerals,
		RotorOffsets: offsets,
		Reflector:    reflIdx,
	}); err != nil {
		return Machine{}, fmt.Errorf("machine config: %w", err)
	}

	refl, err := reflector.New(reflIdx)
	if err != nil {
		return Machine{}, fmt.Errorf("reflector: %w", err)
	}

	engine, err := cipher.New(numerals, offsets, refl, *logger)
	if err != nil {
		return Machine{}, fmt.Errorf("cipher: %w", err)
	}

	pairs, err := parsePlugboardPairs(cfg.PlugboardPairs)
	if err != nil {
		return Machine{}, fmt.Errorf("plugboard: %w", err)
	}
	initialPlugboard, err := plugboard.New(pairs)
	if err != nil {
		return Machine{}, fmt.Errorf("plugboard: %w", err)
	}
	engine.SetPlugboard(initialPlugboard)

	plugboardBus := memorygpio.New()
	scanner := plugboard.NewScanner(plugboardBus)

	ps2Clk := memorygpio.NewPin()
	ps2Data := memorygpio.NewPin()
	var clkPin, dataPin gpio.Pin = ps2Clk, ps2Data
	ps2Driver := ps2.New(clkPin, dataPin, clock, m, *logger)

	encClk := memorygpio.NewPin()
	encData := memorygpio.NewPin()
	decoder := &rotary.Decoder{}

	buttonPin := memorygpio.NewPin()
	debouncer := debounce.New(clock, time.Duration(cfg.DebounceSamples)*sampleInterval, time.Duration(cfg.DebounceSamples)*sampleInterval)

	var sink display.Sink = display.NewConsole(os.Stdout)

	machine := fsm.New(fsm.Deps{
		Clock:     clock,
		Logger:    *logger,
		Cipher:    engine,
		Scanner:   scanner,
		PS2:       ps2Driver,
		Rotary:    decoder,
		EncClk:    encClk,
		EncData:   encData,
		ButtonPin: buttonPin,
		Button:    debouncer,
		Display:   sink,
		Metrics:   m,
	})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info().
				Ints("rotors", cfg.Rotors).
				Ints("offsets", cfg.RotorOffsets).
				Str("reflector", cfg.Reflector).
				Msg("Machine initialized")
			return nil
		},
	})

	return Machine{FSM: machine}, nil
}
