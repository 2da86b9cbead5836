// Package fsm coordinates the cipher engine, plugboard scanner, PS/2
// driver, rotary-encoder reader, button debouncer, and display sink
// behind the three-state application supervisor described in the
// design: ENCRYPT, CONFIG_PB, CONFIG_ROTOR.
package fsm

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/edu-ciaa/enigma-sim/internal/core/cipher"
	"github.com/edu-ciaa/enigma-sim/internal/core/debounce"
	"github.com/edu-ciaa/enigma-sim/internal/core/plugboard"
	"github.com/edu-ciaa/enigma-sim/internal/core/ps2"
	"github.com/edu-ciaa/enigma-sim/internal/core/rotary"
	"github.com/edu-ciaa/enigma-sim/internal/metrics"
	"github.com/edu-ciaa/enigma-sim/internal/platform/display"
	"github.com/edu-ciaa/enigma-sim/internal/platform/gpio"
)

const (
	plugboardScanInterval = 500 * time.Millisecond
	rotorIntroDuration    = 700 * time.Millisecond
)

// FSM owns every collaborator named in the design and the one session
// they share. It runs on a single cooperative loop; the only preemptive
// producer touching its inputs is the PS/2 driver's own ISR, which never
// touches FSM state directly, only the driver's ring buffers.
type FSM struct {
	clock  clockwork.Clock
	logger zerolog.Logger

	cipher    *cipher.Engine
	scanner   *plugboard.Scanner
	ps2       *ps2.Driver
	rotary    *rotary.Decoder
	encClk    gpio.Pin
	encData   gpio.Pin
	buttonPin gpio.Pin
	button    *debounce.Debouncer
	display   display.Sink
	metrics   *metrics.Collector

	session *session

	pendingPlugboard plugboard.Plugboard
	lastScan         time.Time
	romanUntil       time.Time
}

// Deps collects the collaborators the FSM arbitrates. All fields except
// Metrics are required; a nil Metrics skips metric updates.
type Deps struct {
	Clock     clockwork.Clock
	Logger    zerolog.Logger
	Cipher    *cipher.Engine
	Scanner   *plugboard.Scanner
	PS2       *ps2.Driver
	Rotary    *rotary.Decoder
	EncClk    gpio.Pin
	EncData   gpio.Pin
	ButtonPin gpio.Pin
	Button    *debounce.Debouncer
	Display   display.Sink
	Metrics   *metrics.Collector
}

// New builds an FSM in its initial ENCRYPT state and runs ENCRYPT's
// entry action once, mirroring the firmware's FSM_Init.
func New(d Deps) *FSM {
	f := &FSM{
		clock:            d.Clock,
		logger:           d.Logger,
		cipher:           d.Cipher,
		scanner:          d.Scanner,
		ps2:              d.PS2,
		rotary:           d.Rotary,
		encClk:           d.EncClk,
		encData:          d.EncData,
		buttonPin:        d.ButtonPin,
		button:           d.Button,
		display:          d.Display,
		metrics:          d.Metrics,
		session:          newSession(),
		pendingPlugboard: plugboard.Blank,
	}
	f.logger = f.logger.With().Str("session", f.session.id.String()).Logger()
	for i := 0; i < numRotors; i++ {
		f.session.rotorPositions[i] = f.cipher.RotorOffset(i)
	}
	f.scanner.Init()
	f.runEntryAction()
	return f
}

// Tick runs one pass of the cooperative loop: sample the button, apply
// any resulting transition, then run the current mode's step function.
func (f *FSM) Tick() {
	if changed, pressed := f.button.Sample(f.buttonPin.Read()); changed && !pressed {
		f.onButtonRelease()
	}

	switch f.session.mode {
	case ModeEncrypt:
		f.stepEncrypt()
	case ModeConfigPlugboard:
		f.stepConfigPlugboard()
	case ModeConfigRotor:
		f.stepConfigRotor()
	}
}

// onButtonRelease advances the session per one debounced press-release.
// The CONFIG_ROTOR sub-progression counter advances before the state tag
// does: only once every installed rotor has been visited does the mode
// itself advance.
func (f *FSM) onButtonRelease() {
	from := f.session.mode

	if f.session.mode == ModeConfigRotor && f.session.rotorSelected != numRotors-1 {
		f.session.rotorSelected++
	} else {
		if f.session.mode == ModeConfigRotor {
			f.session.rotorSelected = 0
		} else if f.session.mode == ModeEncrypt {
			f.ps2.DisableIRQ()
		}
		f.session.mode = f.session.mode.next()
	}

	if f.metrics != nil {
		f.metrics.FSMTransitions.WithLabelValues(from.String(), f.session.mode.String()).Inc()
	}
	f.runEntryAction()
}

func (f *FSM) runEntryAction() {
	switch f.session.mode {
	case ModeEncrypt:
		f.cipher.SetPlugboard(f.pendingPlugboard)
		for i := 0; i < numRotors; i++ {
			if err := f.cipher.SetRotorOffset(i, f.session.rotorPositions[i]); err != nil {
				f.logger.Warn().Err(err).Int("rotor", i).Msg("fsm: rejecting stored rotor offset")
			}
		}
		f.ps2.EnableIRQ()
		f.display.WaitInput(true)
	case ModeConfigPlugboard:
		f.lastScan = f.clock.Now()
		f.display.ShiftText("PLUG", true)
	case ModeConfigRotor:
		f.session.rotorPositions[f.session.rotorSelected] = f.cipher.RotorOffset(f.session.rotorSelected)
		f.romanUntil = f.clock.Now().Add(rotorIntroDuration)
	}
}

func (f *FSM) stepEncrypt() {
	for f.ps2.Available() > 0 {
		event := f.ps2.Read()
		if event&ps2.FlagBreak != 0 || event&ps2.FlagFunction != 0 {
			continue
		}
		code := byte(event & 0xFF)
		if code < 'A' || code > 'Z' {
			continue
		}
		out := f.cipher.Encrypt(code)
		f.session.lastOutputChar = out
		f.display.DrawChar(out)
		if f.metrics != nil {
			f.metrics.KeysEncrypted.Inc()
			for i := 0; i < numRotors; i++ {
				f.metrics.RotorPosition.WithLabelValues(rotorSlotName(i)).Set(float64(f.cipher.RotorOffset(i)))
			}
		}
		return
	}
	f.display.WaitInput(false)
}

func (f *FSM) stepConfigPlugboard() {
	f.display.ShiftText("PLUG", false)
	if f.clock.Now().Sub(f.lastScan) < plugboardScanInterval {
		return
	}
	f.lastScan = f.clock.Now()
	f.pendingPlugboard = f.scanner.Scan()
}

func (f *FSM) stepConfigRotor() {
	delta := f.rotary.Sample(f.encClk.Read(), f.encData.Read())
	if delta != 0 {
		pos := f.session.rotorPositions[f.session.rotorSelected] + delta
		pos = clamp(pos, 0, 25)
		f.session.rotorPositions[f.session.rotorSelected] = pos
		if err := f.cipher.SetRotorOffset(f.session.rotorSelected, pos); err != nil {
			f.logger.Warn().Err(err).Msg("fsm: rotary adjustment rejected")
		}
	}

	if f.clock.Now().Before(f.romanUntil) {
		f.display.DrawRoman(f.session.rotorSelected + 1)
		return
	}
	f.display.DrawNumber(f.session.rotorPositions[f.session.rotorSelected])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func rotorSlotName(i int) string {
	switch i {
	case 0:
		return "fast"
	case 1:
		return "middle"
	default:
		return "slow"
	}
}

// Mode reports the current application state, used by the status
// component.
func (f *FSM) Mode() Mode {
	return f.session.mode
}

// RotorPositions reports the session's stored rotor offsets.
func (f *FSM) RotorPositions() [numRotors]int {
	return f.session.rotorPositions
}
