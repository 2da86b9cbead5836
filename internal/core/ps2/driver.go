// Package ps2 implements a bit-level PS/2 keyboard protocol driver:
// frame receive/transmit, Scan Code Set 2 decoding with E0/E1 prefixes
// and break codes, modifier/lock tracking, and host-to-device commands.
// The driver is an owning instance rather than process-global state, so
// tests can construct many of them.
package ps2

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/edu-ciaa/enigma-sim/internal/metrics"
	"github.com/edu-ciaa/enigma-sim/internal/platform/gpio"
	"github.com/edu-ciaa/enigma-sim/pkg/ring"
)

const (
	interBitWatchdog = 250 * time.Millisecond

	// Key event flag bits, occupying the upper byte of a 16-bit event.
	FlagFunction = uint16(1 << 8)
	FlagGui      = uint16(1 << 9)
	FlagAltGr    = uint16(1 << 10)
	FlagAlt      = uint16(1 << 11)
	FlagCaps     = uint16(1 << 12)
	FlagCtrl     = uint16(1 << 13)
	FlagShift    = uint16(1 << 14)
	FlagBreak    = uint16(1 << 15)
)

// LockMask mirrors the keyboard's LED state: bit0 scroll, bit1 num,
// bit2 caps, bit3 extra.
type LockMask uint8

const (
	LockScroll LockMask = 1 << 0
	LockNum    LockMask = 1 << 1
	LockCaps   LockMask = 1 << 2
	LockExtra  LockMask = 1 << 3
)

var (
	ErrInvalidArg = errors.New("ps2: argument out of range")
)

const (
	defaultRawRingSize   = 64
	defaultEventRingSize = 32
)

// frameStatus classifies a completed 11-bit frame.
type frameStatus int

const (
	frameOK frameStatus = iota
	frameParityError
	frameTimeoutResync
)

// Driver owns one keyboard's entire protocol state: the bit-level
// receiver, the byte decoder, modifier/lock tracking, and both ring
// buffers. The clk-edge ISR is the only mutator of bit-level state; the
// public API touches shared fields only through the ring buffers or
// while the caller has disabled the ISR.
type Driver struct {
	clock   clockwork.Clock
	clkPin  gpio.Pin
	dataPin gpio.Pin

	logger  zerolog.Logger
	metrics *metrics.Collector

	irqEnabled bool

	// bit-level receive state, mutated only from OnClockEdge.
	bitCount  int
	shiftReg  uint16
	parityAcc uint8
	lastEdge  time.Time

	dec decoder

	lockMask  LockMask
	keystatus uint16 // current modifier bits, mirrored into each event
	noBreaks  bool
	noRepeats bool

	lastValidByte byte
	haveLastValid bool

	pendingCmd []byte // bytes still to clock out to the device

	rawRing   *ring.Buffer
	eventRing *ring.Buffer
}

// New builds a driver bound to the given clock/data pins.
func New(clk, data gpio.Pin, clock clockwork.Clock, m *metrics.Collector, logger zerolog.Logger) *Driver {
	d := &Driver{
		clock:     clock,
		clkPin:    clk,
		dataPin:   data,
		metrics:   m,
		logger:    logger,
		rawRing:   ring.New(defaultRawRingSize),
		eventRing: ring.New(defaultEventRingSize),
	}
	d.lastEdge = clock.Now()
	return d
}

// EnableIRQ arms the clk-edge interrupt; in this simulation that simply
// means OnClockEdge is no longer a no-op.
func (d *Driver) EnableIRQ() {
	d.irqEnabled = true
}

// DisableIRQ disarms the clk-edge interrupt, used by the FSM while
// leaving ENCRYPT and during host-to-device setup.
func (d *Driver) DisableIRQ() {
	d.irqEnabled = false
}

// OnClockEdge is the ISR entry point, invoked once per falling edge on
// the clk line while receiving. It is the sole mutator of bit-level
// frame state.
func (d *Driver) OnClockEdge(dataLevel bool) {
	if !d.irqEnabled {
		return
	}

	now := d.clock.Now()
	if now.Sub(d.lastEdge) >= interBitWatchdog {
		if d.bitCount > 0 {
			d.onFrameComplete(0, frameTimeoutResync)
		}
		d.bitCount = 0
		d.shiftReg = 0
		d.parityAcc = 0
	}
	d.lastEdge = now

	d.bitCount++
	switch {
	case d.bitCount == 1:
		if dataLevel {
			// start bit must be low; resync without consuming this edge.
			d.bitCount = 0
			return
		}
	case d.bitCount >= 2 && d.bitCount <= 9:
		bit := uint16(0)
		if dataLevel {
			bit = 1
			d.parityAcc ^= 1
		}
		d.shiftReg |= bit << uint(d.bitCount-2)
	case d.bitCount == 10:
		parityBit := uint8(0)
		if dataLevel {
			parityBit = 1
		}
		odd := (d.parityAcc ^ parityBit) == 1
		if !odd {
			d.onFrameComplete(0, frameParityError)
			d.resetFrame()
			return
		}
	case d.bitCount == 11:
		raw := byte(d.shiftReg & 0xFF)
		d.onFrameComplete(raw, frameOK)
		d.resetFrame()
	}
}

func (d *Driver) resetFrame() {
	d.bitCount = 0
	d.shiftReg = 0
	d.parityAcc = 0
}

func (d *Driver) onFrameComplete(raw byte, status frameStatus) {
	switch status {
	case frameParityError:
		if d.metrics != nil {
			d.metrics.PS2ParityErrors.Inc()
		}
		d.logger.Warn().Msg("ps2: parity error, requesting resend")
		d.sendCommand(KeyResend)
		return
	case frameTimeoutResync:
		if d.metrics != nil {
			d.metrics.PS2FrameErrors.Inc()
		}
		return
	}
	if d.metrics != nil {
		d.metrics.PS2FramesDecoded.Inc()
	}
	d.decodeByte(raw)
}

// decodeByte classifies one completed byte per the device protocol and
// the key-translation decoder, mutating dec deterministically.
func (d *Driver) decodeByte(raw byte) {
	if d.dec.state == stateAwaitingExtendedPause {
		// Every byte of the pause sequence is absorbed, including the
		// E1 and F0 bytes inside it.
		d.dec.remaining--
		if d.dec.remaining <= 0 {
			d.emitTranslated(translate(KeyPause, false, false))
			d.dec.reset()
		}
		return
	}

	switch raw {
	case KeyBAT, KeyBATFail:
		d.dec.reset()
		d.pushRaw(raw, false, false)
		return
	case 0xFA: // ACK
		if d.dec.state == stateAwaitingResponse {
			d.dec.responseCount--
			if d.dec.responseCount <= 0 {
				d.dec.reset()
			}
		}
		d.sendNextPending()
		return
	case KeyResend:
		if d.haveLastValid {
			d.sendCommand(d.lastValidByte)
		}
		return
	case 0xEE: // ECHO
		d.dec.reset()
		return
	case 0xE0:
		d.dec.enterExtended()
		return
	case 0xE1:
		d.dec.enterExtendedPause()
		return
	case 0xF0:
		d.dec.enterBreak()
		return
	case 0xFF, 0x00:
		d.hardReset()
		return
	}

	switch d.dec.state {
	case stateAwaitingBreak:
		extended := d.dec.extended
		d.dec.reset()
		d.pushRaw(raw, extended, true)
	case stateAwaitingExtended:
		d.dec.reset()
		d.pushRaw(raw, true, false)
	default:
		d.lastValidByte = raw
		d.haveLastValid = true
		d.pushRaw(raw, false, false)
	}
	d.drainRaw()
}

// drainRaw is the translation step consuming the raw-byte ring the ISR
// produces into: it pops resolved (raw, extended, break) entries and
// translates them into key events for as long as the event ring has
// room, matching the spec's "event ring saturation refuses to advance
// translation" rule rather than dropping raw bytes in its place.
func (d *Driver) drainRaw() {
	for d.eventRing.Len() < d.eventRing.Cap() {
		v, ok := d.rawRing.Pop()
		if !ok {
			return
		}
		raw := byte(v & 0xFF)
		extended := v&(1<<8) != 0
		brk := v&(1<<9) != 0
		d.translateScanCode(raw, extended, brk)
	}
}

func (d *Driver) pushRaw(raw byte, extended, brk bool) {
	v := uint16(raw)
	if extended {
		v |= 1 << 8
	}
	if brk {
		v |= 1 << 9
	}
	if !d.rawRing.Push(v) && d.metrics != nil {
		d.metrics.PS2Overruns.Inc()
	}
}

// hardReset clears all driver state to a known-idle baseline, matching
// the firmware's response to a device-reported OVERRUN.
func (d *Driver) hardReset() {
	d.dec.reset()
	d.bitCount = 0
	d.shiftReg = 0
	d.parityAcc = 0
	d.haveLastValid = false
	d.pendingCmd = nil
	if d.metrics != nil {
		d.metrics.PS2Overruns.Inc()
	}
}

// translateScanCode resolves one decoded scan code (with its e0/break
// context) into a key event and applies modifier/lock side effects.
func (d *Driver) translateScanCode(raw byte, extended, brk bool) {
	var code byte
	if extended {
		code = extendedKey[raw]
	} else if remapped, isKeypad := keypadNavigation[raw]; isKeypad && d.numLockRemapsKeypad() {
		code = remapped
	} else {
		code = singleKey[raw]
	}
	if code == KeyNone {
		return
	}

	before := d.keystatus
	switch code {
	case KeyCapsLock:
		if !brk {
			d.lockMask ^= LockCaps
			d.keystatus ^= FlagCaps
			_ = d.SetLock(d.lockMask)
		}
		return
	case KeyNumLock:
		if !brk {
			d.lockMask ^= LockNum
		}
		return
	case KeyScrollLock:
		if !brk {
			d.lockMask ^= LockScroll
		}
		return
	case KeyLeftShift, KeyRightShift:
		d.setModifier(FlagShift, !brk)
		if brk && d.noBreaks {
			return
		}
	case KeyLeftCtrl, KeyRightCtrl:
		d.setModifier(FlagCtrl, !brk)
		if brk && d.noBreaks {
			return
		}
	case KeyLeftAlt:
		d.setModifier(FlagAlt, !brk)
		if brk && d.noBreaks {
			return
		}
	case KeyRightAlt:
		d.setModifier(FlagAltGr, !brk)
		if brk && d.noBreaks {
			return
		}
	case KeyLeftGui, KeyRightGui:
		d.setModifier(FlagGui, !brk)
		if brk && d.noBreaks {
			return
		}
	}

	if brk && d.noBreaks {
		return
	}
	// a repeated make of an already-held modifier left keystatus as it was
	if !brk && d.noRepeats && code >= KeyLeftShift && code <= KeyRightGui && d.keystatus == before {
		return
	}

	d.emitTranslated(translate(code, brk, d.isFunctionKey(code)) | d.keystatus)
}

func (d *Driver) setModifier(flag uint16, held bool) {
	already := d.keystatus&flag != 0
	if held && already && d.noRepeats {
		return
	}
	if held {
		d.keystatus |= flag
	} else {
		d.keystatus &^= flag
	}
}

func (d *Driver) isFunctionKey(code byte) bool {
	return code >= KeyF1 && code <= KeyScrollLock || code == KeyEnter || code == KeyTab ||
		code == KeyEsc || code == KeyBackspace || (code >= KeyUp && code <= KeyPause)
}

func (d *Driver) numLockRemapsKeypad() bool {
	return d.lockMask&LockNum == 0 || d.keystatus&FlagShift != 0
}

// translate packs a key code into the low byte of an event and sets the
// break (bit 15) and function (bit 8) flags; the caller ORs in the live
// modifier/lock bits.
func translate(code byte, brk, function bool) uint16 {
	v := uint16(code)
	if brk {
		v |= FlagBreak
	}
	if function {
		v |= FlagFunction
	}
	return v
}

func (d *Driver) emitTranslated(event uint16) {
	if !d.eventRing.Push(event) && d.metrics != nil {
		d.metrics.PS2Overruns.Inc()
	}
}

// Available reports how many translated events are queued, first
// resuming translation of any raw bytes the ISR queued while the event
// ring was saturated.
func (d *Driver) Available() int {
	d.drainRaw()
	return d.eventRing.Len()
}

// Read pops one translated key event, or 0 if empty.
func (d *Driver) Read() uint16 {
	v, ok := d.eventRing.Pop()
	if !ok {
		return 0
	}
	return v
}

// GetLock returns the current lock-LED mask.
func (d *Driver) GetLock() LockMask {
	return d.lockMask
}

// SetLock sends the 0xED command sequence to sync the device's LEDs
// with mask, expecting one ACK in response.
func (d *Driver) SetLock(mask LockMask) error {
	d.lockMask = mask
	d.queueCommand([]byte{0xED, byte(mask)})
	return nil
}

// SetNoBreaks toggles whether break events are suppressed after
// translation (make events always pass through).
func (d *Driver) SetNoBreaks(v bool) {
	d.noBreaks = v
}

// SetNoRepeats toggles whether a held modifier emits further events
// while already held.
func (d *Driver) SetNoRepeats(v bool) {
	d.noRepeats = v
}

// Echo requests the device's 0xEE echo response, used as a liveness
// check.
func (d *Driver) Echo() {
	d.queueCommand([]byte{0xEE})
}

// ReadID requests the device's two-byte identification response.
func (d *Driver) ReadID() {
	d.queueCommand([]byte{0xF2})
}

// GetScanCodeSet requests the device report its active scan code set.
func (d *Driver) GetScanCodeSet() {
	d.queueCommand([]byte{0xF0, 0x00})
}

// Typematic sets the key-repeat rate (0-31) and delay (0-3); out-of-range
// arguments are rejected without touching driver state, per the
// configuration-errors contract (reset/typematic are configuration only,
// the application never engages key repeat).
func (d *Driver) Typematic(rate int, delay int) error {
	if rate < 0 || rate > 31 || delay < 0 || delay > 3 {
		return ErrInvalidArg
	}
	param := byte(delay<<5) | byte(rate)
	d.queueCommand([]byte{0xF3, param})
	return nil
}

// Reset sends the device reset command (0xFF), expecting a BAT response.
func (d *Driver) Reset() {
	d.queueCommand([]byte{0xFF})
}

func (d *Driver) queueCommand(cmd []byte) {
	d.pendingCmd = append(d.pendingCmd, cmd...)
	d.dec.enterResponse(1)
	d.sendNextPending()
}

func (d *Driver) sendNextPending() {
	if len(d.pendingCmd) == 0 {
		return
	}
	next := d.pendingCmd[0]
	d.pendingCmd = d.pendingCmd[1:]
	d.sendCommand(next)
}

// sendCommand drives the host-to-device transmission preamble: the ISR
// is disabled for the duration of the bus takeover, matching the
// firmware's scope-bounded disable_irq/enable_irq discipline, then the
// clock is handed back to the device.
func (d *Driver) sendCommand(b byte) {
	wasEnabled := d.irqEnabled
	d.DisableIRQ()
	defer func() {
		if wasEnabled {
			d.EnableIRQ()
		}
	}()

	d.clkPin.SetOutput()
	d.clkPin.Write(false) // pull clk low; no hold time is simulated
	d.dataPin.SetOutput()
	d.dataPin.Write(false) // start bit

	d.clkPin.SetInput(true) // release clk back to the device
	d.lastValidByte = b
	d.haveLastValid = true
}
