// Package debounce implements the sampled-counter button debouncer: one
// physical press-and-release produces exactly one logical edge.
package debounce

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const defaultSampleInterval = 10 * time.Millisecond

// Debouncer samples a raw boolean input on a fixed tick and reports a
// filtered (changed, pressed) transition once the raw state has held
// steady for long enough.
type Debouncer struct {
	clock clockwork.Clock

	sampleInterval time.Duration
	pressSamples   int
	releaseSamples int

	debounced bool
	counter   int
	lastTick  time.Time
}

// New builds a debouncer that requires the raw input to disagree with
// the debounced state for pressFor/releaseFor before flipping.
func New(clock clockwork.Clock, pressFor, releaseFor time.Duration) *Debouncer {
	d := &Debouncer{
		clock:          clock,
		sampleInterval: defaultSampleInterval,
		pressSamples:   samples(pressFor, defaultSampleInterval),
		releaseSamples: samples(releaseFor, defaultSampleInterval),
	}
	d.reload()
	d.lastTick = clock.Now()
	return d
}

func samples(duration, interval time.Duration) int {
	n := int(duration / interval)
	if n < 1 {
		n = 1
	}
	return n
}

// Sample feeds one raw reading. It self-paces against sampleInterval:
// calls within less than one interval of the last sample are no-ops, so
// callers may poll faster than the nominal 10ms tick without effect.
// Returns (changed, pressed).
func (d *Debouncer) Sample(raw bool) (changed bool, pressed bool) {
	now := d.clock.Now()
	if now.Sub(d.lastTick) < d.sampleInterval {
		return false, d.debounced
	}
	d.lastTick = now

	if raw == d.debounced {
		d.reload()
		return false, d.debounced
	}

	d.counter--
	if d.counter > 0 {
		return false, d.debounced
	}

	d.debounced = raw
	d.reload()
	return true, d.debounced
}

func (d *Debouncer) reload() {
	if d.debounced {
		d.counter = d.releaseSamples
	} else {
		d.counter = d.pressSamples
	}
}

// Pressed reports the current debounced state without sampling.
func (d *Debouncer) Pressed() bool {
	return d.debounced
}
