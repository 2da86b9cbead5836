// Package memory provides an in-memory gpio.Bus test double, wired the
// same way the reference in-memory repositories model a real store: a
// mutex-guarded slice standing in for physical state.
package memory

import "sync"

type pinMode int

const (
	modeInputPulldown pinMode = iota
	modeInputPullup
	modeOutput
)

// Bus is a gpio.Bus backed by plain memory, letting tests wire two
// letters together by calling Link before a scan. A pin's read level is
// computed live rather than latched: an input pin reads its own
// pulldown/pullup rest state unless its linked peer is currently driving
// as an output, exactly as a real jumpered pin would.
type Bus struct {
	mu       sync.Mutex
	mode     [32]pinMode
	outLevel [32]bool
	links    map[int]int
}

// New returns an idle bus with every pin pulled down.
func New() *Bus {
	return &Bus{links: make(map[int]int)}
}

// Link jumpers two pins together, the way a physical plugboard cable
// would: driving one high makes the other read high.
func (b *Bus) Link(a, c int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.links[a] = c
	b.links[c] = a
}

func (b *Bus) InitInputPulldown(pin int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mode[pin] = modeInputPulldown
}

func (b *Bus) InitInputPullup(pin int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mode[pin] = modeInputPullup
}

func (b *Bus) InitOutput(pin int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mode[pin] = modeOutput
}

func (b *Bus) Write(pin int, level bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outLevel[pin] = level
}

// Read returns pin's own driven level if it is an output; otherwise its
// linked peer's driven level if that peer is currently an output;
// otherwise its pulldown/pullup rest state.
func (b *Bus) Read(pin int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.mode[pin] == modeOutput {
		return b.outLevel[pin]
	}
	if peer, ok := b.links[pin]; ok && b.mode[peer] == modeOutput {
		return b.outLevel[peer]
	}
	return b.mode[pin] == modeInputPullup
}
