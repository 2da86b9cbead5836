package memory

import "sync"

// Pin is an in-memory gpio.Pin test double for the PS/2 clock/data
// lines: it just remembers the level and direction it was told to take.
type Pin struct {
	mu     sync.Mutex
	level  bool
	output bool
	pullup bool
}

// NewPin returns a pin idle-high, as PS/2 bus lines are between frames.
func NewPin() *Pin {
	return &Pin{level: true}
}

func (p *Pin) Write(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

func (p *Pin) Read() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *Pin) SetInput(pullup bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = false
	p.pullup = pullup
	p.level = pullup
}

func (p *Pin) SetOutput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = true
}
