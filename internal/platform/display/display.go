// Package display defines the animation/rendering sink the FSM drives.
// Real rendering (an LED matrix over SPI) is out of scope for this
// module; only the interface the core consumes is fixed here, plus an
// in-memory test double and a console adapter for interactive use.
package display

// Sink is the display/animation collaborator described by the
// application FSM: characters, small numerals, Roman numerals, scrolling
// text, and idle/loading animations. Each *_done predicate returns true
// once per animation cycle so the FSM can advance UI phases.
type Sink interface {
	DrawChar(c byte)
	DrawNumber(n int)
	DrawRoman(n int)
	ShiftText(text string, reset bool) (done bool)
	WaitInput(reset bool) (cycleDone bool)
	Loading(reset bool) (cycleDone bool)
}
