package display

import (
	"fmt"
	"io"
)

var romanNumerals = [4]string{"", "I", "II", "III"}

// Console is a Sink that writes plain text to an io.Writer, used by the
// simulate CLI plugin for interactive manual use instead of a real
// LED-matrix driver.
type Console struct {
	out io.Writer

	shiftCursor int
	waitCursor  int
	loadCursor  int
}

// NewConsole builds a Console sink writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) DrawChar(ch byte) {
	fmt.Fprintf(c.out, "%c", ch) // nolint: errcheck
}

func (c *Console) DrawNumber(n int) {
	fmt.Fprintf(c.out, "[%02d]", n%100) // nolint: errcheck
}

func (c *Console) DrawRoman(n int) {
	if n < 1 || n > 3 {
		return
	}
	fmt.Fprintf(c.out, "[%s]", romanNumerals[n]) // nolint: errcheck
}

func (c *Console) ShiftText(text string, reset bool) bool {
	if reset {
		c.shiftCursor = 0
	}
	if len(text) == 0 {
		return true
	}
	fmt.Fprintf(c.out, "%c", text[c.shiftCursor%len(text)]) // nolint: errcheck
	c.shiftCursor++
	return c.shiftCursor%len(text) == 0
}

func (c *Console) WaitInput(reset bool) bool {
	if reset {
		c.waitCursor = 0
	}
	c.waitCursor++
	done := c.waitCursor%8 == 0
	if done {
		fmt.Fprint(c.out, ".") // nolint: errcheck
	}
	return done
}

func (c *Console) Loading(reset bool) bool {
	if reset {
		c.loadCursor = 0
	}
	c.loadCursor++
	return c.loadCursor%4 == 0
}
