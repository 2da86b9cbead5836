package commander

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/edu-ciaa/enigma-sim/cmd/enigma/build"
)

// Globals holds the flags shared by every subcommand: logging, the
// starting machine configuration, and the PS/2 bus pin assignment.
type Globals struct {
	LogLevel  string `default:"info"    enum:"debug,info,warn,error"        help:"Sets the minimum severity level for log messages"` // nolint:lll
	LogOutput string `default:"console" enum:"console,stdout,stderr,json"   help:"Specifies the format for log output"`              // nolint:lll

	Rotors         []int  `default:"3,2,1" help:"Rotor numerals as 1-8 (I-VIII), fastest rotor first"`
	RotorOffsets   []int  `default:"0,0,0" help:"Starting ring offsets (0-25) for each installed rotor, fastest rotor first"`
	Reflector      string `default:"B"     enum:"A,B,C"                     help:"Reflector wiring to install"`
	PlugboardPairs string `default:""      help:"Comma-separated plugboard pairs, e.g. AB,CD,EF"`

	PS2ClockPin int `default:"2" help:"GPIO pin number wired to the PS/2 clock line"`
	PS2DataPin  int `default:"3" help:"GPIO pin number wired to the PS/2 data line"`

	RotaryClockPin int `default:"4" help:"GPIO pin number wired to the rotor-select rotary encoder's clock line"`
	RotaryDataPin  int `default:"5" help:"GPIO pin number wired to the rotor-select rotary encoder's data line"`
	ButtonPin      int `default:"6" help:"GPIO pin number wired to the mode-select push button"`

	DebounceSamples int `default:"4" help:"Number of consistent samples required before a button edge is accepted"`

	StatusListenAddress string `default:"" help:"Optional address to serve a read-only status/metrics HTTP endpoint (disabled when empty)"` // nolint:lll
}

type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	version := fmt.Sprintf("Version: %s (%s) built at %s", build.Version, build.Commit, build.Time)
	fmt.Println(version) // nolint: forbidigo
	os.Exit(0)
	return nil
}

type RunCmd struct {
	kong.Plugins
}

type CLI struct {
	Globals

	Version VersionCmd `cmd:"" help:"Display the app version and exit"`
	Run     RunCmd     `cmd:""`
}
