package main

import (
	"github.com/alecthomas/kong"
	"go.uber.org/fx"

	"github.com/edu-ciaa/enigma-sim/cmd/enigma/application"
	"github.com/edu-ciaa/enigma-sim/cmd/enigma/commander"
	"github.com/edu-ciaa/enigma-sim/cmd/enigma/components/simulator"
	"github.com/edu-ciaa/enigma-sim/cmd/enigma/logging"
)

func main() {
	cli := commander.CLI{}
	cli.Run.Plugins = kong.Plugins{
		&simulator.CLI{},
	}
	ctx := kong.Parse(
		&cli,
		kong.Name("enigma"),
		kong.Description("Enigma machine simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Summary:   true,
			Tree:      true,
			FlagsLast: true,
		}),
	)

	builder := application.NewBuilder(
		fx.Supply(application.MachineConfig{
			Rotors:         cli.Globals.Rotors,
			RotorOffsets:   cli.Globals.RotorOffsets,
			Reflector:      cli.Globals.Reflector,
			PlugboardPairs: cli.Globals.PlugboardPairs,

			PS2ClockPin: cli.Globals.PS2ClockPin,
			PS2DataPin:  cli.Globals.PS2DataPin,

			RotaryClockPin: cli.Globals.RotaryClockPin,
			RotaryDataPin:  cli.Globals.RotaryDataPin,
			ButtonPin:      cli.Globals.ButtonPin,

			DebounceSamples: cli.Globals.DebounceSamples,
		}),
		application.Module,
		fx.Supply(logging.Config{
			LogLevel:  cli.Globals.LogLevel,
			LogOutput: cli.Globals.LogOutput,
		}),
		fx.Provide(logging.Provide),
		fx.WithLogger(logging.FxLogger),
	)

	if err := ctx.Run(&cli.Globals, builder); err != nil {
		ctx.FatalIfErrorf(err)
	}
}
