// Package simulator runs the FSM's cooperative loop as a background fx
// lifecycle component, calling the FSM's Tick once per tick interval.
// It does not drive the memory-backed PS/2 lines itself.
package simulator

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/edu-ciaa/enigma-sim/cmd/enigma/application"
	"github.com/edu-ciaa/enigma-sim/cmd/enigma/commander"
	"github.com/edu-ciaa/enigma-sim/cmd/enigma/components/status"
	"github.com/edu-ciaa/enigma-sim/internal/core/fsm"
)

type Config struct {
	TickInterval time.Duration
}

type Component struct{}

func run(stop chan struct{}, stopped chan struct{}, clock clockwork.Clock, machine *fsm.FSM, cfg Config) {
	ticker := clock.NewTicker(cfg.TickInterval)
	tickerCh := ticker.Chan()
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			close(stopped)
			return
		case <-tickerCh:
			machine.Tick()
		}
	}
}

func New(lc fx.Lifecycle, cfg Config, clock clockwork.Clock, machine *fsm.FSM, logger *zerolog.Logger) *Component {
	stop := make(chan struct{})
	stopped := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info().Dur("interval", cfg.TickInterval).Msg("Starting simulator loop")
			go run(stop, stopped, clock, machine, cfg)
			return nil
		},
		OnStop: func(context.Context) error {
			close(stop)
			<-stopped
			logger.Info().Msg("Simulator loop stopped")
			return nil
		},
	})

	return &Component{}
}

type command struct {
	TickInterval time.Duration `default:"5ms" help:"How often the application FSM samples its inputs and advances"` // nolint:lll

	StatusHTTPReadTimeout     time.Duration `default:"5s"  help:"Status server read timeout"`                 // nolint:lll
	StatusHTTPWriteTimeout    time.Duration `default:"5s"  help:"Status server write timeout"`                // nolint:lll
	StatusHTTPShutdownTimeout time.Duration `default:"10s" help:"Status server graceful shutdown timeout"`    // nolint:lll
}

func (c *command) Run(g *commander.Globals, builder *application.Builder) error {
	opts := []fx.Option{
		fx.Supply(Config{TickInterval: c.TickInterval}),
		Module,
	}
	if g.StatusListenAddress != "" {
		opts = append(opts,
			fx.Supply(status.Config{
				HTTPListenAddr:      g.StatusListenAddress,
				HTTPReadTimeout:     c.StatusHTTPReadTimeout,
				HTTPWriteTimeout:    c.StatusHTTPWriteTimeout,
				HTTPShutdownTimeout: c.StatusHTTPShutdownTimeout,
			}),
			status.Module,
		)
	}
	app := builder.Add(opts...).Build()
	app.Run()
	return nil
}

type CLI struct {
	Simulate command `cmd:"" help:"Run the machine on the in-memory GPIO backend"`
}

var Module = fx.Module("simulator",
	fx.Provide(New),
)
