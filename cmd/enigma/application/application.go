package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/edu-ciaa/enigma-sim/cmd/enigma/clock"
	"github.com/edu-ciaa/enigma-sim/cmd/enigma/logging"
	"github.com/edu-ciaa/enigma-sim/internal/metrics"
	"github.com/edu-ciaa/enigma-sim/internal/validation"
)

func provideRegistry(m *metrics.Collector) *prometheus.Registry {
	return m.Registry()
}

type Builder struct {
	opts []fx.Option
}

func NewBuilder(opts ...fx.Option) *Builder {
	return &Builder{
		opts: opts,
	}
}

func (b *Builder) Add(opts ...fx.Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

func (b *Builder) Build() *fx.App {
	return fx.New(b.opts...)
}

var Module = fx.Module("application",
	fx.Invoke(logging.NoGlobal),
	fx.Provide(clock.Provide),
	fx.Provide(validation.New),
	fx.Provide(metrics.New),
	fx.Provide(provideRegistry),
	fx.Provide(provideMachine),
)
