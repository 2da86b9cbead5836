// Package metrics exposes the simulator's Prometheus collectors: PS/2
// protocol health, cipher throughput, and FSM transitions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector groups every counter/gauge the simulator publishes behind a
// private registry, the way the reference collector isolates its own
// metrics from the default global registry.
type Collector struct {
	registry *prometheus.Registry

	PS2FramesDecoded prometheus.Counter
	PS2ParityErrors  prometheus.Counter
	PS2FrameErrors   prometheus.Counter
	PS2Overruns      prometheus.Counter

	KeysEncrypted prometheus.Counter

	FSMTransitions *prometheus.CounterVec
	RotorPosition  *prometheus.GaugeVec
}

// New builds a Collector with its own registry, pre-populated with the
// standard process/go collectors.
func New() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())

	return &Collector{
		registry: registry,

		PS2FramesDecoded: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ps2_frames_decoded_total",
			Help: "The total number of PS/2 frames successfully decoded",
		}),
		PS2ParityErrors: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ps2_parity_errors_total",
			Help: "The total number of PS/2 frames rejected for a parity mismatch",
		}),
		PS2FrameErrors: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ps2_frame_errors_total",
			Help: "The total number of PS/2 frames resynced after the inter-bit watchdog fired",
		}),
		PS2Overruns: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ps2_overruns_total",
			Help: "The total number of PS/2 overrun/drop conditions observed",
		}),
		KeysEncrypted: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "cipher_keys_encrypted_total",
			Help: "The total number of letters passed through the cipher engine",
		}),
		FSMTransitions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fsm_transitions_total",
			Help: "The total number of application FSM state transitions",
		}, []string{"from", "to"}),
		RotorPosition: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "cipher_rotor_position",
			Help: "The current offset of each installed rotor",
		}, []string{"slot"}),
	}
}

// Registry exposes the collector's private registry, mounted by the
// optional status HTTP server.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
