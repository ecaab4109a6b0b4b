package sim

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Faultbox/midgard-rig/internal/sim"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments are no-ops unless the process installs a MeterProvider.
type instruments struct {
	ticks     metric.Int64Counter
	wraps     metric.Int64Counter
	solveTime metric.Float64Histogram
}

func newInstruments() (*instruments, error) {
	m := meter()

	ticks, err := m.Int64Counter("rig.ticks",
		metric.WithDescription("Ticks processed by the driver"))
	if err != nil {
		return nil, err
	}
	wraps, err := m.Int64Counter("rig.loop_wraps",
		metric.WithDescription("Times playback wrapped around the clip"))
	if err != nil {
		return nil, err
	}
	solveTime, err := m.Float64Histogram("rig.solve.duration",
		metric.WithDescription("Forward kinematics solve time"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &instruments{ticks: ticks, wraps: wraps, solveTime: solveTime}, nil
}
