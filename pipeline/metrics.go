package pipeline

import "github.com/prometheus/client_golang/prometheus"

// metrics bundles the Prometheus collectors a Pipeline registers on
// construction. Grounded on DimaJoyti-go-coffee's metrics wiring
// (counters/histograms/gauges registered alongside service startup) and
// the warpcomdev-asicamera2 manifest's prometheus/client_golang
// dependency.
type metrics struct {
	framesProcessed prometheus.Counter
	stageDuration   *prometheus.HistogramVec
	workersRunning  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		framesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "framepipe_frames_processed_total",
			Help: "Total number of frames that completed every stage.",
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "framepipe_stage_duration_seconds",
			Help: "Per-stage processing time.",
		}, []string{"stage"}),
		workersRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "framepipe_workers_running",
			Help: "Number of worker goroutines currently inside the pipeline loop.",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m.framesProcessed = registerOrReuse(reg, m.framesProcessed).(prometheus.Counter)
	m.stageDuration = registerOrReuse(reg, m.stageDuration).(*prometheus.HistogramVec)
	m.workersRunning = registerOrReuse(reg, m.workersRunning).(prometheus.Gauge)
	return m
}

// registerOrReuse registers c with reg, returning the already-registered
// collector of the same name instead of panicking if a prior Pipeline in
// this process (e.g. the benchmark harness sweeping several worker
// counts) already registered it.
func registerOrReuse(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}
