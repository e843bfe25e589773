package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics a Volume reports to. A nil *Metrics reports nothing.
type Metrics struct {
	meshed   prometheus.Counter
	vertices prometheus.Counter
	chunks   prometheus.Gauge
}

// NewMetrics creates the metrics of a Volume and registers them with reg. If reg is nil, the metrics are not
// registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		meshed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelmesh",
			Name:      "chunks_meshed_total",
			Help:      "Number of chunk meshes regenerated.",
		}),
		vertices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelmesh",
			Name:      "vertices_emitted_total",
			Help:      "Number of vertices emitted by the mesher.",
		}),
		chunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelmesh",
			Name:      "chunks_loaded",
			Help:      "Number of chunks currently held by the volume.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.meshed, m.vertices, m.chunks)
	}
	return m
}

func (m *Metrics) observeMesh(vertices int) {
	if m == nil {
		return
	}
	m.meshed.Inc()
	m.vertices.Add(float64(vertices))
}

func (m *Metrics) setChunks(n int) {
	if m == nil {
		return
	}
	m.chunks.Set(float64(n))
}
