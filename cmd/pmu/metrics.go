package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	points   prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pmu_runs_total",
				Help: "Planner runs by kind and result.",
			},
			[]string{"kind", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pmu_run_duration_seconds",
				Help:    "Time spent in planner runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pmu_published_items",
			Help: "Probe points or program items in the published result.",
		}),
	}
	reg.MustRegister(m.runs, m.duration, m.points)
	return m
}

func (m *metrics) observe(kind string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.runs.WithLabelValues(kind, result).Inc()
	m.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
