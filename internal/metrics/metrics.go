// Package metrics exposes chamber telemetry and dashboard activity to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"chamber_dashboard/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Poll and command outcome label values.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	temperature      *prometheus.GaugeVec
	absoluteHumidity *prometheus.GaugeVec
	relativeHumidity *prometheus.GaugeVec
	pollCycles       *prometheus.CounterVec
	pollDuration     prometheus.Histogram
	commands         *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		temperature: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chamber_temperature",
				Help: "Current chamber temperature as reported by the backend.",
			},
			[]string{"id"}),
		absoluteHumidity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chamber_absolute_humidity",
				Help: "Current absolute humidity as reported by the backend.",
			},
			[]string{"id"}),
		relativeHumidity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chamber_relative_humidity",
				Help: "Current relative humidity as reported by the backend.",
			},
			[]string{"id"}),
		pollCycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_poll_cycles_total",
				Help: "Status poll cycles by outcome.",
			},
			[]string{"outcome"}),
		pollDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_poll_duration_seconds",
				Help:    "Duration of status poll cycles.",
				Buckets: prometheus.DefBuckets,
			}),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_commands_total",
				Help: "Dispatched device commands by status code and outcome.",
			},
			[]string{"status", "outcome"}),
	}
	reg.MustRegister(m.temperature)
	reg.MustRegister(m.absoluteHumidity)
	reg.MustRegister(m.relativeHumidity)
	reg.MustRegister(m.pollCycles)
	reg.MustRegister(m.pollDuration)
	reg.MustRegister(m.commands)
	return m
}

// ObserveSnapshot updates the per-device gauges from numeric readings.
func (m *Metrics) ObserveSnapshot(s models.TelemetrySnapshot) {
	if m == nil {
		return
	}
	id := string(s.ID)
	if v, ok := s.Temperature.Float(); ok {
		m.temperature.WithLabelValues(id).Set(v)
	}
	if v, ok := s.AbsoluteHumidity.Float(); ok {
		m.absoluteHumidity.WithLabelValues(id).Set(v)
	}
	if v, ok := s.RelativeHumidity.Float(); ok {
		m.relativeHumidity.WithLabelValues(id).Set(v)
	}
}

// PollFinished records one poll cycle.
func (m *Metrics) PollFinished(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.pollCycles.WithLabelValues(outcome).Inc()
	m.pollDuration.Observe(d.Seconds())
}

// CommandFinished records one dispatched command.
func (m *Metrics) CommandFinished(status int, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(strconv.Itoa(status), outcome).Inc()
}
