// Package metrics provides Prometheus metrics for the tick loop and the game.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Latency buckets in milliseconds, centred on a 33ms frame budget.
var defaultBuckets = []float64{1, 2, 5, 10, 20, 33, 50, 100, 250, 500}

// Manager owns every pinchslice metric. A nil *Manager is valid and records
// nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Tick loop
	ticks         prometheus.Counter
	framesSkipped prometheus.Counter
	detectErrors  prometheus.Counter
	handsSeen     prometheus.Counter
	tickLatency   prometheus.Histogram
	detectLatency prometheus.Histogram

	// Interaction
	pinches prometheus.Counter
	clicks  prometheus.Counter

	// Game
	fruitsSpawned prometheus.Counter
	fruitsSliced  prometheus.Counter
	fruitsMissed  prometheus.Counter
	score         prometheus.Gauge
	lives         prometheus.Gauge
	phase         prometheus.Gauge
}

// NewManager creates a metrics manager. Without WithRegistry it registers on
// a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pinchslice",
		histogramBuckets: defaultBuckets,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
		Buckets:   m.histogramBuckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.ticks = m.counter("ticks_total", "Total number of processed ticks")
	m.framesSkipped = m.counter("frames_skipped_total", "Ticks skipped because the frame source returned nothing")
	m.detectErrors = m.counter("detect_errors_total", "Landmark detector calls that failed")
	m.handsSeen = m.counter("hand_ticks_total", "Ticks on which at least one hand was detected")
	m.tickLatency = m.histogram("tick_duration_milliseconds", "Duration of a full tick in milliseconds")
	m.detectLatency = m.histogram("detect_duration_milliseconds", "Duration of a detector call in milliseconds")

	m.pinches = m.counter("pinches_total", "Pinch gestures started")
	m.clicks = m.counter("clicks_total", "Cursor clicks injected")

	m.fruitsSpawned = m.counter("fruits_spawned_total", "Fruit thrown")
	m.fruitsSliced = m.counter("fruits_sliced_total", "Fruit sliced")
	m.fruitsMissed = m.counter("fruits_missed_total", "Fruit that fell uncut")
	m.score = m.gauge("score", "Current game score")
	m.lives = m.gauge("lives", "Lives left in the current game")
	m.phase = m.gauge("phase", "Game phase: 0 playing, 1 paused, 2 game over")
}

// Registry returns the registry the metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// RecordTick records a processed tick and its duration.
func (m *Manager) RecordTick(d time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickLatency.Observe(ms(d))
}

// RecordFrameSkipped records a tick dropped on a frame read failure.
func (m *Manager) RecordFrameSkipped() {
	if m == nil {
		return
	}
	m.framesSkipped.Inc()
}

// RecordDetect records one detector call.
func (m *Manager) RecordDetect(d time.Duration, hands int, err error) {
	if m == nil {
		return
	}
	m.detectLatency.Observe(ms(d))
	if err != nil {
		m.detectErrors.Inc()
		return
	}
	if hands > 0 {
		m.handsSeen.Inc()
	}
}

func (m *Manager) RecordPinch() {
	if m == nil {
		return
	}
	m.pinches.Inc()
}

func (m *Manager) RecordClick() {
	if m == nil {
		return
	}
	m.clicks.Inc()
}

// RecordFruits adds the fruit spawned, sliced and missed in one tick.
func (m *Manager) RecordFruits(spawned, sliced, missed int) {
	if m == nil {
		return
	}
	m.fruitsSpawned.Add(float64(spawned))
	m.fruitsSliced.Add(float64(sliced))
	m.fruitsMissed.Add(float64(missed))
}

// UpdateGame sets the game gauges.
func (m *Manager) UpdateGame(score, lives, phase int) {
	if m == nil {
		return
	}
	m.score.Set(float64(score))
	m.lives.Set(float64(lives))
	m.phase.Set(float64(phase))
}
