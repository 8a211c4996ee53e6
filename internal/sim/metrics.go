package sim

import (
	"time"

	"github.com/annel0/blockverse/internal/world/edit"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics инкапсулирует Prometheus-метрики одной симуляции
type Metrics struct {
	registry *prometheus.Registry

	ticks              prometheus.Counter
	edits              *prometheus.CounterVec
	blocks             prometheus.Gauge
	tickDuration       prometheus.Histogram
	generationDuration prometheus.Histogram
}

// NewMetrics создаёт метрики и регистрирует их в reg.
// Если reg == nil, создаётся отдельный реестр симуляции.
func NewMetrics(reg *prometheus.Registry, simID string) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	labels := prometheus.Labels{"sim": simID}

	m := &Metrics{
		registry: reg,
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "voxelsim",
			Name:        "ticks_total",
			Help:        "Общее число выполненных тиков.",
			ConstLabels: labels,
		}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "voxelsim",
			Name:        "block_edits_total",
			Help:        "Запросы на изменение блоков по типу действия и исходу.",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "voxelsim",
			Name:        "blocks",
			Help:        "Количество непустых блоков в хранилище.",
			ConstLabels: labels,
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "voxelsim",
			Name:        "tick_duration_seconds",
			Help:        "Длительность одного тика.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		generationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "voxelsim",
			Name:        "generation_duration_seconds",
			Help:        "Длительность генерации мира.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
	}

	reg.MustRegister(m.ticks, m.edits, m.blocks, m.tickDuration, m.generationDuration)
	return m
}

// Registry возвращает реестр, в котором зарегистрированы метрики
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeTick(d time.Duration, blocks int) {
	m.ticks.Inc()
	m.tickDuration.Observe(d.Seconds())
	m.blocks.Set(float64(blocks))
}

func (m *Metrics) observeEdit(res edit.Result) {
	m.edits.WithLabelValues(res.Kind.String(), string(res.Reason)).Inc()
}

func (m *Metrics) observeGeneration(d time.Duration, blocks int) {
	m.generationDuration.Observe(d.Seconds())
	m.blocks.Set(float64(blocks))
}
