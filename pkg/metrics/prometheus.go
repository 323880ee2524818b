package metrics

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"bank_ledger/internal/domain"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsCollector struct {
	registry           *prometheus.Registry
	transfersProcessed prometheus.Counter
	transfersFailed    *prometheus.CounterVec
	transferDuration   prometheus.Histogram
	accountBalance     *prometheus.GaugeVec
	mu                 sync.Mutex
	logger             *slog.Logger
}

// Sample is one gathered series flattened for printing.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

func NewMetricsCollector(logger *slog.Logger) *MetricsCollector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	return &MetricsCollector{
		registry: registry,
		transfersProcessed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transfers_processed_total",
			Help: "Total number of completed transfers",
		}),
		transfersFailed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "transfers_failed_total",
			Help: "Total number of failed transfers",
		}, []string{"reason"}),
		transferDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "transfer_processing_duration_seconds",
			Help:    "Time taken to process a transfer",
			Buckets: prometheus.DefBuckets,
		}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "account_balance",
			Help: "Current account balance",
		}, []string{"account_id", "owner"}),
		logger: logger,
	}
}

// RecordTransfer counts a transfer as completed when failureReason is empty.
func (m *MetricsCollector) RecordTransfer(duration time.Duration, failureReason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if failureReason == "" {
		m.transfersProcessed.Inc()
	} else {
		m.transfersFailed.WithLabelValues(failureReason).Inc()
	}

	m.transferDuration.Observe(duration.Seconds())
}

// UpdateAccountBalance publishes the balance as a float gauge; the gauge is
// for dashboards, never for arithmetic.
func (m *MetricsCollector) UpdateAccountBalance(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountBalance.WithLabelValues(account.ID().String(), account.Owner()).
		Set(account.Balance().InexactFloat64())
}

func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Samples gathers counters and gauges, sorted by name then labels.
// Histograms are reported as their sample count.
func (m *MetricsCollector) Samples() ([]Sample, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, errors.Wrap(err, "gather metrics")
	}

	var samples []Sample
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			pairs := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				pairs = append(pairs, label.GetName()+"="+label.GetValue())
			}

			sample := Sample{Name: family.GetName(), Labels: strings.Join(pairs, ",")}
			switch {
			case metric.GetCounter() != nil:
				sample.Value = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				sample.Value = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				sample.Value = float64(metric.GetHistogram().GetSampleCount())
			default:
				continue
			}
			samples = append(samples, sample)
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Labels < samples[j].Labels
	})

	m.logger.Debug("Metrics gathered", slog.Int("samples", len(samples)))
	return samples, nil
}
