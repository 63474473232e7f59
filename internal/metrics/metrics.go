package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "backfill"

// Window outcomes.
const (
	OutcomeLoaded = "loaded"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// Metrics holds the run collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	pagesFetched  prometheus.Counter
	ordersFetched prometheus.Counter
	rowsLoaded    prometheus.Counter
	windows       *prometheus.CounterVec
	rateWaiting   prometheus.Gauge
	rateWaits     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Order pages fetched from the upstream API.",
		}),
		ordersFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_fetched_total",
			Help:      "Orders fetched from the upstream API.",
		}),
		rowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Line-item rows inserted into the target table.",
		}),
		windows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_total",
			Help:      "Processed date windows by outcome.",
		}, []string{"outcome"}),
		rateWaiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rate_limit_waiting",
			Help:      "1 while the run is waiting for upstream credits.",
		}),
		rateWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_waits_total",
			Help:      "Sleeps spent waiting for upstream credits.",
		}),
	}
	m.registry.MustRegister(
		m.pagesFetched,
		m.ordersFetched,
		m.rowsLoaded,
		m.windows,
		m.rateWaiting,
		m.rateWaits,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObservePage(orders int) {
	if m == nil {
		return
	}
	m.pagesFetched.Inc()
	m.ordersFetched.Add(float64(orders))
}

func (m *Metrics) ObserveRows(n int64) {
	if m == nil {
		return
	}
	m.rowsLoaded.Add(float64(n))
}

func (m *Metrics) ObserveWindow(outcome string) {
	if m == nil {
		return
	}
	m.windows.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetRateWaiting(waiting bool) {
	if m == nil {
		return
	}
	if waiting {
		m.rateWaiting.Set(1)
		return
	}
	m.rateWaiting.Set(0)
}

func (m *Metrics) ObserveRateWait() {
	if m == nil {
		return
	}
	m.rateWaits.Inc()
}
