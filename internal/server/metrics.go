package server

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vesaa/maderas/internal/site"
)

// Submission outcome labels.
const (
	outcomeStarted   = "started"
	outcomeRejected  = "rejected"
	outcomeBusy      = "busy"
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
)

// Metrics holds the site's Prometheus collectors.
type Metrics struct {
	registry    *prometheus.Registry
	pageViews   prometheus.Counter
	actions     *prometheus.CounterVec
	submissions *prometheus.CounterVec
}

// NewMetrics registers the site collectors plus the Go runtime and process
// collectors on a fresh registry.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pageViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "maderas",
			Name:      "page_views_total",
			Help:      "Rendered landing pages.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maderas",
			Name:      "actions_total",
			Help:      "Visitor actions by kind.",
		}, []string{"action"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maderas",
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{
		m.pageViews,
		m.actions,
		m.submissions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// TrackVisitors exports the number of mounted pages as a gauge.
func (m *Metrics) TrackVisitors(v *Visitors) error {
	return m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "maderas",
		Name:      "active_visitors",
		Help:      "Visitors with a mounted page.",
	}, func() float64 { return float64(v.Count()) }))
}

// ObservePage counts settled submissions on p. Only transitions into
// Succeeded or Failed are counted, not later edits while Failed.
func (m *Metrics) ObservePage(p *site.Page) {
	var (
		mu   sync.Mutex
		last = p.Contact.Status()
	)
	p.Contact.Subscribe(func(s site.ContactFormState) {
		mu.Lock()
		prev := last
		last = s.Status
		mu.Unlock()
		if prev == s.Status {
			return
		}
		switch s.Status {
		case site.StatusSucceeded:
			m.submissions.WithLabelValues(outcomeSucceeded).Inc()
		case site.StatusFailed:
			m.submissions.WithLabelValues(outcomeFailed).Inc()
		}
	})
}

func (m *Metrics) pageView() { m.pageViews.Inc() }
func (m *Metrics) action(name string) { m.actions.WithLabelValues(name).Inc() }
func (m *Metrics) submission(o string) { m.submissions.WithLabelValues(o).Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
