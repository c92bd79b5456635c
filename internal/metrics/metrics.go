// Package metrics agrupa os collectors Prometheus do serviço.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paragon-site/internal/lead"
	"paragon-site/internal/webhook"
)

const DefaultNamespace = "paragon"

// Metrics implementa lead.Observer e webhook.Observer.
type Metrics struct {
	reg *prometheus.Registry

	leads          *prometheus.CounterVec
	webhookResults *prometheus.CounterVec
	webhookLatency prometheus.Histogram
	httpDuration   *prometheus.HistogramVec
}

// New cria um registry próprio com os collectors do processo e do runtime.
func New(namespace string) (*Metrics, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		leads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead submissions by outcome.",
		}, []string{"outcome"}),
		webhookResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "deliveries_total",
			Help:      "Webhook deliveries by result.",
		}, []string{"result"}),
		webhookLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "delivery_duration_seconds",
			Help:      "Webhook delivery duration.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.leads,
		m.webhookResults,
		m.webhookLatency,
		m.httpDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Registerer permite que outros pacotes registrem collectors no mesmo registry.
func (m *Metrics) Registerer() prometheus.Registerer { return m.reg }

func (m *Metrics) Gatherer() prometheus.Gatherer { return m.reg }

func (m *Metrics) ObserveLead(o lead.Outcome) {
	m.leads.WithLabelValues(string(o)).Inc()
}

func (m *Metrics) ObserveWebhook(r webhook.Result, d time.Duration) {
	m.webhookResults.WithLabelValues(string(r)).Inc()
	m.webhookLatency.Observe(d.Seconds())
}

// ObserveHTTP registra a duração de um request. route deve ser o padrão do
// mux, nunca o path cru.
func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	m.httpDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler expõe o registry no formato de exposição do Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
