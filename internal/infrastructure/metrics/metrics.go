// Package metrics expone contadores Prometheus del ledger, alertas, notificaciones, reportes y HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// DefaultPrefix prefijo de nombre de métricas.
const DefaultPrefix = "inventorypro"

// Metrics registro propio (no el global) para que los tests creen instancias aisladas.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	ledgerOperations    *prometheus.CounterVec
	productStock        *prometheus.GaugeVec
	alertsRaised        *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	reportsGenerated    *prometheus.CounterVec
}

func New(prefix string) *Metrics {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		ledgerOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_ledger_operations_total",
			Help: "Total number of ledger operations by result",
		}, []string{"operation", "result"}),
		productStock: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "_product_stock",
			Help: "Current stock level for products",
		}, []string{"product_id", "product_name", "category"}),
		alertsRaised: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_alerts_raised_total",
			Help: "Total number of stock alerts raised",
		}, []string{"type", "severity"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_notifications_total",
			Help: "Total number of notification deliveries by channel and result",
		}, []string{"channel", "result"}),
		reportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_reports_generated_total",
			Help: "Total number of generated reports",
		}, []string{"kind", "result"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordLedgerOperation(operation, result string) {
	m.ledgerOperations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) SetProductStock(p *entity.Product) {
	m.productStock.WithLabelValues(p.ID, p.Name, p.Category).Set(float64(p.CurrentStock))
}

func (m *Metrics) RecordAlertRaised(alertType, severity string) {
	m.alertsRaised.WithLabelValues(alertType, severity).Inc()
}

func (m *Metrics) RecordNotification(channel, result string) {
	m.notifications.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) RecordReportGenerated(kind, result string) {
	m.reportsGenerated.WithLabelValues(kind, result).Inc()
}
