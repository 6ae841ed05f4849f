package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP метрики
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Метрики работы с БД
	DBQueryDuration *prometheus.HistogramVec
	DBErrorsTotal   *prometheus.CounterVec

	// Метрики connection pool
	DBPoolOpenConnections *prometheus.GaugeVec
	DBPoolInUse           *prometheus.GaugeVec
	DBPoolIdle            *prometheus.GaugeVec
	DBPoolWaitCount       *prometheus.GaugeVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),

		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "operation"},
		),
		DBErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"service", "operation"},
		),

		DBPoolOpenConnections: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_open_connections",
				Help: "Number of established connections in the pool",
			},
			[]string{"service"},
		),
		DBPoolInUse: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_in_use_connections",
				Help: "Number of connections currently in use",
			},
			[]string{"service"},
		),
		DBPoolIdle: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_idle_connections",
				Help: "Number of idle connections in the pool",
			},
			[]string{"service"},
		),
		DBPoolWaitCount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_wait_count_total",
				Help: "Total number of connections waited for",
			},
			[]string{"service"},
		),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
	if err != nil {
		m.DBErrorsTotal.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetPoolStats записывает состояние connection pool
func (m *Metrics) SetPoolStats(open, inUse, idle int, waitCount int64) {
	m.DBPoolOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.DBPoolInUse.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.DBPoolIdle.WithLabelValues(m.serviceName).Set(float64(idle))
	m.DBPoolWaitCount.WithLabelValues(m.serviceName).Set(float64(waitCount))
}
