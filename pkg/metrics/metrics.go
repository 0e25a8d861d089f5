package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
// Каждый экземпляр держит собственный registry, поэтому его можно создавать в тестах многократно
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec
	DBOpenConns      prometheus.Gauge
	DBInUseConns     prometheus.Gauge
	DBIdleConns      prometheus.Gauge
	DBWaitCount      prometheus.Gauge
	DBWaitDurationMs prometheus.Gauge

	OrdersCreated          prometheus.Counter
	OrderTransitions       *prometheus.CounterVec
	PaymentsReconciled     prometheus.Counter
	WithdrawalsRequested   prometheus.Counter
	NotificationsDelivered *prometheus.CounterVec
	NotificationsDropped   *prometheus.CounterVec
}

// New создает и регистрирует метрики с константной меткой service
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections", Help: "Open connections", ConstLabels: labels,
		}),
		DBInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections", Help: "Connections in use", ConstLabels: labels,
		}),
		DBIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections", Help: "Idle connections", ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count", Help: "Total connections waited for", ConstLabels: labels,
		}),
		DBWaitDurationMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_duration_ms", Help: "Total time blocked waiting for a connection", ConstLabels: labels,
		}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total", Help: "Orders created", ConstLabels: labels,
		}),
		OrderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_transitions_total", Help: "Order status transitions", ConstLabels: labels,
		}, []string{"status"}),
		PaymentsReconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payments_reconciled_total", Help: "Payment completions applied to the ledger", ConstLabels: labels,
		}),
		WithdrawalsRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "withdrawals_requested_total", Help: "Withdrawals requested", ConstLabels: labels,
		}),
		NotificationsDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_delivered_total", Help: "Notifications delivered per channel", ConstLabels: labels,
		}, []string{"channel"}),
		NotificationsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_dropped_total", Help: "Notifications dropped", ConstLabels: labels,
		}, []string{"reason"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBIdleConns,
		m.DBWaitCount,
		m.DBWaitDurationMs,
		m.OrdersCreated,
		m.OrderTransitions,
		m.PaymentsReconciled,
		m.WithdrawalsRequested,
		m.NotificationsDelivered,
		m.NotificationsDropped,
	)

	return m
}

// Handler HTTP handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP записывает метрики одного HTTP запроса
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveQuery записывает метрики одного запроса к БД
func (m *Metrics) ObserveQuery(operation string, elapsed time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// Методы доменных счётчиков допускают nil-получатель: при выключенных метриках
// в usecase передаётся (*Metrics)(nil)

// OrderCreated учитывает созданный заказ
func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.OrdersCreated.Inc()
}

// OrderTransition учитывает смену статуса заказа
func (m *Metrics) OrderTransition(status string) {
	if m == nil {
		return
	}
	m.OrderTransitions.WithLabelValues(status).Inc()
}

// PaymentReconciled учитывает сверенный платёж
func (m *Metrics) PaymentReconciled() {
	if m == nil {
		return
	}
	m.PaymentsReconciled.Inc()
}

// WithdrawalRequested учитывает запрос на выплату
func (m *Metrics) WithdrawalRequested() {
	if m == nil {
		return
	}
	m.WithdrawalsRequested.Inc()
}

// NotificationDelivered учитывает доставку уведомления каналом
func (m *Metrics) NotificationDelivered(channel string) {
	if m == nil {
		return
	}
	m.NotificationsDelivered.WithLabelValues(channel).Inc()
}

// NotificationDropped учитывает потерянное уведомление
func (m *Metrics) NotificationDropped(reason string) {
	if m == nil {
		return
	}
	m.NotificationsDropped.WithLabelValues(reason).Inc()
}
