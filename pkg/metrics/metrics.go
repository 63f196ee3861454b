package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов к BFF
// Пример запроса PromQL: rate(http_requests_total{service="storefront"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Backend Метрики (внешний REST API каталога и отзывов)
// =============================================================================

// BackendRequestDuration - время запросов к внешнему backend
// Labels: operation (fetch_reviews, create_review, list_products, ...), outcome (ok, transport, status, decode)
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of requests to the storefront REST backend",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"operation", "outcome"},
)

// BackendErrors - ошибки обращения к backend
// На read-path ошибки проглатываются, поэтому это единственный способ их увидеть
var BackendErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "backend_errors_total",
		Help: "Total number of failed backend requests",
	},
	[]string{"operation", "kind"}, // kind: transport, status, decode
)

// BackendUp - результат последней проверки доступности backend (1/0)
var BackendUp = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "backend_up",
		Help: "Whether the last backend health probe succeeded",
	},
)

// =============================================================================
// Redis Метрики (хранилище сессий)
// =============================================================================

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики витрины
// =============================================================================

// SessionLogins - попытки входа и регистрации
var SessionLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_logins_total",
		Help: "Total number of login and registration attempts",
	},
	[]string{"kind", "status"}, // kind: login, register; status: success, failed
)

// SessionsRestored - восстановление сессий из хранилища
var SessionsRestored = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_sessions_restored_total",
		Help: "Total number of session restore attempts",
	},
	[]string{"status"}, // ok, missing, corrupted
)

// ReviewsSubmitted - отправленные отзывы по результату
var ReviewsSubmitted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_reviews_submitted_total",
		Help: "Total number of review submissions",
	},
	[]string{"status"}, // success, failed, busy
)

// ReviewsRating - распределение отправленных оценок
var ReviewsRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "storefront_reviews_rating",
		Help:    "Distribution of submitted review ratings",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// InvalidRatingsSkipped - оценки, отброшенные при агрегации (не число, вне шкалы)
var InvalidRatingsSkipped = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "storefront_invalid_ratings_skipped_total",
		Help: "Total number of review ratings excluded from aggregation",
	},
)

// MalformedReviewsSkipped - записи отзывов, которые не удалось разобрать
var MalformedReviewsSkipped = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "storefront_malformed_reviews_skipped_total",
		Help: "Total number of review records dropped because a field had the wrong type",
	},
)

// ProductMutations - изменения каталога
var ProductMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_product_mutations_total",
		Help: "Total number of product create/update/delete operations",
	},
	[]string{"operation", "status"},
)
