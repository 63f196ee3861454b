package metrics

import (
	"time"
)

type RedisOperation string

const (
	RedisOpGet    RedisOperation = "get"
	RedisOpSet    RedisOperation = "set"
	RedisOpDel    RedisOperation = "del"
	RedisOpExpire RedisOperation = "expire"
)

type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

func (rt *RedisTimer) ObserveDuration() {
	RedisOperationDuration.WithLabelValues(rt.service, string(rt.operation)).Observe(time.Since(rt.start).Seconds())
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}

// BackendTimer замеряет один запрос к внешнему backend
type BackendTimer struct {
	operation string
	start     time.Time
}

func NewBackendTimer(operation string) *BackendTimer {
	return &BackendTimer{operation: operation, start: time.Now()}
}

func (bt *BackendTimer) Success() {
	BackendRequestDuration.WithLabelValues(bt.operation, "ok").Observe(time.Since(bt.start).Seconds())
}

// Fail фиксирует ошибку; kind - transport, status или decode
func (bt *BackendTimer) Fail(kind string) {
	BackendRequestDuration.WithLabelValues(bt.operation, kind).Observe(time.Since(bt.start).Seconds())
	BackendErrors.WithLabelValues(bt.operation, kind).Inc()
}
