package messaging

import (
	"context"
	"testing"
	"time"

	"storefront/storefront-service/internal/app/storefront/infrastructure"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ infrastructure.MessagePublisher = (*KafkaProducer)(nil)
	_ infrastructure.MessagePublisher = NoopPublisher{}
)

func TestNewKafkaProducer(t *testing.T) {
	producer := NewKafkaProducer([]string{"k1:9092", "k2:9092"}, "storefront_events")
	defer producer.Close()

	require.NotNil(t, producer.writer)
	assert.Equal(t, "storefront_events", producer.topic)
	assert.Equal(t, "storefront_events", producer.writer.Topic)
	assert.IsType(t, &kafka.Hash{}, producer.writer.Balancer)
	assert.Equal(t, kafka.RequireOne, producer.writer.RequiredAcks)
}

func TestKafkaProducer_PublishMessage_BrokerUnavailable(t *testing.T) {
	producer := NewKafkaProducer([]string{"127.0.0.1:1"}, "storefront_events")
	defer producer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := producer.PublishMessage(ctx, "product-1", []byte(`{"event_type":"PRODUCT_SAVED"}`))

	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	var publisher NoopPublisher

	assert.NoError(t, publisher.PublishMessage(context.Background(), "k", []byte("v")))
	assert.NoError(t, publisher.Close())
}
