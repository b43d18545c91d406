package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/nexus-scm/scm-platform/pkg/logger"
)

// Publisher wraps a synchronous Kafka producer for integration events
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishStockReserved publishes the outcome of a reserve-stock command
func (p *Publisher) PublishStockReserved(ctx context.Context, event StockReservedEvent) error {
	event.EventType = EventTypeStockReserved
	return p.publish(ctx, TopicStockEvents, EventTypeStockReserved,
		orderKey(event.OrderID), &event.EventID, &event.OccurredOn, event,
		attribute.String("order.id", event.OrderID.String()),
		attribute.Bool("reservation.success", event.Success),
		attribute.Int("reservation.items", len(event.ReservedItems)),
	)
}

// PublishStockReleased publishes the outcome of a release-stock command
func (p *Publisher) PublishStockReleased(ctx context.Context, event StockReleasedEvent) error {
	event.EventType = EventTypeStockReleased
	return p.publish(ctx, TopicStockEvents, EventTypeStockReleased,
		orderKey(event.OrderID), &event.EventID, &event.OccurredOn, event,
		attribute.String("order.id", event.OrderID.String()),
		attribute.Int("release.items", len(event.ReleasedItems)),
	)
}

// PublishStockUpdated publishes a completed stock adjustment
func (p *Publisher) PublishStockUpdated(ctx context.Context, event StockUpdatedEvent) error {
	event.EventType = EventTypeStockUpdated
	return p.publish(ctx, TopicStockEvents, EventTypeStockUpdated,
		productKey(event.ProductID), &event.EventID, &event.OccurredOn, event,
		attribute.String("product.id", event.ProductID.String()),
		attribute.Int("stock.old", event.OldQuantity),
		attribute.Int("stock.new", event.NewQuantity),
	)
}

// PublishProductCreated publishes a product creation announcement
func (p *Publisher) PublishProductCreated(ctx context.Context, event ProductCreatedEvent) error {
	event.EventType = EventTypeProductCreated
	return p.publish(ctx, TopicProductEvents, EventTypeProductCreated,
		productKey(event.ProductID), &event.EventID, &event.OccurredOn, event,
		attribute.String("product.id", event.ProductID.String()),
		attribute.String("product.sku", event.SKU),
	)
}

// publish marshals the event, injects trace context into message headers
// and sends it through the sync producer.
func (p *Publisher) publish(
	ctx context.Context,
	topic, eventType, key string,
	eventID *string,
	occurredOn *time.Time,
	event interface{},
	attrs ...attribute.KeyValue,
) error {
	tracer := otel.Tracer("kafka-publisher")
	spanAttrs := append([]attribute.KeyValue{
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination", topic),
		attribute.String("messaging.destination_kind", "topic"),
		attribute.String("event.type", eventType),
	}, attrs...)

	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(spanAttrs...),
	)
	defer span.End()

	if *eventID == "" {
		*eventID = uuid.NewString()
	}
	if occurredOn.IsZero() {
		*occurredOn = time.Now().UTC()
	}
	span.SetAttributes(attribute.String("event.id", *eventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(*eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Str("event_type", eventType).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Logger.Info().
		Str("event_id", *eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

func productKey(id uuid.UUID) string {
	return "product_" + id.String()
}

func orderKey(id uuid.UUID) string {
	return "order_" + id.String()
}
