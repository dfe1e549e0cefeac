package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/utafrali/CatalogGo/internal/domain"
	pkgkafka "github.com/utafrali/CatalogGo/pkg/kafka"
)

// Kafka topic constants for catalog domain events.
const (
	TopicProductCreated = "catalog.product.created"
	TopicProductUpdated = "catalog.product.updated"
)

// Aggregate type constant.
const AggregateTypeProduct = "product"

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// ProductEventData is the payload for product created and updated events.
// It carries the indexed document shape so consumers see the same view of a
// product that the search index does.
type ProductEventData struct {
	ID       int64          `json:"id"`
	Document map[string]any `json:"document"`
}

// Producer publishes catalog domain events to Kafka. A nil Producer is valid
// and publishes nothing, so event delivery can be disabled by configuration.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductCreated publishes a catalog.product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductCreated, product)
}

// PublishProductUpdated publishes a catalog.product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductUpdated, product)
}

func (p *Producer) publish(ctx context.Context, topic string, product *domain.Product) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	doc := domain.DocumentFromProduct(product)
	data := ProductEventData{
		ID:       product.ID,
		Document: doc.Source(),
	}

	aggregateID := strconv.FormatInt(product.ID, 10)

	event, err := pkgkafka.NewEvent(topic, aggregateID, AggregateTypeProduct, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published product event",
		slog.String("topic", topic),
		slog.Int64("product_id", product.ID),
	)

	return nil
}
