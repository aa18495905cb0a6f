// Package kafka publica los eventos del ledger en un tópico Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// DefaultTopic tópico por defecto de eventos de inventario.
const DefaultTopic = "inventory-events"

// NewProducerConfig configuración del productor síncrono.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000
	return config
}

// Publisher envuelve un SyncProducer de sarama.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewPublisher conecta con los brokers.
func NewPublisher(brokers []string, topic string, log *logger.Logger) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("crear productor kafka: %w", err)
	}
	p := NewPublisherWithProducer(producer, topic, log)
	p.log.Info().Strs("brokers", brokers).Str("topic", p.topic).Msg("kafka publisher inicializado")
	return p, nil
}

// NewPublisherWithProducer usa un productor ya construido (tests con sarama/mocks).
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{producer: producer, topic: topic, log: log}
}

// Publish envía el evento como JSON con clave product_id.
func (p *Publisher) Publish(_ context.Context, event entity.LedgerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ProductID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).Str("topic", p.topic).Str("event_type", event.EventType).
			Str("product_id", event.ProductID).Msg("publicar evento")
		return fmt.Errorf("enviar evento a kafka: %w", err)
	}
	p.log.Debug().Str("event_id", event.EventID).Str("event_type", event.EventType).
		Int32("partition", partition).Int64("offset", offset).Msg("evento publicado")
	return nil
}

func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// LogPublisher registra los eventos en el log cuando no hay brokers configurados.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event entity.LedgerEvent) error {
	p.log.Info().Str("event_id", event.EventID).Str("event_type", event.EventType).
		Str("product_id", event.ProductID).Int("previous_stock", event.PreviousStock).
		Int("new_stock", event.NewStock).Str("actor", event.Actor).Msg("evento de inventario")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
