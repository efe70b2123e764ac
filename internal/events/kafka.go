package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/IBM/sarama"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
)

type KafkaConfig struct {
	Brokers       []string
	ApprovedTopic string
	RejectedTopic string
	MaxRetries    int
}

// KafkaPublisher sends JSON events keyed by request id so every decision for a request lands on one partition.
type KafkaPublisher struct {
	producer      sarama.SyncProducer
	approvedTopic string
	rejectedTopic string
}

func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = cfg.MaxRetries

	producer, err := sarama.NewSyncProducer(cfg.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.Printf("[EVENTS] Kafka producer initialized for brokers %v", cfg.Brokers)
	return NewKafkaPublisherWithProducer(producer, cfg.ApprovedTopic, cfg.RejectedTopic), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, approvedTopic, rejectedTopic string) *KafkaPublisher {
	if approvedTopic == "" {
		approvedTopic = TopicApproved
	}
	if rejectedTopic == "" {
		rejectedTopic = TopicRejected
	}
	return &KafkaPublisher{
		producer:      producer,
		approvedTopic: approvedTopic,
		rejectedTopic: rejectedTopic,
	}
}

func (p *KafkaPublisher) PublishApproved(ctx context.Context, event models.TransactionApprovedEvent) error {
	return p.send(ctx, p.approvedTopic, event.RequestID, event)
}

func (p *KafkaPublisher) PublishRejected(ctx context.Context, event models.TransactionRejectedEvent) error {
	return p.send(ctx, p.rejectedTopic, event.RequestID, event)
}

func (p *KafkaPublisher) send(ctx context.Context, topic, key string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send %s event: %w", topic, err)
	}

	log.Printf("[EVENTS] Published %s requestId=%s partition=%d offset=%d", topic, key, partition, offset)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
