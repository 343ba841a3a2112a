package kafka

import (
	"context"
	"encoding/json"
	"time"

	"log-triage-backend/config"
	"log-triage-backend/internal/model"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

// AnalysisEventProducer publishes finished analyses for downstream consumers.
type AnalysisEventProducer interface {
	Publish(ctx context.Context, event model.AnalysisEvent) error
	Close() error
}

// MessageWriter is the subset of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaAnalysisEventProducer struct {
	writer MessageWriter
	topic  string
}

type noopAnalysisEventProducer struct{}

func NewKafkaAnalysisEventProducer(lc fx.Lifecycle, cfg *config.Config) (AnalysisEventProducer, error) {
	if !cfg.Kafka.Enabled() {
		log.Info().Msg("Kafka brokers not configured, analysis events disabled")
		return noopAnalysisEventProducer{}, nil
	}

	probeBrokers(cfg.Kafka.Brokers)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.AnalysisTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: cfg.Kafka.BatchTimeout,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error().Err(err).Int("message_count", len(messages)).Msg("Async delivery of analysis events failed")
			}
		},
	}
	p := NewAnalysisEventProducer(writer, cfg.Kafka.AnalysisTopic)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing Kafka analysis event producer")
			return p.Close()
		},
	})
	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.AnalysisTopic).Msg("Kafka analysis event producer initialized")
	return p, nil
}

func NewAnalysisEventProducer(writer MessageWriter, topic string) AnalysisEventProducer {
	return &kafkaAnalysisEventProducer{writer: writer, topic: topic}
}

func NewNoopAnalysisEventProducer() AnalysisEventProducer {
	return noopAnalysisEventProducer{}
}

func (p *kafkaAnalysisEventProducer) Publish(ctx context.Context, event model.AnalysisEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("source", event.Source).Msg("Failed to marshal analysis event for Kafka")
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Source),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Error().Err(err).Str("topic", p.topic).Msg("Failed to write analysis event to Kafka")
		return err
	}

	log.Debug().Str("topic", p.topic).Str("source", event.Source).Msg("Produced analysis event to Kafka")
	return nil
}

func (p *kafkaAnalysisEventProducer) Close() error {
	return p.writer.Close()
}

func (noopAnalysisEventProducer) Publish(context.Context, model.AnalysisEvent) error { return nil }

func (noopAnalysisEventProducer) Close() error { return nil }

// probeBrokers dials the first broker with retries. A broker that stays down is
// logged, not fatal: analysis does not depend on event delivery.
func probeBrokers(brokers []string) {
	operation := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
		if err != nil {
			log.Warn().Err(err).Str("broker", brokers[0]).Msg("Attempt failed: Kafka broker not reachable")
			return err
		}
		return conn.Close()
	}

	probeBackoff := backoff.NewExponentialBackOff()
	probeBackoff.InitialInterval = 1 * time.Second
	probeBackoff.MaxInterval = 5 * time.Second
	probeBackoff.MaxElapsedTime = 15 * time.Second

	if err := backoff.Retry(operation, probeBackoff); err != nil {
		log.Error().Err(err).Strs("brokers", brokers).Msg("Kafka brokers unreachable, events will be retried by the writer")
		return
	}
	log.Info().Strs("brokers", brokers).Msg("Kafka broker connection verified")
}
