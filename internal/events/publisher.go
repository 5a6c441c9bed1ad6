package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// ======================================================
// KAFKA
// ======================================================

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(SplitBrokers(brokers)...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// chave por salão mantém a ordem dos eventos de um mesmo salão
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.SalonID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.ID)},
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// ======================================================
// LOG ONLY (sem broker configurado)
// ======================================================

type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, ev Event) error {
	p.logger.Info("domain event",
		zap.String("event_id", ev.ID),
		zap.String("event_type", ev.Type),
		zap.Uint("salon_id", ev.SalonID),
		zap.Uint("appointment_id", ev.AppointmentID),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

// NewPublisher escolhe kafka quando há brokers.
func NewPublisher(brokers, topic string, logger *zap.Logger) Publisher {
	if len(SplitBrokers(brokers)) == 0 {
		logger.Warn("event publisher running in log-only mode (no kafka brokers configured)")
		return NewLogPublisher(logger)
	}
	return NewKafkaPublisher(brokers, topic)
}

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
