// Package kafka carries schedule change events between writers and open
// boards. Events are keyed by vehicle name so per-vehicle ordering is
// preserved across partitions.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// envelope frames a change event with the month it belongs to, so consumers
// subscribed to a different month can skip it without inspecting the data.
type envelope struct {
	Month int                  `json:"month"`
	Year  int                  `json:"year"`
	Event schedule.ChangeEvent `json:"event"`
}

type Producer struct {
	sync  sarama.SyncProducer
	topic string
}

func NewProducer(brokers []string, topic string, cfg *sarama.Config) (*Producer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	sync, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{sync: sync, topic: topic}, nil
}

// Publish emits one change event. The month is taken from the event's raw
// data, which writers attach to every kind including removals.
func (p *Producer) Publish(ctx context.Context, ev schedule.ChangeEvent) error {
	env := envelope{Event: ev}
	if ev.Data != nil {
		env.Month = ev.Data.Month
		env.Year = ev.Data.Year
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("kafka: marshal change event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.VehicleName),
		Value: sarama.ByteEncoder(payload),
	}
	_, _, err = p.sync.SendMessage(msg)
	return err
}

func (p *Producer) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}
