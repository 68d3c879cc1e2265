package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// Feed implements the board's change-event subscription on a Kafka topic.
// Each Subscribe call joins its own consumer group, so every open board
// sees the full event stream independently.
type Feed struct {
	Brokers     []string
	Topic       string
	GroupPrefix string
	Logger      *slog.Logger
}

// Subscribe consumes the change topic and forwards events for the given
// (month, year) to fn, in partition order, until cancel is called. Events
// for other months are skipped. Callbacks never overlap: sarama delivers
// claims sequentially per partition and batches are applied from the
// consume loop itself.
func (f *Feed) Subscribe(ctx context.Context, month, year int, fn func([]schedule.ChangeEvent)) (func(), error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest

	groupID := fmt.Sprintf("%s-%s", f.GroupPrefix, uuid.NewString())
	group, err := sarama.NewConsumerGroup(f.Brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: join consumer group: %w", err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	handler := feedHandler{month: month, year: year, fn: fn, logger: f.Logger}

	go func() {
		defer group.Close()
		for {
			if err := group.Consume(subCtx, []string{f.Topic}, handler); err != nil {
				if f.Logger != nil {
					f.Logger.Error("change feed consume failed", "error", err)
				}
				return
			}
			if subCtx.Err() != nil {
				return
			}
		}
	}()

	return cancel, nil
}

type feedHandler struct {
	month  int
	year   int
	fn     func([]schedule.ChangeEvent)
	logger *slog.Logger
}

func (h feedHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h feedHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h feedHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var env envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			if h.logger != nil {
				h.logger.Warn("skipping undecodable change event", "offset", msg.Offset, "error", err)
			}
			sess.MarkMessage(msg, "")
			continue
		}
		if env.Month == h.month && env.Year == h.year {
			h.fn([]schedule.ChangeEvent{env.Event})
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}
