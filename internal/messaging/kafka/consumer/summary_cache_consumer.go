package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-truck-business/internal/events"
	"go-truck-business/internal/shared/workdate"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const SummaryCacheGroupID = "go-truck-business-summary-cache"

const (
	minFetchBackoff = 200 * time.Millisecond
	maxFetchBackoff = 10 * time.Second
)

// nextFetchBackoff doubles the wait after each failed fetch, capped at max.
func nextFetchBackoff(prev time.Duration) time.Duration {
	if prev < minFetchBackoff {
		return minFetchBackoff
	}
	if next := prev * 2; next < maxFetchBackoff {
		return next
	}
	return maxFetchBackoff
}

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// GridInvalidator drops cached month grids. *daystatus.MonthCache satisfies it.
type GridInvalidator interface {
	Invalidate(ctx context.Context, days ...time.Time)
	InvalidateAll(ctx context.Context)
}

// ConsumeSummaryInvalidation keeps every API instance's month grids fresh.
// A day-status change drops the grid of its month; any roster change drops
// them all.
func ConsumeSummaryInvalidation(
	ctx context.Context,
	reader MessageReader,
	cache GridInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.summary_cache")
	log.Info("summary cache consumer started")

	var backoff time.Duration
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("summary cache consumer stopped")
				return
			}
			backoff = nextFetchBackoff(backoff)
			log.Error("fetch message failed", zap.Duration("retry_in", backoff), zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("summary cache consumer stopped")
				return
			case <-time.After(backoff):
			}
			continue
		}
		backoff = 0

		if err := handleMessage(ctx, msg, cache); err != nil {
			// undecodable messages are committed so they do not block the partition
			log.Warn("skipping message",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.String("topic", msg.Topic), zap.Error(err))
		}
	}
}

func handleMessage(ctx context.Context, msg kafkago.Message, cache GridInvalidator) error {
	switch msg.Topic {
	case events.DayStatusChangedTopic:
		var event events.DayStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("decode day status event: %w", err)
		}
		day, err := workdate.Parse(event.WorkDate)
		if err != nil {
			return fmt.Errorf("day status event work_date %q: %w", event.WorkDate, err)
		}
		cache.Invalidate(ctx, day)
		return nil

	case events.EmployeeChangedTopic:
		var event events.EmployeeChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("decode employee event: %w", err)
		}
		cache.InvalidateAll(ctx)
		return nil

	default:
		return fmt.Errorf("unexpected topic %q", msg.Topic)
	}
}
