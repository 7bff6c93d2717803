package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-truck-business/internal/config"
	"go-truck-business/internal/daystatus"
	"go-truck-business/internal/events"
	"go-truck-business/internal/messaging/kafka/consumer"
	"go-truck-business/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer drops cached month grids on day-status and roster events so
// every API instance serves fresh summaries.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, connectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	cache := daystatus.NewMonthCache(rdb, cfg.Attendance.SummaryCacheTTL, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		GroupID:        consumer.SummaryCacheGroupID,
		GroupTopics:    []string{events.DayStatusChangedTopic, events.EmployeeChangedTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.LastOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeSummaryInvalidation(ctx, reader, cache, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
