package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-truck-business/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingCache struct {
	days []time.Time
	all  int
}

func (c *recordingCache) Invalidate(_ context.Context, days ...time.Time) {
	c.days = append(c.days, days...)
}

func (c *recordingCache) InvalidateAll(context.Context) {
	c.all++
}

type scriptedReader struct {
	msgs      []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("day status change drops its month", func(t *testing.T) {
		cache := &recordingCache{}
		err := handleMessage(ctx, kafkago.Message{
			Topic: events.DayStatusChangedTopic,
			Value: []byte(`{"event_type":"day_status_changed","employee_id":"EMP001","work_date":"2025-02-14","status":"WORKING"}`),
		}, cache)

		assert.NoError(t, err)
		assert.Equal(t, []time.Time{time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)}, cache.days)
		assert.Zero(t, cache.all)
	})

	t.Run("employee change drops everything", func(t *testing.T) {
		cache := &recordingCache{}
		err := handleMessage(ctx, kafkago.Message{
			Topic: events.EmployeeChangedTopic,
			Value: []byte(`{"event_type":"employee_deleted","employee_id":"EMP002"}`),
		}, cache)

		assert.NoError(t, err)
		assert.Equal(t, 1, cache.all)
	})

	t.Run("bad payload", func(t *testing.T) {
		cache := &recordingCache{}
		err := handleMessage(ctx, kafkago.Message{Topic: events.DayStatusChangedTopic, Value: []byte(`not json`)}, cache)
		assert.Error(t, err)
		assert.Empty(t, cache.days)
	})

	t.Run("unknown topic", func(t *testing.T) {
		assert.Error(t, handleMessage(ctx, kafkago.Message{Topic: "other"}, &recordingCache{}))
	})
}

func TestConsumeSummaryInvalidation_CommitsEverything(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Topic: events.EmployeeChangedTopic, Value: []byte(`{"event_type":"employee_created","employee_id":"EMP003"}`)},
			{Topic: events.DayStatusChangedTopic, Value: []byte(`{bad`)},
		},
	}
	cache := &recordingCache{}

	ConsumeSummaryInvalidation(ctx, reader, cache, zap.NewNop())

	assert.Len(t, reader.committed, 2)
	assert.Equal(t, 1, cache.all)
	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
}

func TestNextFetchBackoff(t *testing.T) {
	assert.Equal(t, minFetchBackoff, nextFetchBackoff(0))
	assert.Equal(t, 400*time.Millisecond, nextFetchBackoff(minFetchBackoff))
	assert.Equal(t, maxFetchBackoff, nextFetchBackoff(8*time.Second))
	assert.Equal(t, maxFetchBackoff, nextFetchBackoff(maxFetchBackoff))
}

// failingReader fails every fetch and counts the attempts.
type failingReader struct {
	fetches int
}

func (r *failingReader) FetchMessage(context.Context) (kafkago.Message, error) {
	r.fetches++
	return kafkago.Message{}, errors.New("broker unreachable")
}

func (r *failingReader) CommitMessages(context.Context, ...kafkago.Message) error { return nil }

func TestConsumeSummaryInvalidation_BacksOffOnFetchError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	reader := &failingReader{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ConsumeSummaryInvalidation(ctx, reader, &recordingCache{}, zap.NewNop())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after context ended")
	}
	// 200ms then 400ms waits leave room for at most two fetches
	assert.LessOrEqual(t, reader.fetches, 2)
}
