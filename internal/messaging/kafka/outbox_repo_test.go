package kafka

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := NewOutboxEvent("employee_day_status", "EMP001", "day_status_changed", "topic.v1", "req-1", map[string]string{"status": "WORKING"})
	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"status":"WORKING"}`, string(event.Payload))
	assert.NoError(t, ValidateOutboxEvent(event))
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.EqualError(t, ValidateOutboxEvent(OutboxEvent{}), "outbox id is required")
	assert.EqualError(t, ValidateOutboxEvent(OutboxEvent{ID: "1"}), "outbox topic is required")
	assert.EqualError(t, ValidateOutboxEvent(OutboxEvent{ID: "1", Topic: "t"}), "outbox payload is required")
	assert.Error(t, ValidateOutboxEvent(OutboxEvent{ID: "1", Topic: "t", Payload: []byte("{}"), Status: "done"}))
}

func TestOutboxRepository_CreateUsesTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	event, err := NewOutboxEvent("employee", "EMP001", "employee_created", "topic.v1", "", map[string]string{"id": "EMP001"})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID, "", "employee", "EMP001", "employee_created", "topic.v1", event.Payload, OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)
	assert.NoError(t, NewOutboxRepository(db).WithTx(tx).Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM outbox_events").
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
		}).AddRow("o-1", "req-1", "employee_day_status", "EMP001", "day_status_changed", "topic.v1", []byte(`{}`), OutboxStatusPending, 0, now))

	events, err := NewOutboxRepository(db).ListPending(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "EMP001", events[0].AggregateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("o-1", OutboxStatusFailed, "broker unavailable", MaxOutboxAttempts, OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewOutboxRepository(db).MarkFailed(context.Background(), "o-1", "broker unavailable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_PurgeSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM outbox_events").
		WithArgs(OutboxStatusSent, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := NewOutboxRepository(db).PurgeSent(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
