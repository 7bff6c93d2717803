package events

import "time"

const (
	DayStatusChangedTopic = "truck.attendance.day_status.changed.v1"
	DayStatusChangedType  = "day_status_changed"
)

// DayStatusChangedEvent is queued in the same transaction as the status upsert.
type DayStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	WorkDate   string    `json:"work_date"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
