package events

import "time"

const (
	EmployeeChangedTopic = "truck.employee.lifecycle.v1"

	EmployeeCreatedType = "employee_created"
	EmployeeUpdatedType = "employee_updated"
	EmployeeDeletedType = "employee_deleted"
)

type EmployeeChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
