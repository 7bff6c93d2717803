package daystatus

import (
	"time"
)

type Status string

const (
	StatusNotCheckedIn Status = "NOT_CHECKED_IN"
	StatusWorking      Status = "WORKING"
	StatusOffDuty      Status = "OFF_DUTY"
	StatusOnLeave      Status = "ON_LEAVE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotCheckedIn, StatusWorking, StatusOffDuty, StatusOnLeave:
		return true
	default:
		return false
	}
}

// EmployeeDayStatus is derived data: it must always match what Derive
// returns for the attendance and leave rows of the same (employee, day).
type EmployeeDayStatus struct {
	EmployeeID string    `gorm:"type:varchar(20);primaryKey"`
	WorkDate   time.Time `gorm:"type:date;primaryKey;index:idx_day_status_work_date"`
	Status     Status    `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EmployeeDayStatus) TableName() string {
	return "employee_day_statuses"
}

// AttendanceSnapshot is the part of an attendance row the reconciler reads.
type AttendanceSnapshot struct {
	CheckIn  time.Time
	CheckOut *time.Time
}
