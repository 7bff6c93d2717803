package attendance

import (
	"time"
)

const (
	StatusOnTime = "ON_TIME"
	StatusLate   = "LATE"
)

// Attendance is one check-in per employee per work date. WorkDate is a DATE
// stored as UTC midnight; CheckIn and CheckOut are real instants.
type Attendance struct {
	ID         string     `gorm:"column:id;type:varchar(20);primaryKey"`
	EmployeeID string     `gorm:"column:employee_id;type:varchar(20);not null;uniqueIndex:uq_attendance_employee_work_date,priority:1"`
	WorkDate   time.Time  `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_attendance_employee_work_date,priority:2;index"`
	CheckIn    time.Time  `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut   *time.Time `gorm:"column:check_out;type:timestamptz"`
	Status     string     `gorm:"column:status;type:varchar(10);not null"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// EmployeeRef is the slice of the employees table the aggregator needs.
type EmployeeRef struct {
	ID   string `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

// LeaveSnapshot is the slice of a leave_requests row the aggregator needs.
type LeaveSnapshot struct {
	EmployeeID string    `gorm:"column:employee_id"`
	LeaveDate  time.Time `gorm:"column:leave_date"`
	LeaveType  string    `gorm:"column:leave_type"`
	Reason     *string   `gorm:"column:reason"`
}

// Note is what the dashboard shows next to a leave day.
func (l LeaveSnapshot) Note() string {
	if l.Reason != nil && *l.Reason != "" {
		return *l.Reason
	}
	return l.LeaveType
}
