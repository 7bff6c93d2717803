package leave

import "time"

// LeaveRequest is one approved day off. An employee holds at most one per
// leave_date.
type LeaveRequest struct {
	LeaveID    uint      `gorm:"column:leave_id;primaryKey;autoIncrement"`
	EmployeeID string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_employee_date,priority:1"`
	LeaveDate  time.Time `gorm:"type:date;not null;uniqueIndex:uq_leave_employee_date,priority:2;index:idx_leave_requests_leave_date"`
	LeaveType  string    `gorm:"type:varchar(50);not null"`
	Reason     *string   `gorm:"type:text"`
	ApprovedBy string    `gorm:"type:varchar(100);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveView is a leave row joined with the employee name for listings.
type LeaveView struct {
	LeaveRequest
	EmployeeName string `gorm:"column:employee_name"`
}
