package leave

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required"`
	LeaveDate  string  `json:"leave_date" binding:"required"`
	LeaveType  string  `json:"leave_type" binding:"required"`
	Reason     *string `json:"reason"`
	ApprovedBy string  `json:"approved_by" binding:"required"`
}

// UpdateLeaveRequest is partial: nil or blank fields keep their value,
// except reason which is replaced whenever present.
type UpdateLeaveRequest struct {
	EmployeeID *string `json:"employee_id"`
	LeaveDate  *string `json:"leave_date"`
	LeaveType  *string `json:"leave_type"`
	Reason     *string `json:"reason"`
	ApprovedBy *string `json:"approved_by"`
}

type ListFilter struct {
	EmployeeID string
	Year       int
	Month      int
}

type LeaveResponse struct {
	LeaveID      uint    `json:"leave_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	LeaveDate    string  `json:"leave_date"`
	LeaveType    string  `json:"leave_type"`
	Reason       *string `json:"reason"`
	ApprovedBy   string  `json:"approved_by"`
}
