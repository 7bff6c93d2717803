package daystatus

type UpsertDayStatusRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Date       string `json:"date"`
	Status     string `json:"status" binding:"required"`
}

type RecomputeRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Date       string `json:"date" binding:"required"`
}

type DayStatusResponse struct {
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"`
	Status     string `json:"status"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}
