package attendance

type CreateAttendanceRequest struct {
	EmployeeID string  `json:"employeeId" binding:"required"`
	WorkDate   string  `json:"workDate" binding:"required"`
	CheckIn    string  `json:"checkIn" binding:"required"`
	CheckOut   *string `json:"checkOut"`
	Status     string  `json:"status" binding:"required"`
}

// CheckInRequest defaults CheckIn to the server clock.
type CheckInRequest struct {
	EmployeeID string  `json:"employeeId" binding:"required"`
	CheckIn    *string `json:"checkIn"`
}

// CheckOutRequest defaults WorkDate to today and CheckOut to now.
type CheckOutRequest struct {
	EmployeeID string  `json:"employeeId" binding:"required"`
	WorkDate   string  `json:"workDate"`
	CheckOut   *string `json:"checkOut"`
}

// UpdateAttendanceRequest is partial. A CheckOut of "" clears the check-out.
type UpdateAttendanceRequest struct {
	EmployeeID *string `json:"employeeId"`
	WorkDate   *string `json:"workDate"`
	CheckIn    *string `json:"checkIn"`
	CheckOut   *string `json:"checkOut"`
	Status     *string `json:"status"`
}

type ListFilter struct {
	EmployeeID string
	Year       int
	Month      int
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	WorkDate   string  `json:"workDate"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   *string `json:"checkOut"`
	Status     string  `json:"status"`
}

type YearResponse struct {
	Year        int `json:"year"`
	MonthsCount int `json:"monthsCount"`
}

type HeadStats struct {
	People     int `json:"people"`
	OnTimePct  int `json:"ontimePct"`
	LatePct    int `json:"latePct"`
	AbsentPct  int `json:"absentPct"`
	OnTimeDays int `json:"ontimeDays"`
	LateDays   int `json:"lateDays"`
	AbsentDays int `json:"absentDays"`
}

type GridRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	CheckIn      string `json:"check_in,omitempty"`
	CheckOut     string `json:"check_out,omitempty"`
	Status       string `json:"status"`
	Note         string `json:"note"`
}

type GridDay struct {
	Date string    `json:"date"`
	Rows []GridRow `json:"rows"`
}

type MonthGrid struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Source    string    `json:"source"`
	HeadStats HeadStats `json:"headStats"`
	Days      []GridDay `json:"days"`
}

type HistoryEmployee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type HistoryDay struct {
	Day    int    `json:"day"`
	Status string `json:"status"`
	TimeIn string `json:"timeIn,omitempty"`
	Note   string `json:"note,omitempty"`
}

type EmployeeHistory struct {
	Employee HistoryEmployee `json:"employee"`
	Days     []HistoryDay    `json:"days"`
}
