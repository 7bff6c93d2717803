package monthlysummary

import "github.com/shopspring/decimal"

type CreateSummaryRequest struct {
	EmployeeID    string              `json:"employee_id" binding:"required"`
	Year          int                 `json:"year" binding:"required,min=1,max=9999"`
	Month         int                 `json:"month" binding:"required,min=1,max=12"`
	TotalTrips    int                 `json:"total_trips"`
	TotalFuelCost decimal.Decimal     `json:"total_fuel_cost"`
	TotalEarnings decimal.Decimal     `json:"total_earnings"`
	PlannedDays   int                 `json:"planned_days"`
	PresentDays   int                 `json:"present_days"`
	LateDays      int                 `json:"late_days"`
	AbsentDays    int                 `json:"absent_days"`
	LeaveDays     int                 `json:"leave_days"`
	WorkHours     decimal.NullDecimal `json:"work_hours"`
	OnTimeRate    decimal.NullDecimal `json:"on_time_rate"`
}

// OptionalDecimal tells an omitted field apart from an explicit null.
type OptionalDecimal struct {
	Present bool
	Value   decimal.NullDecimal
}

func (o *OptionalDecimal) UnmarshalJSON(b []byte) error {
	o.Present = true
	return o.Value.UnmarshalJSON(b)
}

// UpdateSummaryRequest is partial. work_hours and on_time_rate accept an
// explicit null to clear them.
type UpdateSummaryRequest struct {
	EmployeeID    *string          `json:"employee_id"`
	Year          *int             `json:"year" binding:"omitempty,min=1,max=9999"`
	Month         *int             `json:"month" binding:"omitempty,min=1,max=12"`
	TotalTrips    *int             `json:"total_trips"`
	TotalFuelCost *decimal.Decimal `json:"total_fuel_cost"`
	TotalEarnings *decimal.Decimal `json:"total_earnings"`
	PlannedDays   *int             `json:"planned_days"`
	PresentDays   *int             `json:"present_days"`
	LateDays      *int             `json:"late_days"`
	AbsentDays    *int             `json:"absent_days"`
	LeaveDays     *int             `json:"leave_days"`
	WorkHours     OptionalDecimal  `json:"work_hours"`
	OnTimeRate    OptionalDecimal  `json:"on_time_rate"`
}

type ListFilter struct {
	EmployeeID string
	Year       int
	Month      int
}

type SummaryResponse struct {
	ID            uint                `json:"id"`
	EmployeeID    string              `json:"employee_id"`
	Year          int                 `json:"year"`
	Month         int                 `json:"month"`
	TotalTrips    int                 `json:"total_trips"`
	TotalFuelCost decimal.Decimal     `json:"total_fuel_cost"`
	TotalEarnings decimal.Decimal     `json:"total_earnings"`
	PlannedDays   int                 `json:"planned_days"`
	PresentDays   int                 `json:"present_days"`
	LateDays      int                 `json:"late_days"`
	AbsentDays    int                 `json:"absent_days"`
	LeaveDays     int                 `json:"leave_days"`
	WorkHours     decimal.NullDecimal `json:"work_hours"`
	OnTimeRate    decimal.NullDecimal `json:"on_time_rate"`
	Employee      *EmployeeInfo       `json:"employee"`
}
