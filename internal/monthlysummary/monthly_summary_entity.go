package monthlysummary

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeMonthlySummary is maintained by hand from the dashboard; nothing
// derives it from attendance.
type EmployeeMonthlySummary struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	EmployeeID string `gorm:"type:varchar(20);not null;uniqueIndex:uq_monthly_summary_employee_period,priority:1"`
	Year       int    `gorm:"not null;uniqueIndex:uq_monthly_summary_employee_period,priority:2;index:idx_monthly_summary_year_month"`
	Month      int    `gorm:"not null;uniqueIndex:uq_monthly_summary_employee_period,priority:3;index:idx_monthly_summary_year_month"`

	TotalTrips    int             `gorm:"not null;default:0"`
	TotalFuelCost decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalEarnings decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	PlannedDays int                 `gorm:"not null;default:0"`
	PresentDays int                 `gorm:"not null;default:0"`
	LateDays    int                 `gorm:"not null;default:0"`
	AbsentDays  int                 `gorm:"not null;default:0"`
	LeaveDays   int                 `gorm:"not null;default:0"`
	WorkHours   decimal.NullDecimal `gorm:"type:numeric(7,2)"`
	OnTimeRate  decimal.NullDecimal `gorm:"type:numeric(5,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmployeeMonthlySummary) TableName() string {
	return "employee_monthly_summaries"
}

// EmployeeInfo is the employee block embedded in every summary response.
type EmployeeInfo struct {
	ID               string  `gorm:"column:id" json:"id"`
	Name             string  `gorm:"column:name" json:"name"`
	Position         string  `gorm:"column:position" json:"position"`
	Phone            string  `gorm:"column:phone" json:"phone"`
	ProfileImagePath *string `gorm:"column:profile_image_path" json:"profile_image_path"`
}
