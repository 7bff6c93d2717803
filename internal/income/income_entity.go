package income

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	ID                uint            `gorm:"primaryKey;autoIncrement"`
	IncomeDate        time.Time       `gorm:"type:date;not null;index"`
	Description       string          `gorm:"type:text;not null"`
	Category          string          `gorm:"type:varchar(100);not null"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ContractImagePath *string         `gorm:"type:varchar(255)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Income) TableName() string {
	return "incomes"
}

// YearTotal is one row of the per-year rollup.
type YearTotal struct {
	Year  int             `gorm:"column:year" json:"year"`
	Total decimal.Decimal `gorm:"column:total" json:"total"`
	Count int             `gorm:"column:count" json:"count"`
}
