package employee

import (
	"time"

	"gorm.io/gorm"
)

// Employee is keyed by a human readable code (EMP001).
type Employee struct {
	ID               string  `gorm:"type:varchar(20);primaryKey"`
	Name             string  `gorm:"type:varchar(150);not null"`
	Position         string  `gorm:"type:varchar(100);not null"`
	Phone            string  `gorm:"type:varchar(30);not null"`
	ProfileImagePath *string `gorm:"type:varchar(255)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}

func (Employee) TableName() string {
	return "employees"
}
