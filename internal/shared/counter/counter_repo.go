package counter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-truck-business/internal/shared/connection"

	"gorm.io/gorm"
)

const (
	TypeEmployee   = "EMPLOYEE"
	TypeAttendance = "ATTENDANCE"
)

// Counter backs the human readable ids (EMP001, ATT001).
type Counter struct {
	CounterType string    `gorm:"primaryKey;type:varchar(32)"`
	LastValue   int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Counter) TableName() string {
	return "id_counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// GetNextValue increments atomically; concurrent callers never share a value.
func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	err := connection.GormTx(ctx, r.db, r.tx).Raw(`
		INSERT INTO id_counters (counter_type, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = id_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error
	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// FormatCode renders EMP001 style codes; values past 999 simply grow wider.
func FormatCode(prefix string, value int64) string {
	return fmt.Sprintf("%s%03d", prefix, value)
}
