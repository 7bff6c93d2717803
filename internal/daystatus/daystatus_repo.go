package daystatus

import (
	"context"
	"database/sql"
	"time"

	"go-truck-business/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	HasLeave(ctx context.Context, employeeID string, date time.Time) (bool, error)
	FindAttendance(ctx context.Context, employeeID string, date time.Time) (*AttendanceSnapshot, error)
	FindOne(ctx context.Context, employeeID string, date time.Time) (*EmployeeDayStatus, error)
	FindByDate(ctx context.Context, date time.Time) ([]EmployeeDayStatus, error)
	Upsert(ctx context.Context, row *EmployeeDayStatus) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.GormTx(ctx, r.db, r.tx)
}

func (r *repository) HasLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("leave_requests").
		Where("employee_id = ?", employeeID).
		Where("leave_date = ?", date).
		Count(&count).Error
	return count > 0, err
}

// FindAttendance returns nil, nil when the employee has no attendance that day.
func (r *repository) FindAttendance(ctx context.Context, employeeID string, date time.Time) (*AttendanceSnapshot, error) {
	var rows []AttendanceSnapshot
	err := r.conn(ctx).
		Table("attendances").
		Select("check_in, check_out").
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *repository) FindOne(ctx context.Context, employeeID string, date time.Time) (*EmployeeDayStatus, error) {
	var row EmployeeDayStatus
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByDate(ctx context.Context, date time.Time) ([]EmployeeDayStatus, error) {
	var rows []EmployeeDayStatus
	err := r.conn(ctx).
		Where("work_date = ?", date).
		Order("employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Upsert(ctx context.Context, row *EmployeeDayStatus) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "work_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(row).Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
