package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-truck-business/internal/shared/connection"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueEmployeeLeaveDate = "uq_leave_employee_date"

// ErrDuplicateEmployeeDate is returned when uq_leave_employee_date rejects a write.
var ErrDuplicateEmployeeDate = errors.New("duplicate leave for employee and date")

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*LeaveRequest, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*LeaveRequest, error)
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveView, error)
	FindEmployeeName(ctx context.Context, employeeID string) (string, error)
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

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueEmployeeLeaveDate {
		return ErrDuplicateEmployeeDate
	}
	return err
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return mapWriteError(r.conn(ctx).Create(l).Error)
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return mapWriteError(r.conn(ctx).Save(l).Error)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.conn(ctx).Where("leave_id = ?", id).Delete(&LeaveRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.conn(ctx).Where("leave_id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_date = ?", date).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveView, error) {
	q := r.conn(ctx).
		Table("leave_requests AS l").
		Select("l.*, e.name AS employee_name").
		Joins("LEFT JOIN employees e ON e.id = l.employee_id AND e.deleted_at IS NULL")

	if filter.EmployeeID != "" {
		q = q.Where("l.employee_id = ?", filter.EmployeeID)
	}
	if filter.Year > 0 {
		start := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		if filter.Month > 0 {
			start = time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(0, 1, 0)
		}
		q = q.Where("l.leave_date >= ? AND l.leave_date < ?", start, end)
	}

	var rows []LeaveView
	err := q.Order("l.leave_date DESC, l.leave_id DESC").Scan(&rows).Error
	return rows, err
}

// FindEmployeeName returns gorm.ErrRecordNotFound when the employee is
// missing or soft deleted.
func (r *repository) FindEmployeeName(ctx context.Context, employeeID string) (string, error) {
	var names []string
	err := r.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Limit(1).
		Pluck("name", &names).Error
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return names[0], nil
}
