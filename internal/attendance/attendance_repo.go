package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-truck-business/internal/daystatus"
	"go-truck-business/internal/shared/connection"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueEmployeeWorkDate = "uq_attendance_employee_work_date"

// ErrDuplicateEmployeeDate is returned when the unique index on
// (employee_id, work_date) rejects a write.
var ErrDuplicateEmployeeDate = errors.New("duplicate attendance for employee and work date")

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error)
	Years(ctx context.Context) ([]int, error)

	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error)
	ListEmployees(ctx context.Context) ([]EmployeeRef, error)

	// Month readers take [start, end) and an optional employee id ("" = everyone).
	ListAttendanceInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
	ListLeavesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveSnapshot, error)
	ListDayStatusesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]daystatus.EmployeeDayStatus, error)
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
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueEmployeeWorkDate {
		return ErrDuplicateEmployeeDate
	}
	return err
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return mapWriteError(r.conn(ctx).Create(a).Error)
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return mapWriteError(r.conn(ctx).Save(a).Error)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Where("id = ?", id).Delete(&Attendance{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	if err := r.conn(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	q := r.conn(ctx).Model(&Attendance{})
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Year > 0 {
		start := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		if filter.Month > 0 {
			start = time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(0, 1, 0)
		}
		q = q.Where("work_date >= ? AND work_date < ?", start, end)
	}

	var rows []Attendance
	err := q.Order("employee_id ASC, work_date DESC").Find(&rows).Error
	return rows, err
}

// Years lists the distinct years that have attendance or day status rows.
func (r *repository) Years(ctx context.Context) ([]int, error) {
	var years []int
	err := r.conn(ctx).Raw(`
		SELECT y FROM (
			SELECT DISTINCT EXTRACT(YEAR FROM work_date)::int AS y FROM attendances
			UNION
			SELECT DISTINCT EXTRACT(YEAR FROM work_date)::int AS y FROM employee_day_statuses
		) years
		ORDER BY y DESC
	`).Scan(&years).Error
	return years, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.employees(ctx).Where("id = ?", employeeID).Count(&count).Error
	return count > 0, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	var rows []EmployeeRef
	err := r.employees(ctx).
		Select("id, name").
		Where("id = ?", employeeID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) ListEmployees(ctx context.Context) ([]EmployeeRef, error) {
	var rows []EmployeeRef
	err := r.employees(ctx).Select("id, name").Order("id ASC").Scan(&rows).Error
	return rows, err
}

// employees scopes to employees that have not been soft deleted.
func (r *repository) employees(ctx context.Context) *gorm.DB {
	return r.conn(ctx).Table("employees").Where("deleted_at IS NULL")
}

func (r *repository) ListAttendanceInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error) {
	q := r.conn(ctx).Where("work_date >= ? AND work_date < ?", start, end)
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	var rows []Attendance
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) ListLeavesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveSnapshot, error) {
	q := r.conn(ctx).
		Table("leave_requests").
		Select("employee_id, leave_date, leave_type, reason").
		Where("leave_date >= ? AND leave_date < ?", start, end)
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	var rows []LeaveSnapshot
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) ListDayStatusesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]daystatus.EmployeeDayStatus, error) {
	q := r.conn(ctx).Where("work_date >= ? AND work_date < ?", start, end)
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	var rows []daystatus.EmployeeDayStatus
	err := q.Find(&rows).Error
	return rows, err
}
