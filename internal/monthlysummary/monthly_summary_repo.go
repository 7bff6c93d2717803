package monthlysummary

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueEmployeePeriod = "uq_monthly_summary_employee_period"

// ErrDuplicatePeriod is returned when the (employee_id, year, month) index
// rejects a write.
var ErrDuplicatePeriod = errors.New("duplicate monthly summary for employee and period")

//go:generate mockgen -source=monthly_summary_repo.go -destination=mock/monthly_summary_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, s *EmployeeMonthlySummary) error
	Update(ctx context.Context, s *EmployeeMonthlySummary) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*EmployeeMonthlySummary, error)
	FindAll(ctx context.Context, filter ListFilter) ([]EmployeeMonthlySummary, error)
	FindEmployees(ctx context.Context, ids []string) ([]EmployeeInfo, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueEmployeePeriod {
		return ErrDuplicatePeriod
	}
	return err
}

func (r *repository) Create(ctx context.Context, s *EmployeeMonthlySummary) error {
	return mapWriteError(r.db.WithContext(ctx).Create(s).Error)
}

func (r *repository) Update(ctx context.Context, s *EmployeeMonthlySummary) error {
	return mapWriteError(r.db.WithContext(ctx).Save(s).Error)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&EmployeeMonthlySummary{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*EmployeeMonthlySummary, error) {
	var s EmployeeMonthlySummary
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindAll orders newest period first unless a year is pinned, in which case
// months run forward like the yearly report.
func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]EmployeeMonthlySummary, error) {
	q := r.db.WithContext(ctx).Model(&EmployeeMonthlySummary{})
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Year > 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Month > 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year > 0 && filter.Month == 0 {
		q = q.Order("month ASC, employee_id ASC")
	} else {
		q = q.Order("year DESC, month DESC, employee_id ASC")
	}

	var rows []EmployeeMonthlySummary
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) FindEmployees(ctx context.Context, ids []string) ([]EmployeeInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var employees []EmployeeInfo
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, name, position, phone, profile_image_path").
		Where("id IN ?", ids).
		Where("deleted_at IS NULL").
		Scan(&employees).Error
	return employees, err
}
