package income

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=income_repo.go -destination=mock/income_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, in *Income) error
	Update(ctx context.Context, in *Income) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Income, error)
	FindAll(ctx context.Context) ([]Income, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]Income, error)
	YearTotals(ctx context.Context) ([]YearTotal, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, in *Income) error {
	return r.db.WithContext(ctx).Create(in).Error
}

func (r *repository) Update(ctx context.Context, in *Income) error {
	return r.db.WithContext(ctx).Save(in).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Income{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Income, error) {
	var in Income
	if err := r.db.WithContext(ctx).First(&in, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Income, error) {
	var rows []Income
	err := r.db.WithContext(ctx).Order("income_date DESC, id DESC").Find(&rows).Error
	return rows, err
}

// FindBetween returns incomes in [from, to).
func (r *repository) FindBetween(ctx context.Context, from, to time.Time) ([]Income, error) {
	var rows []Income
	err := r.db.WithContext(ctx).
		Where("income_date >= ? AND income_date < ?", from, to).
		Order("income_date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) YearTotals(ctx context.Context) ([]YearTotal, error) {
	var rows []YearTotal
	err := r.db.WithContext(ctx).
		Model(&Income{}).
		Select("CAST(EXTRACT(YEAR FROM income_date) AS INTEGER) AS year, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("1").
		Order("1 DESC").
		Scan(&rows).Error
	return rows, err
}
