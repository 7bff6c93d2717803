package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueInvoiceNo = "uq_invoice_no"

var ErrDuplicateInvoiceNo = errors.New("duplicate invoice number")

//go:generate mockgen -source=invoice_repo.go -destination=mock/invoice_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Invoice, error)
	FindAll(ctx context.Context) ([]Invoice, error)
	FindIssuedBetween(ctx context.Context, from, to time.Time) ([]Invoice, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueInvoiceNo {
		return ErrDuplicateInvoiceNo
	}
	return err
}

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	return mapWriteError(r.db.WithContext(ctx).Create(inv).Error)
}

func (r *repository) Update(ctx context.Context, inv *Invoice) error {
	return mapWriteError(r.db.WithContext(ctx).Save(inv).Error)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Invoice{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Invoice, error) {
	var inv Invoice
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Invoice, error) {
	var rows []Invoice
	err := r.db.WithContext(ctx).Order("issue_date DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindIssuedBetween(ctx context.Context, from, to time.Time) ([]Invoice, error) {
	var rows []Invoice
	err := r.db.WithContext(ctx).
		Where("issue_date >= ? AND issue_date < ?", from, to).
		Order("issue_date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}
