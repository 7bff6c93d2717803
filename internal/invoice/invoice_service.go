package invoice

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	invoiceerrors "go-truck-business/internal/invoice/errors"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/workdate"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=invoice_service.go -destination=mock/invoice_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	Update(ctx context.Context, id uint, req UpdateInvoiceRequest) (InvoiceResponse, error)
	Delete(ctx context.Context, id uint) error
	GetAll(ctx context.Context) ([]InvoiceResponse, error)
	GetByYear(ctx context.Context, year string) ([]InvoiceResponse, error)
	GetByID(ctx context.Context, id uint) (InvoiceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("invoice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.service")
	}
	return &service{repo: repo, logger: l}
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d, err := workdate.Parse(*s)
	if err != nil {
		return nil, invoiceerrors.ErrInvalidDate
	}
	return &d, nil
}

func validate(inv Invoice) error {
	if inv.Amount.IsNegative() || inv.PaidAmount.IsNegative() {
		return invoiceerrors.ErrInvalidAmount
	}
	if inv.PaidAmount.GreaterThan(inv.Amount) {
		return invoiceerrors.ErrOverpaid
	}
	if inv.DueDate != nil && inv.DueDate.Before(inv.IssueDate) {
		return invoiceerrors.ErrDueBeforeIssue
	}
	return nil
}

func mapWriteErr(err error) error {
	if errors.Is(err, ErrDuplicateInvoiceNo) {
		return invoiceerrors.ErrInvoiceNoExists
	}
	return err
}

func (s *service) Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	issue, err := workdate.Parse(req.IssueDate)
	if err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidDate
	}
	due, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return InvoiceResponse{}, err
	}

	inv := &Invoice{
		InvoiceNo:    strings.TrimSpace(req.InvoiceNo),
		CustomerName: strings.TrimSpace(req.CustomerName),
		IssueDate:    issue,
		DueDate:      due,
		Amount:       req.Amount,
		PaidAmount:   req.PaidAmount,
		Note:         req.Note,
	}
	if err := validate(*inv); err != nil {
		return InvoiceResponse{}, err
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		if !errors.Is(err, ErrDuplicateInvoiceNo) {
			log.Error("create invoice failed", zap.Error(err))
		}
		return InvoiceResponse{}, mapWriteErr(err)
	}

	log.Info("create invoice success",
		zap.Uint("invoice_id", inv.ID),
		zap.String("invoice_no", inv.InvoiceNo),
	)
	return mapToResponse(*inv), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateInvoiceRequest) (InvoiceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	inv, err := s.find(ctx, id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	if req.InvoiceNo != nil && strings.TrimSpace(*req.InvoiceNo) != "" {
		inv.InvoiceNo = strings.TrimSpace(*req.InvoiceNo)
	}
	if req.CustomerName != nil && strings.TrimSpace(*req.CustomerName) != "" {
		inv.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.IssueDate != nil {
		issue, err := workdate.Parse(*req.IssueDate)
		if err != nil {
			return InvoiceResponse{}, invoiceerrors.ErrInvalidDate
		}
		inv.IssueDate = issue
	}
	if req.DueDate != nil {
		due, err := parseOptionalDate(req.DueDate)
		if err != nil {
			return InvoiceResponse{}, err
		}
		inv.DueDate = due
	}
	if req.Amount != nil {
		inv.Amount = *req.Amount
	}
	if req.PaidAmount != nil {
		inv.PaidAmount = *req.PaidAmount
	}
	if req.Note != nil {
		inv.Note = req.Note
	}
	if err := validate(*inv); err != nil {
		return InvoiceResponse{}, err
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		if !errors.Is(err, ErrDuplicateInvoiceNo) {
			log.Error("update invoice failed", zap.Uint("invoice_id", id), zap.Error(err))
		}
		return InvoiceResponse{}, mapWriteErr(err)
	}

	log.Info("update invoice success", zap.Uint("invoice_id", id), zap.String("payment_status", string(inv.Status())))
	return mapToResponse(*inv), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoiceerrors.ErrInvoiceNotFound
		}
		return err
	}
	contextutil.GetLogger(ctx, s.logger).Info("delete invoice success", zap.Uint("invoice_id", id))
	return nil
}

func (s *service) GetAll(ctx context.Context) ([]InvoiceResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToResponses(rows), nil
}

func (s *service) GetByYear(ctx context.Context, year string) ([]InvoiceResponse, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 || y > 9999 {
		return nil, invoiceerrors.ErrInvalidYear
	}
	from := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.repo.FindIssuedBetween(ctx, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	return mapToResponses(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (InvoiceResponse, error) {
	inv, err := s.find(ctx, id)
	if err != nil {
		return InvoiceResponse{}, err
	}
	return mapToResponse(*inv), nil
}

func (s *service) find(ctx context.Context, id uint) (*Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoiceerrors.ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

func mapToResponse(inv Invoice) InvoiceResponse {
	var due *string
	if inv.DueDate != nil {
		d := workdate.Format(*inv.DueDate)
		due = &d
	}
	return InvoiceResponse{
		ID:               inv.ID,
		InvoiceNo:        inv.InvoiceNo,
		CustomerName:     inv.CustomerName,
		IssueDate:        workdate.Format(inv.IssueDate),
		DueDate:          due,
		Amount:           inv.Amount,
		PaidAmount:       inv.PaidAmount,
		RemainingBalance: inv.Remaining(),
		PaymentStatus:    inv.Status(),
		Note:             inv.Note,
	}
}

func mapToResponses(rows []Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
