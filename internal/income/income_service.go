package income

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	incomeerrors "go-truck-business/internal/income/errors"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/workdate"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=income_service.go -destination=mock/income_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateIncomeRequest) (IncomeResponse, error)
	Update(ctx context.Context, id uint, req UpdateIncomeRequest) (IncomeResponse, error)
	Delete(ctx context.Context, id uint) error
	GetAll(ctx context.Context) ([]IncomeResponse, error)
	GetByYear(ctx context.Context, year string) ([]IncomeResponse, error)
	GetByID(ctx context.Context, id uint) (IncomeResponse, error)
	YearTotals(ctx context.Context) ([]YearTotal, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("income.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("income.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateIncomeRequest) (IncomeResponse, error) {
	date, err := workdate.Parse(req.IncomeDate)
	if err != nil {
		return IncomeResponse{}, incomeerrors.ErrInvalidIncomeDate
	}
	if req.Amount.IsNegative() {
		return IncomeResponse{}, incomeerrors.ErrInvalidAmount
	}

	row := &Income{
		IncomeDate:        date,
		Description:       strings.TrimSpace(req.Description),
		Category:          strings.TrimSpace(req.Category),
		Amount:            req.Amount,
		ContractImagePath: req.ContractImagePath,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("create income failed", zap.Error(err))
		return IncomeResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("create income success",
		zap.Uint("income_id", row.ID),
		zap.String("amount", row.Amount.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateIncomeRequest) (IncomeResponse, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return IncomeResponse{}, err
	}

	if req.IncomeDate != nil {
		date, err := workdate.Parse(*req.IncomeDate)
		if err != nil {
			return IncomeResponse{}, incomeerrors.ErrInvalidIncomeDate
		}
		row.IncomeDate = date
	}
	if req.Description != nil {
		row.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		row.Category = strings.TrimSpace(*req.Category)
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return IncomeResponse{}, incomeerrors.ErrInvalidAmount
		}
		row.Amount = *req.Amount
	}
	if req.ContractImagePath != nil {
		row.ContractImagePath = req.ContractImagePath
	}

	if err := s.repo.Update(ctx, row); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("update income failed", zap.Uint("income_id", id), zap.Error(err))
		return IncomeResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return incomeerrors.ErrIncomeNotFound
		}
		return err
	}
	contextutil.GetLogger(ctx, s.logger).Info("delete income success", zap.Uint("income_id", id))
	return nil
}

func (s *service) GetAll(ctx context.Context) ([]IncomeResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToResponses(rows), nil
}

func (s *service) GetByYear(ctx context.Context, year string) ([]IncomeResponse, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 || y > 9999 {
		return nil, incomeerrors.ErrInvalidYear
	}
	from := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.repo.FindBetween(ctx, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	return mapToResponses(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (IncomeResponse, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return IncomeResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) YearTotals(ctx context.Context) ([]YearTotal, error) {
	return s.repo.YearTotals(ctx)
}

func (s *service) find(ctx context.Context, id uint) (*Income, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, incomeerrors.ErrIncomeNotFound
		}
		return nil, err
	}
	return row, nil
}

func mapToResponse(in Income) IncomeResponse {
	return IncomeResponse{
		ID:                in.ID,
		IncomeDate:        workdate.Format(in.IncomeDate),
		Description:       in.Description,
		Category:          in.Category,
		Amount:            in.Amount,
		ContractImagePath: in.ContractImagePath,
	}
}

func mapToResponses(rows []Income) []IncomeResponse {
	res := make([]IncomeResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
