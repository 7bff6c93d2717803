package daystatus

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	daystatuserrors "go-truck-business/internal/daystatus/errors"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/workdate"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	ListByDate(ctx context.Context, date string) ([]DayStatusResponse, error)
	GetOne(ctx context.Context, employeeID, date string) (DayStatusResponse, error)
	Upsert(ctx context.Context, req UpsertDayStatusRequest) (DayStatusResponse, error)
	Recompute(ctx context.Context, req RecomputeRequest) (DayStatusResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	reconciler Reconciler
	cache      *MonthCache
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	reconciler Reconciler,
	cache *MonthCache,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("daystatus.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("daystatus.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:         db,
		repo:       repo,
		reconciler: reconciler,
		cache:      cache,
		loc:        loc,
		now:        time.Now,
		logger:     l,
	}
}

// resolveDate treats an empty value as today in the business timezone.
func (s *service) resolveDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return workdate.In(s.now(), s.loc), nil
	}
	day, err := workdate.Parse(raw)
	if err != nil {
		return time.Time{}, daystatuserrors.ErrInvalidDate
	}
	return day, nil
}

func (s *service) ListByDate(ctx context.Context, date string) ([]DayStatusResponse, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByDate(ctx, day)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list day status failed",
			zap.String("work_date", workdate.Format(day)),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetOne(ctx context.Context, employeeID, date string) (DayStatusResponse, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return DayStatusResponse{}, err
	}

	row, err := s.repo.FindOne(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DayStatusResponse{}, daystatuserrors.ErrDayStatusNotFound
		}
		return DayStatusResponse{}, err
	}
	return mapToResponse(*row), nil
}

// Upsert writes a status as given, without deriving it. The next mutation of
// that day's attendance or leave, or a Recompute call, overrides it.
func (s *service) Upsert(ctx context.Context, req UpsertDayStatusRequest) (DayStatusResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	status := Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return DayStatusResponse{}, daystatuserrors.ErrInvalidStatus
	}
	day, err := s.resolveDate(req.Date)
	if err != nil {
		return DayStatusResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("upsert day status begin tx failed", zap.Error(err))
		return DayStatusResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return DayStatusResponse{}, err
	}
	if !exists {
		return DayStatusResponse{}, daystatuserrors.ErrEmployeeNotFound
	}

	now := s.now().UTC()
	row := &EmployeeDayStatus{
		EmployeeID: req.EmployeeID,
		WorkDate:   day,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := qtx.Upsert(ctx, row); err != nil {
		log.Error("upsert day status persist failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return DayStatusResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("upsert day status commit failed", zap.Error(err))
		return DayStatusResponse{}, err
	}
	s.cache.Invalidate(ctx, day)

	log.Info("upsert day status success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("work_date", workdate.Format(day)),
		zap.String("status", string(status)),
	)
	return mapToResponse(*row), nil
}

func (s *service) Recompute(ctx context.Context, req RecomputeRequest) (DayStatusResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	day, err := workdate.Parse(req.Date)
	if err != nil {
		return DayStatusResponse{}, daystatuserrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("recompute day status begin tx failed", zap.Error(err))
		return DayStatusResponse{}, err
	}
	defer tx.Rollback()

	exists, err := s.repo.WithTx(tx).EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return DayStatusResponse{}, err
	}
	if !exists {
		return DayStatusResponse{}, daystatuserrors.ErrEmployeeNotFound
	}

	status, err := s.reconciler.WithTx(tx).Recompute(ctx, req.EmployeeID, day)
	if err != nil {
		return DayStatusResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("recompute day status commit failed", zap.Error(err))
		return DayStatusResponse{}, err
	}
	s.cache.Invalidate(ctx, day)

	return DayStatusResponse{
		EmployeeID: req.EmployeeID,
		WorkDate:   workdate.Format(day),
		Status:     string(status),
	}, nil
}

func mapToResponse(row EmployeeDayStatus) DayStatusResponse {
	resp := DayStatusResponse{
		EmployeeID: row.EmployeeID,
		WorkDate:   workdate.Format(row.WorkDate),
		Status:     string(row.Status),
	}
	if !row.UpdatedAt.IsZero() {
		resp.UpdatedAt = row.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(rows []EmployeeDayStatus) []DayStatusResponse {
	resp := make([]DayStatusResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp
}
