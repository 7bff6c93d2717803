package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go-truck-business/internal/daystatus"
	leaveerrors "go-truck-business/internal/leave/errors"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/workdate"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	Update(ctx context.Context, id uint, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id uint) error
	GetAll(ctx context.Context, filter ListFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id uint) (LeaveResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	reconciler daystatus.Reconciler
	cache      *daystatus.MonthCache
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	reconciler daystatus.Reconciler,
	cache *daystatus.MonthCache,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		reconciler: reconciler,
		cache:      cache,
		logger:     l,
	}
}

func (s *service) inTx(ctx context.Context, op string, fn func(qtx Repository, rec daystatus.Reconciler) error) error {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error(op+" begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx), s.reconciler.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error(op+" commit failed", zap.Error(err))
		return err
	}
	return nil
}

func employeeName(ctx context.Context, qtx Repository, employeeID string) (string, error) {
	name, err := qtx.FindEmployeeName(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", leaveerrors.ErrEmployeeNotFound
	}
	return name, err
}

func mapWriteErr(err error) error {
	if errors.Is(err, ErrDuplicateEmployeeDate) {
		return leaveerrors.ErrLeaveAlreadyExists
	}
	return err
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	day, err := workdate.Parse(req.LeaveDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveDate
	}

	row := &LeaveRequest{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		LeaveDate:  day,
		LeaveType:  strings.TrimSpace(req.LeaveType),
		Reason:     req.Reason,
		ApprovedBy: strings.TrimSpace(req.ApprovedBy),
	}

	var name string
	err = s.inTx(ctx, "create leave", func(qtx Repository, rec daystatus.Reconciler) error {
		n, err := employeeName(ctx, qtx, row.EmployeeID)
		if err != nil {
			return err
		}
		name = n

		_, err = qtx.FindByEmployeeAndDate(ctx, row.EmployeeID, day)
		if err == nil {
			return leaveerrors.ErrLeaveAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := qtx.Create(ctx, row); err != nil {
			return mapWriteErr(err)
		}
		_, err = rec.Recompute(ctx, row.EmployeeID, row.LeaveDate)
		return err
	})
	if err != nil {
		return LeaveResponse{}, err
	}
	s.cache.Invalidate(ctx, day)

	log.Info("create leave success",
		zap.Uint("leave_id", row.LeaveID),
		zap.String("employee_id", row.EmployeeID),
		zap.String("leave_date", workdate.Format(day)),
	)
	return mapToResponse(*row, name), nil
}

func applyUpdate(row *LeaveRequest, req UpdateLeaveRequest) error {
	if req.EmployeeID != nil && strings.TrimSpace(*req.EmployeeID) != "" {
		row.EmployeeID = strings.TrimSpace(*req.EmployeeID)
	}
	if req.LeaveDate != nil && strings.TrimSpace(*req.LeaveDate) != "" {
		day, err := workdate.Parse(*req.LeaveDate)
		if err != nil {
			return leaveerrors.ErrInvalidLeaveDate
		}
		row.LeaveDate = day
	}
	if req.LeaveType != nil && strings.TrimSpace(*req.LeaveType) != "" {
		row.LeaveType = strings.TrimSpace(*req.LeaveType)
	}
	if req.Reason != nil {
		row.Reason = req.Reason
	}
	if req.ApprovedBy != nil && strings.TrimSpace(*req.ApprovedBy) != "" {
		row.ApprovedBy = strings.TrimSpace(*req.ApprovedBy)
	}
	return nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var before, row LeaveRequest
	var name string
	err := s.inTx(ctx, "update leave", func(qtx Repository, rec daystatus.Reconciler) error {
		found, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		before = *found
		row = *found

		if err := applyUpdate(&row, req); err != nil {
			return err
		}
		if row.EmployeeID != before.EmployeeID {
			if name, err = employeeName(ctx, qtx, row.EmployeeID); err != nil {
				return err
			}
		} else if name, err = qtx.FindEmployeeName(ctx, row.EmployeeID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			// a leave whose employee was deleted stays editable
			return err
		}

		if row.EmployeeID != before.EmployeeID || !row.LeaveDate.Equal(before.LeaveDate) {
			existing, err := qtx.FindByEmployeeAndDate(ctx, row.EmployeeID, row.LeaveDate)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil && existing.LeaveID != row.LeaveID {
				return leaveerrors.ErrLeaveAlreadyExists
			}
		}

		if err := qtx.Update(ctx, &row); err != nil {
			return mapWriteErr(err)
		}

		return daystatus.RecomputePairs(ctx, rec,
			daystatus.Pair{EmployeeID: before.EmployeeID, Date: before.LeaveDate},
			daystatus.Pair{EmployeeID: row.EmployeeID, Date: row.LeaveDate},
		)
	})
	if err != nil {
		return LeaveResponse{}, err
	}
	s.cache.Invalidate(ctx, before.LeaveDate, row.LeaveDate)

	log.Info("update leave success", zap.Uint("leave_id", id))
	return mapToResponse(row, name), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	log := contextutil.GetLogger(ctx, s.logger)

	var removed *LeaveRequest
	err := s.inTx(ctx, "delete leave", func(qtx Repository, rec daystatus.Reconciler) error {
		found, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		if err := qtx.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		if _, err := rec.Recompute(ctx, found.EmployeeID, found.LeaveDate); err != nil {
			return err
		}
		removed = found
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, removed.LeaveDate)

	log.Info("delete leave success", zap.Uint("leave_id", id))
	return nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]LeaveResponse, error) {
	if filter.Month > 0 && filter.Year == 0 {
		return nil, leaveerrors.ErrInvalidYear
	}
	if filter.Month < 0 || filter.Month > 12 {
		return nil, leaveerrors.ErrInvalidMonth
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list leaves failed", zap.Error(err))
		return nil, err
	}
	res := make([]LeaveResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r.LeaveRequest, r.EmployeeName)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (LeaveResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	// orphaned leaves still render; the name is best effort
	name, _ := s.repo.FindEmployeeName(ctx, row.EmployeeID)
	return mapToResponse(*row, name), nil
}

func mapToResponse(l LeaveRequest, employeeName string) LeaveResponse {
	return LeaveResponse{
		LeaveID:      l.LeaveID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: employeeName,
		LeaveDate:    workdate.Format(l.LeaveDate),
		LeaveType:    l.LeaveType,
		Reason:       l.Reason,
		ApprovedBy:   l.ApprovedBy,
	}
}
