package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-truck-business/internal/attendance/errors"
	"go-truck-business/internal/daystatus"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/counter"
	"go-truck-business/internal/shared/workdate"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idPrefix = "ATT"

type Service interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
}

// Settings holds the business clock: the timezone that decides "today" and
// the minute of day after which a check-in is LATE.
type Settings struct {
	Location  *time.Location
	LateAfter int
}

type service struct {
	db          *sql.DB
	repo        Repository
	counterRepo counter.Repository
	reconciler  daystatus.Reconciler
	cache       *daystatus.MonthCache
	settings    Settings
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	reconciler daystatus.Reconciler,
	cache *daystatus.MonthCache,
	settings Settings,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &service{
		db:          db,
		repo:        repo,
		counterRepo: counterRepo,
		reconciler:  reconciler,
		cache:       cache,
		settings:    settings,
		now:         time.Now,
		logger:      l,
	}
}

// parseInstant accepts RFC3339, or a zoneless local time read in loc.
func parseInstant(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, attendanceerrors.ErrInvalidTimestamp
}

func (s *service) classifyArrival(checkIn time.Time) string {
	local := checkIn.In(s.settings.Location)
	if local.Hour()*60+local.Minute() > s.settings.LateAfter {
		return StatusLate
	}
	return StatusOnTime
}

func normalizeStatus(raw string) (string, error) {
	status := strings.ToUpper(strings.TrimSpace(raw))
	if status != StatusOnTime && status != StatusLate {
		return "", attendanceerrors.ErrInvalidStatus
	}
	return status, nil
}

// unitOfWork is every writer bound to the same *sql.Tx.
type unitOfWork struct {
	repo       Repository
	counters   counter.Repository
	reconciler daystatus.Reconciler
}

// inTx runs fn inside one transaction; the primary write and the day status
// reconcile commit or roll back together.
func (s *service) inTx(ctx context.Context, op string, fn func(uow unitOfWork) error) error {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error(op+" begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	uow := unitOfWork{
		repo:       s.repo.WithTx(tx),
		counters:   s.counterRepo.WithTx(tx),
		reconciler: s.reconciler.WithTx(tx),
	}
	if err := fn(uow); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error(op+" commit failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) ensureEmployee(ctx context.Context, qtx Repository, employeeID string) error {
	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return attendanceerrors.ErrEmployeeNotFound
	}
	return nil
}

// ensureFree returns a conflict when another record already holds the pair.
func ensureFree(ctx context.Context, qtx Repository, employeeID string, day time.Time, selfID string) error {
	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && existing != nil && existing.ID != selfID {
		return attendanceerrors.ErrAttendanceAlreadyExists
	}
	return nil
}

func insert(ctx context.Context, uow unitOfWork, row *Attendance) error {
	next, err := uow.counters.GetNextValue(ctx, counter.TypeAttendance)
	if err != nil {
		return err
	}
	row.ID = counter.FormatCode(idPrefix, next)

	if err := uow.repo.Create(ctx, row); err != nil {
		if errors.Is(err, ErrDuplicateEmployeeDate) {
			return attendanceerrors.ErrAttendanceAlreadyExists
		}
		return err
	}
	_, err = uow.reconciler.Recompute(ctx, row.EmployeeID, row.WorkDate)
	return err
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	day, err := workdate.Parse(req.WorkDate)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidWorkDate
	}
	checkIn, err := parseInstant(req.CheckIn, s.settings.Location)
	if err != nil {
		return AttendanceResponse{}, err
	}
	var checkOut *time.Time
	if req.CheckOut != nil && strings.TrimSpace(*req.CheckOut) != "" {
		out, err := parseInstant(*req.CheckOut, s.settings.Location)
		if err != nil {
			return AttendanceResponse{}, err
		}
		if out.Before(checkIn) {
			return AttendanceResponse{}, attendanceerrors.ErrCheckOutBeforeCheckIn
		}
		checkOut = &out
	}
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return AttendanceResponse{}, err
	}

	row := &Attendance{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		WorkDate:   day,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     status,
	}

	err = s.inTx(ctx, "create attendance", func(uow unitOfWork) error {
		if err := s.ensureEmployee(ctx, uow.repo, row.EmployeeID); err != nil {
			return err
		}
		if err := ensureFree(ctx, uow.repo, row.EmployeeID, day, ""); err != nil {
			return err
		}
		return insert(ctx, uow, row)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}
	s.cache.Invalidate(ctx, day)

	log.Info("create attendance success",
		zap.String("attendance_id", row.ID),
		zap.String("employee_id", row.EmployeeID),
		zap.String("work_date", workdate.Format(day)),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	checkIn := s.now().UTC()
	if req.CheckIn != nil && strings.TrimSpace(*req.CheckIn) != "" {
		parsed, err := parseInstant(*req.CheckIn, s.settings.Location)
		if err != nil {
			return AttendanceResponse{}, err
		}
		checkIn = parsed
	}
	day := workdate.In(checkIn, s.settings.Location)

	row := &Attendance{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		WorkDate:   day,
		CheckIn:    checkIn,
		Status:     s.classifyArrival(checkIn),
	}

	err := s.inTx(ctx, "check in", func(uow unitOfWork) error {
		if err := s.ensureEmployee(ctx, uow.repo, row.EmployeeID); err != nil {
			return err
		}
		if err := ensureFree(ctx, uow.repo, row.EmployeeID, day, ""); err != nil {
			return err
		}
		return insert(ctx, uow, row)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}
	s.cache.Invalidate(ctx, day)

	log.Info("check in success",
		zap.String("employee_id", row.EmployeeID),
		zap.String("work_date", workdate.Format(day)),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	now := s.now().UTC()
	day := workdate.In(now, s.settings.Location)
	if strings.TrimSpace(req.WorkDate) != "" {
		parsed, err := workdate.Parse(req.WorkDate)
		if err != nil {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidWorkDate
		}
		day = parsed
	}
	checkOut := now
	if req.CheckOut != nil && strings.TrimSpace(*req.CheckOut) != "" {
		parsed, err := parseInstant(*req.CheckOut, s.settings.Location)
		if err != nil {
			return AttendanceResponse{}, err
		}
		checkOut = parsed
	}

	employeeID := strings.TrimSpace(req.EmployeeID)
	var row *Attendance
	err := s.inTx(ctx, "check out", func(uow unitOfWork) error {
		found, err := uow.repo.FindByEmployeeAndDate(ctx, employeeID, day)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrCheckInNotFound
			}
			return err
		}
		if found.CheckOut != nil {
			return attendanceerrors.ErrAlreadyCheckedOut
		}
		if checkOut.Before(found.CheckIn) {
			return attendanceerrors.ErrCheckOutBeforeCheckIn
		}

		found.CheckOut = &checkOut
		if err := uow.repo.Update(ctx, found); err != nil {
			return err
		}
		if _, err := uow.reconciler.Recompute(ctx, found.EmployeeID, found.WorkDate); err != nil {
			return err
		}
		row = found
		return nil
	})
	if err != nil {
		return AttendanceResponse{}, err
	}
	s.cache.Invalidate(ctx, day)

	log.Info("check out success",
		zap.String("attendance_id", row.ID),
		zap.String("employee_id", employeeID),
		zap.String("work_date", workdate.Format(day)),
	)
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var before, row Attendance
	err := s.inTx(ctx, "update attendance", func(uow unitOfWork) error {
		found, err := uow.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return err
		}
		before = *found
		row = *found

		if err := s.applyUpdate(&row, req); err != nil {
			return err
		}

		moved := row.EmployeeID != before.EmployeeID || !row.WorkDate.Equal(before.WorkDate)
		if row.EmployeeID != before.EmployeeID {
			if err := s.ensureEmployee(ctx, uow.repo, row.EmployeeID); err != nil {
				return err
			}
		}
		if moved {
			if err := ensureFree(ctx, uow.repo, row.EmployeeID, row.WorkDate, row.ID); err != nil {
				return err
			}
		}

		if err := uow.repo.Update(ctx, &row); err != nil {
			if errors.Is(err, ErrDuplicateEmployeeDate) {
				return attendanceerrors.ErrAttendanceAlreadyExists
			}
			return err
		}

		return daystatus.RecomputePairs(ctx, uow.reconciler,
			daystatus.Pair{EmployeeID: before.EmployeeID, Date: before.WorkDate},
			daystatus.Pair{EmployeeID: row.EmployeeID, Date: row.WorkDate},
		)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}
	s.cache.Invalidate(ctx, before.WorkDate, row.WorkDate)

	log.Info("update attendance success", zap.String("attendance_id", id))
	return mapToResponse(row), nil
}

func (s *service) applyUpdate(row *Attendance, req UpdateAttendanceRequest) error {
	if req.EmployeeID != nil && strings.TrimSpace(*req.EmployeeID) != "" {
		row.EmployeeID = strings.TrimSpace(*req.EmployeeID)
	}
	if req.WorkDate != nil && strings.TrimSpace(*req.WorkDate) != "" {
		day, err := workdate.Parse(*req.WorkDate)
		if err != nil {
			return attendanceerrors.ErrInvalidWorkDate
		}
		row.WorkDate = day
	}
	if req.CheckIn != nil && strings.TrimSpace(*req.CheckIn) != "" {
		in, err := parseInstant(*req.CheckIn, s.settings.Location)
		if err != nil {
			return err
		}
		row.CheckIn = in
	}
	if req.CheckOut != nil {
		if strings.TrimSpace(*req.CheckOut) == "" {
			row.CheckOut = nil
		} else {
			out, err := parseInstant(*req.CheckOut, s.settings.Location)
			if err != nil {
				return err
			}
			row.CheckOut = &out
		}
	}
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status, err := normalizeStatus(*req.Status)
		if err != nil {
			return err
		}
		row.Status = status
	}
	if row.CheckOut != nil && row.CheckOut.Before(row.CheckIn) {
		return attendanceerrors.ErrCheckOutBeforeCheckIn
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	var deleted *Attendance
	err := s.inTx(ctx, "delete attendance", func(uow unitOfWork) error {
		found, err := uow.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return err
		}
		if err := uow.repo.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return err
		}
		if _, err := uow.reconciler.Recompute(ctx, found.EmployeeID, found.WorkDate); err != nil {
			return err
		}
		deleted = found
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, deleted.WorkDate)

	log.Info("delete attendance success", zap.String("attendance_id", id))
	return nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	if filter.Month > 0 && filter.Year == 0 {
		return nil, attendanceerrors.ErrInvalidYear
	}
	if filter.Month < 0 || filter.Month > 12 {
		return nil, attendanceerrors.ErrInvalidMonth
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list attendance failed", zap.Error(err))
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		WorkDate:   workdate.Format(a.WorkDate),
		CheckIn:    a.CheckIn.UTC().Format(time.RFC3339),
		Status:     a.Status,
	}
	if a.CheckOut != nil {
		v := a.CheckOut.UTC().Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
