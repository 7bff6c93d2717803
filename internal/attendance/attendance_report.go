package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-truck-business/internal/attendance/errors"
	"go-truck-business/internal/daystatus"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/workdate"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const monthBuildTimeout = 30 * time.Second

type ReportService interface {
	Summary(ctx context.Context, year, month string) (MonthGrid, error)
	EmployeeHistory(ctx context.Context, employeeID, year, month string) (EmployeeHistory, error)
	Years(ctx context.Context) ([]YearResponse, error)
}

type reportService struct {
	repo   Repository
	cache  *daystatus.MonthCache
	loc    *time.Location
	group  singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewReportService(repo Repository, cache *daystatus.MonthCache, loc *time.Location, logger ...*zap.Logger) ReportService {
	l := zap.L().Named("attendance.report")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.report")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{repo: repo, cache: cache, loc: loc, now: time.Now, logger: l}
}

// parseYearMonth runs before any repository call.
func parseYearMonth(year, month string) (int, int, error) {
	y, m, err := workdate.ParseYearMonth(year, month)
	switch {
	case errors.Is(err, workdate.ErrInvalidYear):
		return 0, 0, attendanceerrors.ErrInvalidYear
	case errors.Is(err, workdate.ErrInvalidMonth):
		return 0, 0, attendanceerrors.ErrInvalidMonth
	case err != nil:
		return 0, 0, err
	}
	return y, m, nil
}

func (s *reportService) Summary(ctx context.Context, year, month string) (MonthGrid, error) {
	y, m, err := parseYearMonth(year, month)
	if err != nil {
		return MonthGrid{}, err
	}

	var cached MonthGrid
	if s.cache.Get(ctx, y, m, &cached) {
		return cached, nil
	}

	// concurrent dashboard loads of the same month share one build
	ch := s.group.DoChan(daystatus.MonthKey(y, m), func() (interface{}, error) {
		// the build outlives any single caller that gives up waiting
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), monthBuildTimeout)
		defer cancel()

		stamp := s.cache.Stamp(buildCtx, y, m)
		grid, err := s.buildMonth(buildCtx, y, m)
		if err != nil {
			return nil, err
		}
		s.cache.Set(buildCtx, y, m, stamp, grid)
		return grid, nil
	})

	select {
	case <-ctx.Done():
		return MonthGrid{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			contextutil.GetLogger(ctx, s.logger).Error("build month summary failed",
				zap.Int("year", y), zap.Int("month", m), zap.Error(res.Err))
			return MonthGrid{}, res.Err
		}
		return res.Val.(MonthGrid), nil
	}
}

func (s *reportService) buildMonth(ctx context.Context, year, month int) (MonthGrid, error) {
	start, end := workdate.MonthRange(year, month)

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return MonthGrid{}, err
	}
	data, err := s.loadMonth(ctx, "", start, end)
	if err != nil {
		return MonthGrid{}, err
	}
	data.Employees = employees
	return BuildMonthGrid(year, month, data, s.loc), nil
}

func (s *reportService) loadMonth(ctx context.Context, employeeID string, start, end time.Time) (MonthData, error) {
	statuses, err := s.repo.ListDayStatusesInRange(ctx, employeeID, start, end)
	if err != nil {
		return MonthData{}, err
	}
	attendance, err := s.repo.ListAttendanceInRange(ctx, employeeID, start, end)
	if err != nil {
		return MonthData{}, err
	}
	leaves, err := s.repo.ListLeavesInRange(ctx, employeeID, start, end)
	if err != nil {
		return MonthData{}, err
	}
	return MonthData{Attendance: attendance, Leaves: leaves, Statuses: statuses}, nil
}

func (s *reportService) EmployeeHistory(ctx context.Context, employeeID, year, month string) (EmployeeHistory, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return EmployeeHistory{}, attendanceerrors.ErrEmployeeIDRequired
	}
	y, m, err := parseYearMonth(year, month)
	if err != nil {
		return EmployeeHistory{}, err
	}

	employee, err := s.repo.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeHistory{}, attendanceerrors.ErrEmployeeNotFound
		}
		return EmployeeHistory{}, err
	}

	start, end := workdate.MonthRange(y, m)
	data, err := s.loadMonth(ctx, employeeID, start, end)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load employee history failed",
			zap.String("employee_id", employeeID), zap.Error(err))
		return EmployeeHistory{}, err
	}
	return BuildEmployeeHistory(*employee, y, m, data, s.loc), nil
}

// Years falls back to the current year when nothing has been recorded yet.
func (s *reportService) Years(ctx context.Context) ([]YearResponse, error) {
	years, err := s.repo.Years(ctx)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		years = []int{s.now().In(s.loc).Year()}
	}
	resp := make([]YearResponse, len(years))
	for i, y := range years {
		resp[i] = YearResponse{Year: y, MonthsCount: 12}
	}
	return resp, nil
}
