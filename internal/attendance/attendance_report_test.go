package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	attendanceerrors "go-truck-business/internal/attendance/errors"
	"go-truck-business/internal/daystatus"
	"go-truck-business/internal/shared/workdate"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

// untouchedRepo panics on any call, proving validation happens first.
type untouchedRepo struct{ Repository }

type monthRepo struct {
	*fakeRepo
	attendance  []Attendance
	statuses    []daystatus.EmployeeDayStatus
	years       []int
	listCalls   int
	rangeFilter []string
}

func (m *monthRepo) ListEmployees(ctx context.Context) ([]EmployeeRef, error) {
	m.listCalls++
	return m.fakeRepo.ListEmployees(ctx)
}

func (m *monthRepo) ListAttendanceInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error) {
	m.rangeFilter = append(m.rangeFilter, employeeID)
	return m.attendance, nil
}

func (m *monthRepo) ListDayStatusesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]daystatus.EmployeeDayStatus, error) {
	return m.statuses, nil
}

func (m *monthRepo) Years(ctx context.Context) ([]int, error) { return m.years, nil }

func TestReportService_InvalidInputBeforeDB(t *testing.T) {
	svc := NewReportService(untouchedRepo{}, nil, time.UTC)
	ctx := context.Background()

	cases := []struct {
		year, month string
		want        error
	}{
		{"2025", "13", attendanceerrors.ErrInvalidMonth},
		{"2025", "0", attendanceerrors.ErrInvalidMonth},
		{"2025", "abc", attendanceerrors.ErrInvalidMonth},
		{"", "1", attendanceerrors.ErrInvalidYear},
		{"20x5", "1", attendanceerrors.ErrInvalidYear},
	}
	for _, tc := range cases {
		_, err := svc.Summary(ctx, tc.year, tc.month)
		assert.ErrorIs(t, err, tc.want, "summary %s-%s", tc.year, tc.month)

		_, err = svc.EmployeeHistory(ctx, "EMP001", tc.year, tc.month)
		assert.ErrorIs(t, err, tc.want, "history %s-%s", tc.year, tc.month)
	}

	_, err := svc.EmployeeHistory(ctx, " ", "2025", "1")
	assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeIDRequired)
}

func TestReportService_Summary(t *testing.T) {
	repo := &monthRepo{
		fakeRepo: newFakeRepo(),
		attendance: []Attendance{
			{EmployeeID: "EMP001", WorkDate: workdate.Day(2024, 2, 29), CheckIn: time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC), Status: StatusOnTime},
		},
	}
	svc := NewReportService(repo, nil, time.UTC)

	grid, err := svc.Summary(context.Background(), "2024", "2")
	assert.NoError(t, err)
	assert.Len(t, grid.Days, 29)
	assert.Equal(t, 2, grid.HeadStats.People)
	assert.Equal(t, DisplayOnTime, grid.Days[28].Rows[0].Status)
	assert.Equal(t, []string{""}, repo.rangeFilter)
}

func TestReportService_SummaryCacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := daystatus.NewMonthCache(rdb, time.Minute)

	mock.ExpectGet(daystatus.MonthKey(2025, 1)).SetVal(`{"year":2025,"month":1,"source":"day_status","headStats":{"people":3},"days":[]}`)

	repo := &monthRepo{fakeRepo: newFakeRepo()}
	svc := NewReportService(repo, cache, time.UTC)

	grid, err := svc.Summary(context.Background(), "2025", "1")
	assert.NoError(t, err)
	assert.Equal(t, 3, grid.HeadStats.People)
	assert.Equal(t, 0, repo.listCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// slowMonthRepo holds the month build until release is closed.
type slowMonthRepo struct {
	*monthRepo
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (r *slowMonthRepo) ListEmployees(ctx context.Context) ([]EmployeeRef, error) {
	r.once.Do(func() { close(r.started) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.release:
	}
	return r.monthRepo.ListEmployees(ctx)
}

func TestReportService_SummarySharedBuildSurvivesCallerCancel(t *testing.T) {
	repo := &slowMonthRepo{
		monthRepo: &monthRepo{fakeRepo: newFakeRepo()},
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	svc := NewReportService(repo, nil, time.UTC)

	type result struct {
		grid MonthGrid
		err  error
	}
	ctxA, cancelA := context.WithCancel(context.Background())
	first := make(chan result, 1)
	go func() {
		grid, err := svc.Summary(ctxA, "2025", "1")
		first <- result{grid, err}
	}()
	<-repo.started

	second := make(chan result, 1)
	go func() {
		grid, err := svc.Summary(context.Background(), "2025", "1")
		second <- result{grid, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	got := <-first
	assert.ErrorIs(t, got.err, context.Canceled)

	close(repo.release)
	got = <-second
	assert.NoError(t, got.err)
	assert.Len(t, got.grid.Days, 31)
	assert.Equal(t, 1, repo.listCalls)
}

func TestReportService_EmployeeHistory(t *testing.T) {
	repo := &monthRepo{fakeRepo: newFakeRepo()}
	svc := NewReportService(repo, nil, time.UTC)
	ctx := context.Background()

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.EmployeeHistory(ctx, "EMP404", "2025", "1")
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("scoped to the employee", func(t *testing.T) {
		repo.rangeFilter = nil
		history, err := svc.EmployeeHistory(ctx, "EMP002", "2025", "1")
		assert.NoError(t, err)
		assert.Equal(t, "Niran", history.Employee.Name)
		assert.Len(t, history.Days, 31)
		assert.Equal(t, []string{"EMP002"}, repo.rangeFilter)
	})
}

func TestReportService_Years(t *testing.T) {
	repo := &monthRepo{fakeRepo: newFakeRepo()}
	svc := NewReportService(repo, nil, time.UTC).(*reportService)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	years, err := svc.Years(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []YearResponse{{Year: 2026, MonthsCount: 12}}, years)

	repo.years = []int{2025, 2024}
	years, err = svc.Years(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2025, years[0].Year)
	assert.Len(t, years, 2)
}

func TestParseYearMonth(t *testing.T) {
	y, m, err := parseYearMonth("2025", "12")
	assert.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 12, m)

	_, _, err = parseYearMonth("10000", "1")
	assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidYear))
}
