package attendance

import (
	"testing"
	"time"

	"go-truck-business/internal/daystatus"
	"go-truck-business/internal/shared/workdate"

	"github.com/stretchr/testify/assert"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	assert.NoError(t, err)
	return loc
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrStr(s string) *string        { return &s }

func TestBuildMonthGrid_DayCount(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29},
		{1900, 2, 28},
		{2025, 1, 31},
		{2025, 4, 30},
	}
	for _, tc := range cases {
		grid := BuildMonthGrid(tc.year, tc.month, MonthData{}, time.UTC)
		assert.Len(t, grid.Days, tc.want, "%d-%02d", tc.year, tc.month)
		assert.Equal(t, workdate.Format(workdate.Day(tc.year, tc.month, tc.want)), grid.Days[tc.want-1].Date)
	}
}

func TestCounters_Percentages(t *testing.T) {
	c := counters{onTime: 1, late: 1, absent: 1}
	assert.Equal(t, 33, c.pct(c.onTime))
	assert.Equal(t, 33, c.pct(c.late))
	assert.Equal(t, 33, c.pct(c.absent))

	empty := counters{}
	assert.Equal(t, 0, empty.pct(empty.onTime))

	c = counters{onTime: 2, late: 1}
	assert.Equal(t, 67, c.pct(c.onTime))
	assert.Equal(t, 33, c.pct(c.late))
}

func TestBuildMonthGrid_EmptyEmployees(t *testing.T) {
	grid := BuildMonthGrid(2025, 1, MonthData{}, time.UTC)
	assert.Equal(t, 0, grid.HeadStats.People)
	assert.Equal(t, 0, grid.HeadStats.OnTimePct)
	assert.Equal(t, 0, grid.HeadStats.LatePct)
	assert.Equal(t, 0, grid.HeadStats.AbsentPct)
	assert.Empty(t, grid.Days[0].Rows)
}

func TestBuildMonthGrid_DayStatusPath(t *testing.T) {
	loc := mustLoc(t, "Asia/Bangkok")
	jan10 := workdate.Day(2025, 1, 10)
	checkIn := time.Date(2025, 1, 10, 1, 30, 0, 0, time.UTC) // 08:30 Bangkok

	data := MonthData{
		Employees: []EmployeeRef{{ID: "EMP001", Name: "Somchai"}, {ID: "EMP002", Name: "Niran"}},
		Attendance: []Attendance{
			{ID: "ATT001", EmployeeID: "EMP001", WorkDate: jan10, CheckIn: checkIn, Status: StatusLate},
		},
		Leaves: []LeaveSnapshot{
			{EmployeeID: "EMP002", LeaveDate: jan10, LeaveType: "SICK", Reason: ptrStr("fever")},
		},
		Statuses: []daystatus.EmployeeDayStatus{
			{EmployeeID: "EMP001", WorkDate: jan10, Status: daystatus.StatusWorking},
			{EmployeeID: "EMP002", WorkDate: jan10, Status: daystatus.StatusOnLeave},
		},
	}

	grid := BuildMonthGrid(2025, 1, data, loc)
	assert.Equal(t, SourceDayStatus, grid.Source)

	day := grid.Days[9]
	assert.Equal(t, "2025-01-10", day.Date)
	assert.Equal(t, GridRow{
		EmployeeID: "EMP001", EmployeeName: "Somchai",
		CheckIn: "08:30", CheckOut: "-", Status: DisplayOnTime,
	}, day.Rows[0])
	assert.Equal(t, DisplayLeave, day.Rows[1].Status)
	assert.Equal(t, "fever", day.Rows[1].Note)

	// every other cell has no status row and reads as absent
	assert.Equal(t, DisplayAbsent, grid.Days[0].Rows[0].Status)
	assert.Equal(t, 1, grid.HeadStats.OnTimeDays)
	assert.Equal(t, 0, grid.HeadStats.LateDays)
	assert.Equal(t, 31*2-1, grid.HeadStats.AbsentDays)
	assert.Equal(t, 2, grid.HeadStats.People)
}

func TestBuildMonthGrid_FallbackPath(t *testing.T) {
	loc := mustLoc(t, "Asia/Bangkok")
	jan10 := workdate.Day(2025, 1, 10)
	jan11 := workdate.Day(2025, 1, 11)

	data := MonthData{
		Employees: []EmployeeRef{{ID: "EMP001", Name: "Somchai"}},
		Attendance: []Attendance{
			{
				ID: "ATT001", EmployeeID: "EMP001", WorkDate: jan10,
				CheckIn:  time.Date(2025, 1, 10, 2, 20, 0, 0, time.UTC),
				CheckOut: ptrTime(time.Date(2025, 1, 10, 11, 5, 0, 0, time.UTC)),
				Status:   StatusLate,
			},
			{ID: "ATT002", EmployeeID: "EMP001", WorkDate: jan11, CheckIn: time.Date(2025, 1, 11, 1, 0, 0, 0, time.UTC), Status: StatusOnTime},
		},
		Leaves: []LeaveSnapshot{
			// leave and attendance on the same day: leave wins
			{EmployeeID: "EMP001", LeaveDate: jan11, LeaveType: "PERSONAL"},
		},
	}

	grid := BuildMonthGrid(2025, 1, data, loc)
	assert.Equal(t, SourceAttendance, grid.Source)

	assert.Equal(t, GridRow{
		EmployeeID: "EMP001", EmployeeName: "Somchai",
		CheckIn: "09:20", CheckOut: "18:05", Status: DisplayLate,
	}, grid.Days[9].Rows[0])

	assert.Equal(t, DisplayLeave, grid.Days[10].Rows[0].Status)
	assert.Equal(t, "PERSONAL", grid.Days[10].Rows[0].Note)

	assert.Equal(t, 0, grid.HeadStats.OnTimeDays)
	assert.Equal(t, 1, grid.HeadStats.LateDays)
	assert.Equal(t, 30, grid.HeadStats.AbsentDays)
	assert.Equal(t, 3, grid.HeadStats.LatePct)
	assert.Equal(t, 97, grid.HeadStats.AbsentPct)
}

func TestBuildEmployeeHistory(t *testing.T) {
	jan10 := workdate.Day(2024, 2, 10)
	employee := EmployeeRef{ID: "EMP001", Name: "Somchai"}

	t.Run("fallback", func(t *testing.T) {
		data := MonthData{
			Attendance: []Attendance{{EmployeeID: "EMP001", WorkDate: jan10, CheckIn: time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC), Status: StatusOnTime}},
		}
		history := BuildEmployeeHistory(employee, 2024, 2, data, time.UTC)

		assert.Equal(t, HistoryEmployee{ID: "EMP001", Name: "Somchai"}, history.Employee)
		assert.Len(t, history.Days, 29)
		assert.Equal(t, HistoryDay{Day: 10, Status: DisplayOnTime, TimeIn: "08:00"}, history.Days[9])
		assert.Equal(t, HistoryDay{Day: 1, Status: DisplayAbsent}, history.Days[0])
	})

	t.Run("day status preferred", func(t *testing.T) {
		data := MonthData{
			Attendance: []Attendance{{EmployeeID: "EMP001", WorkDate: jan10, CheckIn: time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC), Status: StatusLate}},
			Statuses:   []daystatus.EmployeeDayStatus{{EmployeeID: "EMP001", WorkDate: jan10, Status: daystatus.StatusOffDuty}},
		}
		history := BuildEmployeeHistory(employee, 2024, 2, data, time.UTC)
		assert.Equal(t, HistoryDay{Day: 10, Status: DisplayOnTime, TimeIn: "08:00"}, history.Days[9])
	})
}
