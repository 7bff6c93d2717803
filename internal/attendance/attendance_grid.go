package attendance

import (
	"math"
	"time"

	"go-truck-business/internal/daystatus"
	"go-truck-business/internal/shared/workdate"
)

// Display statuses of the month grid and employee history.
const (
	DisplayOnTime = "ON_TIME"
	DisplayLate   = "LATE"
	DisplayLeave  = "LEAVE"
	DisplayAbsent = "ABSENT"

	SourceDayStatus  = "day_status"
	SourceAttendance = "attendance"

	noCheckOut = "-"
)

// MonthData is everything one month grid reads, already limited to the month.
type MonthData struct {
	Employees  []EmployeeRef
	Attendance []Attendance
	Leaves     []LeaveSnapshot
	Statuses   []daystatus.EmployeeDayStatus
}

type cell struct {
	status   string
	checkIn  string
	checkOut string
	note     string
}

type monthIndex struct {
	attendance map[string]*Attendance
	leaves     map[string]*LeaveSnapshot
	statuses   map[string]daystatus.Status
}

func cellKey(employeeID string, day time.Time) string {
	return employeeID + "|" + workdate.Format(day)
}

func indexMonth(data MonthData) monthIndex {
	idx := monthIndex{
		attendance: make(map[string]*Attendance, len(data.Attendance)),
		leaves:     make(map[string]*LeaveSnapshot, len(data.Leaves)),
		statuses:   make(map[string]daystatus.Status, len(data.Statuses)),
	}
	for i := range data.Attendance {
		a := &data.Attendance[i]
		idx.attendance[cellKey(a.EmployeeID, a.WorkDate)] = a
	}
	for i := range data.Leaves {
		l := &data.Leaves[i]
		idx.leaves[cellKey(l.EmployeeID, l.LeaveDate)] = l
	}
	for _, s := range data.Statuses {
		idx.statuses[cellKey(s.EmployeeID, s.WorkDate)] = s.Status
	}
	return idx
}

// classify resolves one (employee, day). With useStatus the stored day status
// decides; otherwise leave wins over attendance, matching daystatus.Derive.
func (idx monthIndex) classify(key string, useStatus bool, loc *time.Location) cell {
	att := idx.attendance[key]
	lv := idx.leaves[key]

	if useStatus {
		switch idx.statuses[key] {
		case daystatus.StatusWorking, daystatus.StatusOffDuty:
			c := cell{status: DisplayOnTime}
			if att != nil {
				c.checkIn, c.checkOut = clockPair(att, loc)
			}
			return c
		case daystatus.StatusOnLeave:
			c := cell{status: DisplayLeave}
			if lv != nil {
				c.note = lv.Note()
			}
			return c
		default:
			return cell{status: DisplayAbsent}
		}
	}

	if lv != nil {
		return cell{status: DisplayLeave, note: lv.Note()}
	}
	if att != nil {
		c := cell{status: DisplayOnTime}
		if att.Status == StatusLate {
			c.status = DisplayLate
		}
		c.checkIn, c.checkOut = clockPair(att, loc)
		return c
	}
	return cell{status: DisplayAbsent}
}

func clockPair(a *Attendance, loc *time.Location) (string, string) {
	out := noCheckOut
	if a.CheckOut != nil {
		out = workdate.Clock(*a.CheckOut, loc)
	}
	return workdate.Clock(a.CheckIn, loc), out
}

type counters struct {
	onTime, late, absent int
}

func (c *counters) add(status string) {
	switch status {
	case DisplayOnTime:
		c.onTime++
	case DisplayLate:
		c.late++
	default:
		// LEAVE counts as absent
		c.absent++
	}
}

// pct rounds each share on its own, so 1/1/1 gives 33/33/33.
func (c counters) pct(n int) int {
	total := c.onTime + c.late + c.absent
	if total == 0 {
		total = 1
	}
	return int(math.Round(float64(n*100) / float64(total)))
}

// BuildMonthGrid renders every day of the month for every employee. Stored
// day statuses are used when the month has any; older months fall back to
// the raw attendance and leave rows.
func BuildMonthGrid(year, month int, data MonthData, loc *time.Location) MonthGrid {
	idx := indexMonth(data)
	useStatus := len(data.Statuses) > 0

	grid := MonthGrid{
		Year:   year,
		Month:  month,
		Source: SourceAttendance,
		Days:   make([]GridDay, 0, workdate.DaysInMonth(year, month)),
	}
	if useStatus {
		grid.Source = SourceDayStatus
	}

	var count counters
	for d := 1; d <= workdate.DaysInMonth(year, month); d++ {
		day := workdate.Day(year, month, d)
		rows := make([]GridRow, 0, len(data.Employees))
		for _, e := range data.Employees {
			c := idx.classify(cellKey(e.ID, day), useStatus, loc)
			count.add(c.status)
			rows = append(rows, GridRow{
				EmployeeID:   e.ID,
				EmployeeName: e.Name,
				CheckIn:      c.checkIn,
				CheckOut:     c.checkOut,
				Status:       c.status,
				Note:         c.note,
			})
		}
		grid.Days = append(grid.Days, GridDay{Date: workdate.Format(day), Rows: rows})
	}

	grid.HeadStats = HeadStats{
		People:     len(data.Employees),
		OnTimePct:  count.pct(count.onTime),
		LatePct:    count.pct(count.late),
		AbsentPct:  count.pct(count.absent),
		OnTimeDays: count.onTime,
		LateDays:   count.late,
		AbsentDays: count.absent,
	}
	return grid
}

// BuildEmployeeHistory is BuildMonthGrid for one employee; data must already
// be limited to that employee.
func BuildEmployeeHistory(employee EmployeeRef, year, month int, data MonthData, loc *time.Location) EmployeeHistory {
	idx := indexMonth(data)
	useStatus := len(data.Statuses) > 0

	history := EmployeeHistory{
		Employee: HistoryEmployee{ID: employee.ID, Name: employee.Name},
		Days:     make([]HistoryDay, 0, workdate.DaysInMonth(year, month)),
	}
	for d := 1; d <= workdate.DaysInMonth(year, month); d++ {
		c := idx.classify(cellKey(employee.ID, workdate.Day(year, month, d)), useStatus, loc)
		history.Days = append(history.Days, HistoryDay{
			Day:    d,
			Status: c.status,
			TimeIn: c.checkIn,
			Note:   c.note,
		})
	}
	return history
}
