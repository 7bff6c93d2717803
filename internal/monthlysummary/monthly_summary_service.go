package monthlysummary

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	monthlysummaryerrors "go-truck-business/internal/monthlysummary/errors"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/pdfsheet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=monthly_summary_service.go -destination=mock/monthly_summary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSummaryRequest) (SummaryResponse, error)
	Update(ctx context.Context, id uint, req UpdateSummaryRequest) (SummaryResponse, error)
	Delete(ctx context.Context, id uint) error
	GetAll(ctx context.Context, filter ListFilter) ([]SummaryResponse, error)
	GetByYear(ctx context.Context, year string) ([]SummaryResponse, error)
	GetByID(ctx context.Context, id uint) (SummaryResponse, error)
	Sheet(ctx context.Context, id uint) (filename string, pdf []byte, err error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("monthlysummary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("monthlysummary.service")
	}
	return &service{repo: repo, logger: l}
}

func validate(s EmployeeMonthlySummary) error {
	if s.Year < 1 || s.Year > 9999 {
		return monthlysummaryerrors.ErrInvalidYear
	}
	if s.Month < 1 || s.Month > 12 {
		return monthlysummaryerrors.ErrInvalidMonth
	}
	for _, n := range []int{s.TotalTrips, s.PlannedDays, s.PresentDays, s.LateDays, s.AbsentDays, s.LeaveDays} {
		if n < 0 {
			return monthlysummaryerrors.ErrNegativeValue
		}
	}
	if s.TotalFuelCost.IsNegative() || s.TotalEarnings.IsNegative() {
		return monthlysummaryerrors.ErrNegativeValue
	}
	if (s.WorkHours.Valid && s.WorkHours.Decimal.IsNegative()) || (s.OnTimeRate.Valid && s.OnTimeRate.Decimal.IsNegative()) {
		return monthlysummaryerrors.ErrNegativeValue
	}
	return nil
}

func (s *service) employee(ctx context.Context, id string) (*EmployeeInfo, error) {
	found, err := s.repo.FindEmployees(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, monthlysummaryerrors.ErrEmployeeNotFound
	}
	return &found[0], nil
}

func mapWriteErr(err error) error {
	if errors.Is(err, ErrDuplicatePeriod) {
		return monthlysummaryerrors.ErrSummaryAlreadyExists
	}
	return err
}

func (s *service) Create(ctx context.Context, req CreateSummaryRequest) (SummaryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	row := &EmployeeMonthlySummary{
		EmployeeID:    strings.TrimSpace(req.EmployeeID),
		Year:          req.Year,
		Month:         req.Month,
		TotalTrips:    req.TotalTrips,
		TotalFuelCost: req.TotalFuelCost,
		TotalEarnings: req.TotalEarnings,
		PlannedDays:   req.PlannedDays,
		PresentDays:   req.PresentDays,
		LateDays:      req.LateDays,
		AbsentDays:    req.AbsentDays,
		LeaveDays:     req.LeaveDays,
		WorkHours:     req.WorkHours,
		OnTimeRate:    req.OnTimeRate,
	}
	if err := validate(*row); err != nil {
		return SummaryResponse{}, err
	}

	emp, err := s.employee(ctx, row.EmployeeID)
	if err != nil {
		return SummaryResponse{}, err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if !errors.Is(err, ErrDuplicatePeriod) {
			log.Error("create monthly summary failed", zap.Error(err))
		}
		return SummaryResponse{}, mapWriteErr(err)
	}

	log.Info("create monthly summary success",
		zap.Uint("summary_id", row.ID),
		zap.String("employee_id", row.EmployeeID),
		zap.Int("year", row.Year),
		zap.Int("month", row.Month),
	)
	return mapToResponse(*row, emp), nil
}

func applyUpdate(row *EmployeeMonthlySummary, req UpdateSummaryRequest) {
	if req.EmployeeID != nil && strings.TrimSpace(*req.EmployeeID) != "" {
		row.EmployeeID = strings.TrimSpace(*req.EmployeeID)
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setInt(&row.Year, req.Year)
	setInt(&row.Month, req.Month)
	setInt(&row.TotalTrips, req.TotalTrips)
	setInt(&row.PlannedDays, req.PlannedDays)
	setInt(&row.PresentDays, req.PresentDays)
	setInt(&row.LateDays, req.LateDays)
	setInt(&row.AbsentDays, req.AbsentDays)
	setInt(&row.LeaveDays, req.LeaveDays)
	if req.TotalFuelCost != nil {
		row.TotalFuelCost = *req.TotalFuelCost
	}
	if req.TotalEarnings != nil {
		row.TotalEarnings = *req.TotalEarnings
	}
	if req.WorkHours.Present {
		row.WorkHours = req.WorkHours.Value
	}
	if req.OnTimeRate.Present {
		row.OnTimeRate = req.OnTimeRate.Value
	}
}

func (s *service) Update(ctx context.Context, id uint, req UpdateSummaryRequest) (SummaryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, monthlysummaryerrors.ErrSummaryNotFound
		}
		return SummaryResponse{}, err
	}

	applyUpdate(row, req)
	if err := validate(*row); err != nil {
		return SummaryResponse{}, err
	}

	emp, err := s.employee(ctx, row.EmployeeID)
	if err != nil {
		return SummaryResponse{}, err
	}

	if err := s.repo.Update(ctx, row); err != nil {
		if !errors.Is(err, ErrDuplicatePeriod) {
			log.Error("update monthly summary failed", zap.Uint("summary_id", id), zap.Error(err))
		}
		return SummaryResponse{}, mapWriteErr(err)
	}

	log.Info("update monthly summary success", zap.Uint("summary_id", id))
	return mapToResponse(*row, emp), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return monthlysummaryerrors.ErrSummaryNotFound
		}
		return err
	}
	contextutil.GetLogger(ctx, s.logger).Info("delete monthly summary success", zap.Uint("summary_id", id))
	return nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]SummaryResponse, error) {
	if filter.Year < 0 || filter.Year > 9999 {
		return nil, monthlysummaryerrors.ErrInvalidYear
	}
	if filter.Month < 0 || filter.Month > 12 {
		return nil, monthlysummaryerrors.ErrInvalidMonth
	}
	return s.list(ctx, filter)
}

func (s *service) GetByYear(ctx context.Context, year string) ([]SummaryResponse, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 || y > 9999 {
		return nil, monthlysummaryerrors.ErrInvalidYear
	}
	return s.list(ctx, ListFilter{Year: y})
}

func (s *service) list(ctx context.Context, filter ListFilter) ([]SummaryResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list monthly summaries failed", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.EmployeeID]; !ok {
			seen[r.EmployeeID] = struct{}{}
			ids = append(ids, r.EmployeeID)
		}
	}
	employees, err := s.repo.FindEmployees(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*EmployeeInfo, len(employees))
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}

	res := make([]SummaryResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r, byID[r.EmployeeID])
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (SummaryResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, monthlysummaryerrors.ErrSummaryNotFound
		}
		return SummaryResponse{}, err
	}
	employees, err := s.repo.FindEmployees(ctx, []string{row.EmployeeID})
	if err != nil {
		return SummaryResponse{}, err
	}
	var emp *EmployeeInfo
	if len(employees) > 0 {
		emp = &employees[0]
	}
	return mapToResponse(*row, emp), nil
}

func (s *service) Sheet(ctx context.Context, id uint) (string, []byte, error) {
	resp, err := s.GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("summary-%s-%04d-%02d.pdf", resp.EmployeeID, resp.Year, resp.Month)
	return filename, summarySheet(resp).Render(), nil
}

func summarySheet(r SummaryResponse) pdfsheet.Sheet {
	name := "-"
	position := "-"
	if r.Employee != nil {
		name = r.Employee.Name
		position = r.Employee.Position
	}
	return pdfsheet.Sheet{
		Title: "Employee Monthly Summary",
		Sections: []pdfsheet.Section{
			{Rows: []pdfsheet.Row{
				{Label: "Employee", Value: r.EmployeeID + " " + name},
				{Label: "Position", Value: position},
				{Label: "Period", Value: fmt.Sprintf("%04d-%02d", r.Year, r.Month)},
			}},
			{Heading: "Operations", Rows: []pdfsheet.Row{
				{Label: "Trips", Value: strconv.Itoa(r.TotalTrips)},
				{Label: "Fuel cost", Value: r.TotalFuelCost.StringFixed(2)},
				{Label: "Earnings", Value: r.TotalEarnings.StringFixed(2)},
			}},
			{Heading: "Attendance", Rows: []pdfsheet.Row{
				{Label: "Planned days", Value: strconv.Itoa(r.PlannedDays)},
				{Label: "Present days", Value: strconv.Itoa(r.PresentDays)},
				{Label: "Late days", Value: strconv.Itoa(r.LateDays)},
				{Label: "Absent days", Value: strconv.Itoa(r.AbsentDays)},
				{Label: "Leave days", Value: strconv.Itoa(r.LeaveDays)},
				{Label: "Work hours", Value: nullFixed(r.WorkHours, "")},
				{Label: "On-time rate", Value: nullFixed(r.OnTimeRate, "%")},
			}},
		},
	}
}

func nullFixed(d decimal.NullDecimal, suffix string) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.StringFixed(2) + suffix
}

func mapToResponse(s EmployeeMonthlySummary, emp *EmployeeInfo) SummaryResponse {
	return SummaryResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		Year:          s.Year,
		Month:         s.Month,
		TotalTrips:    s.TotalTrips,
		TotalFuelCost: s.TotalFuelCost,
		TotalEarnings: s.TotalEarnings,
		PlannedDays:   s.PlannedDays,
		PresentDays:   s.PresentDays,
		LateDays:      s.LateDays,
		AbsentDays:    s.AbsentDays,
		LeaveDays:     s.LeaveDays,
		WorkHours:     s.WorkHours,
		OnTimeRate:    s.OnTimeRate,
		Employee:      emp,
	}
}
