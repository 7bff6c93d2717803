package daystatus

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-truck-business/internal/events"
	"go-truck-business/internal/messaging/kafka"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/workdate"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Derive applies the day status rules, first match wins:
// leave, then attendance (checked out or not), then nothing.
func Derive(hasLeave bool, attendance *AttendanceSnapshot) Status {
	switch {
	case hasLeave:
		return StatusOnLeave
	case attendance == nil:
		return StatusNotCheckedIn
	case attendance.CheckOut != nil:
		return StatusOffDuty
	default:
		return StatusWorking
	}
}

// Reconciler keeps employee_day_statuses in step with attendance and leave.
// Bind it to the caller's transaction with WithTx so the primary write and
// the status row commit or roll back together.
//
//go:generate mockgen -source=daystatus_reconciler.go -destination=mock/daystatus_reconciler_mock.go -package=mock
type Reconciler interface {
	WithTx(tx *sql.Tx) Reconciler
	Recompute(ctx context.Context, employeeID string, date time.Time) (Status, error)
}

type reconciler struct {
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewReconciler(repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Reconciler {
	l := zap.L().Named("daystatus.reconciler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("daystatus.reconciler")
	}
	return &reconciler{repo: repo, outbox: outbox, now: time.Now, logger: l}
}

func (r *reconciler) WithTx(tx *sql.Tx) Reconciler {
	bound := &reconciler{
		repo:   r.repo.WithTx(tx),
		now:    r.now,
		logger: r.logger,
	}
	if r.outbox != nil {
		bound.outbox = r.outbox.WithTx(tx)
	}
	return bound
}

// Recompute writes nothing when the stored status already matches.
func (r *reconciler) Recompute(ctx context.Context, employeeID string, date time.Time) (Status, error) {
	log := contextutil.GetLogger(ctx, r.logger)
	day := workdate.Normalize(date)

	hasLeave, err := r.repo.HasLeave(ctx, employeeID, day)
	if err != nil {
		log.Error("recompute day status leave lookup failed",
			zap.String("employee_id", employeeID),
			zap.String("work_date", workdate.Format(day)),
			zap.Error(err),
		)
		return "", err
	}

	var attendance *AttendanceSnapshot
	if !hasLeave {
		attendance, err = r.repo.FindAttendance(ctx, employeeID, day)
		if err != nil {
			log.Error("recompute day status attendance lookup failed",
				zap.String("employee_id", employeeID),
				zap.String("work_date", workdate.Format(day)),
				zap.Error(err),
			)
			return "", err
		}
	}

	status := Derive(hasLeave, attendance)

	current, err := r.repo.FindOne(ctx, employeeID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if err == nil && current.Status == status {
		return status, nil
	}

	now := r.now().UTC()
	if err := r.repo.Upsert(ctx, &EmployeeDayStatus{
		EmployeeID: employeeID,
		WorkDate:   day,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		log.Error("recompute day status upsert failed",
			zap.String("employee_id", employeeID),
			zap.String("work_date", workdate.Format(day)),
			zap.Error(err),
		)
		return "", err
	}

	if r.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event, err := kafka.NewOutboxEvent(
			"employee_day_status",
			employeeID,
			events.DayStatusChangedType,
			events.DayStatusChangedTopic,
			rid,
			events.DayStatusChangedEvent{
				EventType:  events.DayStatusChangedType,
				RequestID:  rid,
				EmployeeID: employeeID,
				WorkDate:   workdate.Format(day),
				Status:     string(status),
				OccurredAt: now,
			},
		)
		if err != nil {
			return "", err
		}
		if err := r.outbox.Create(ctx, event); err != nil {
			log.Error("recompute day status outbox persist failed",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return "", err
		}
	}

	log.Debug("day status recomputed",
		zap.String("employee_id", employeeID),
		zap.String("work_date", workdate.Format(day)),
		zap.String("status", string(status)),
	)
	return status, nil
}

// RecomputePairs recomputes each distinct (employee, day) once, used when an
// update moves a record to another employee or date.
func RecomputePairs(ctx context.Context, r Reconciler, pairs ...Pair) error {
	seen := make(map[Pair]struct{}, len(pairs))
	for _, p := range pairs {
		p.Date = workdate.Normalize(p.Date)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		if _, err := r.Recompute(ctx, p.EmployeeID, p.Date); err != nil {
			return err
		}
	}
	return nil
}

type Pair struct {
	EmployeeID string
	Date       time.Time
}
