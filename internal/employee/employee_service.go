package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go-truck-business/internal/events"
	"go-truck-business/internal/messaging/kafka"
	"go-truck-business/internal/shared/contextutil"
	"go-truck-business/internal/shared/counter"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	idPrefix           = "EMP"
	optionsTTL         = time.Hour
)

// SummaryCache drops cached month grids; the grid lists every employee, so
// any roster change makes all of them stale.
type SummaryCache interface {
	InvalidateAll(ctx context.Context)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	grids   SummaryCache
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	grids SummaryCache,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		grids:   grids,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

// queueEvent writes the lifecycle event into the outbox inside tx.
func (s *service) queueEvent(ctx context.Context, tx *sql.Tx, eventType, employeeID string) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	event, err := kafka.NewOutboxEvent("employee", employeeID, eventType, events.EmployeeChangedTopic, rid,
		events.EmployeeChangedEvent{
			EventType:  eventType,
			RequestID:  rid,
			EmployeeID: employeeID,
			OccurredAt: time.Now().UTC(),
		})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

// invalidate runs after commit; a failed delete only costs a stale read.
func (s *service) invalidate(ctx context.Context) {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
			contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate employee options cache",
				zap.Error(err),
				zap.String("key", EmployeeOptionsKey),
			)
		}
	}
	if s.grids != nil {
		s.grids.InvalidateAll(ctx)
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.TypeEmployee)
	if err != nil {
		log.Error("create employee generate code failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:               counter.FormatCode(idPrefix, nextVal),
		Name:             strings.TrimSpace(req.Name),
		Position:         strings.TrimSpace(req.Position),
		Phone:            strings.TrimSpace(req.Phone),
		ProfileImagePath: req.ProfileImagePath,
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := s.queueEvent(ctx, tx, events.EmployeeCreatedType, empl.ID); err != nil {
		log.Error("create employee outbox persist failed", zap.String("employee_id", empl.ID), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.invalidate(ctx)

	log.Info("create employee success", zap.String("employee_id", empl.ID))
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// dropdowns on every dashboard page hit this at once
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		options, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if options == nil {
			options = []EmployeeOption{}
		}

		if s.rdb != nil {
			if body, err := json.Marshal(options); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, body, optionsTTL)
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Name = strings.TrimSpace(req.Name)
	empl.Position = strings.TrimSpace(req.Position)
	empl.Phone = strings.TrimSpace(req.Phone)
	if req.ProfileImagePath != nil {
		empl.ProfileImagePath = req.ProfileImagePath
	}

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := s.queueEvent(ctx, tx, events.EmployeeUpdatedType, empl.ID); err != nil {
		log.Error("update employee outbox persist failed", zap.String("employee_id", empl.ID), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.invalidate(ctx)

	log.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

// Delete soft deletes the employee. Attendance, leave and day status rows
// keep pointing at the code.
func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.queueEvent(ctx, tx, events.EmployeeDeletedType, id); err != nil {
		log.Error("delete employee outbox persist failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return err
	}
	s.invalidate(ctx)

	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               empl.ID,
		Name:             empl.Name,
		Position:         empl.Position,
		Phone:            empl.Phone,
		ProfileImagePath: empl.ProfileImagePath,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
