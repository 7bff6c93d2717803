package daystatus_test

import (
	"context"
	"testing"
	"time"

	"go-truck-business/internal/daystatus"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return gdb, mock
}

func TestRepository_EmployeeExistsSkipsDeleted(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs("EMP009").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := daystatus.NewRepository(gdb).EmployeeExists(context.Background(), "EMP009")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasLeave(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "leave_requests" WHERE employee_id = \$1 AND leave_date = \$2`).
		WithArgs("EMP001", jan10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := daystatus.NewRepository(gdb).HasLeave(context.Background(), "EMP001", jan10)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindAttendanceNone(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT check_in, check_out FROM "attendances"`).
		WillReturnRows(sqlmock.NewRows([]string{"check_in", "check_out"}))

	snap, err := daystatus.NewRepository(gdb).FindAttendance(context.Background(), "EMP001", jan10)
	assert.NoError(t, err)
	assert.Nil(t, snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertOnCompositeKey(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO "employee_day_statuses" .* ON CONFLICT \("employee_id","work_date"\) DO UPDATE SET "status"="excluded"."status"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	row := &daystatus.EmployeeDayStatus{
		EmployeeID: "EMP001",
		WorkDate:   jan10,
		Status:     daystatus.StatusWorking,
		UpdatedAt:  jan10.Add(9 * time.Hour),
	}
	assert.NoError(t, daystatus.NewRepository(gdb).Upsert(context.Background(), row))
	assert.NoError(t, mock.ExpectationsWereMet())
}
