package income

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
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

func TestRepository_YearTotals(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT CAST\(EXTRACT\(YEAR FROM income_date\) AS INTEGER\) AS year`).
		WillReturnRows(sqlmock.NewRows([]string{"year", "total", "count"}).
			AddRow(2025, "15000.50", 3).
			AddRow(2024, "900.00", 1))

	rows, err := NewRepository(gdb).YearTotals(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2025, rows[0].Year)
	assert.True(t, rows[0].Total.Equal(decimal.RequireFromString("15000.5")))
	assert.Equal(t, 3, rows[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteMissing(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM "incomes"`).
		WithArgs(uint(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewRepository(gdb).Delete(context.Background(), 9)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
