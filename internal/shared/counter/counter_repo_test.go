package counter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "EMP001", FormatCode("EMP", 1))
	assert.Equal(t, "ATT042", FormatCode("ATT", 42))
	assert.Equal(t, "EMP1234", FormatCode("EMP", 1234))
}

func TestGetNextValue(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	mock.ExpectQuery("INSERT INTO id_counters").
		WithArgs(TypeEmployee).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(7))

	got, err := NewRepository(gdb).GetNextValue(context.Background(), TypeEmployee)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
