package connection

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestPostgresConfigDSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", User: "u", Password: "p", Name: "truck", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=truck port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}

func TestGormTxUsesTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE counters").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := sqlDB.Begin()
	assert.NoError(t, err)

	res := GormTx(context.Background(), gdb, tx).Exec("UPDATE counters SET n = n + 1")
	assert.NoError(t, res.Error)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
