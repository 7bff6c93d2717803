package app

import (
	"database/sql"
	"net/http"

	"go-truck-business/internal/attendance"
	"go-truck-business/internal/auth"
	"go-truck-business/internal/config"
	"go-truck-business/internal/daystatus"
	"go-truck-business/internal/employee"
	"go-truck-business/internal/income"
	"go-truck-business/internal/invoice"
	"go-truck-business/internal/leave"
	"go-truck-business/internal/messaging/kafka"
	"go-truck-business/internal/monthlysummary"
	"go-truck-business/internal/shared/connection"
	"go-truck-business/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// Infra holds the shared connections of one process.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

// ConnectDatabase opens Postgres and, when withRedis is set, Redis.
func ConnectDatabase(cfg *config.Config, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, connectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	infra := &Infra{GormDB: gormDB, SQLDB: sqlDB}

	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, connectRetries)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Redis = rdb
	}
	return infra, nil
}

func models() []any {
	return []any{
		&counter.Counter{},
		&employee.Employee{},
		&attendance.Attendance{},
		&leave.LeaveRequest{},
		&daystatus.EmployeeDayStatus{},
		&monthlysummary.EmployeeMonthlySummary{},
		&income.Income{},
		&invoice.Invoice{},
		&auth.User{},
		&kafka.OutboxRecord{},
	}
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models()...)
}

// BuildApp connects the stores, migrates when enabled and mounts every
// route on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	log := zap.L().Named("app")

	infra, err := ConnectDatabase(cfg, true)
	if err != nil {
		return nil, err
	}

	if cfg.App.AutoMigrate {
		if err := Migrate(infra.GormDB); err != nil {
			infra.Close()
			return nil, err
		}
		log.Info("database migrated")
	}

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	if err := registerModules(router, cfg, infra); err != nil {
		infra.Close()
		return nil, err
	}

	return infra.Close, nil
}
