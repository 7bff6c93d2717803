package app

import (
	"go-truck-business/internal/attendance"
	"go-truck-business/internal/auth"
	"go-truck-business/internal/config"
	"go-truck-business/internal/daystatus"
	"go-truck-business/internal/employee"
	"go-truck-business/internal/income"
	"go-truck-business/internal/invoice"
	"go-truck-business/internal/leave"
	"go-truck-business/internal/messaging/kafka"
	"go-truck-business/internal/middleware"
	"go-truck-business/internal/monthlysummary"
	"go-truck-business/internal/rbac"
	"go-truck-business/internal/rbac/infra"
	"go-truck-business/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(router *gin.Engine, cfg *config.Config, conn *Infra) error {
	logger := zap.L()
	db, gormDB, rdb := conn.SQLDB, conn.GormDB, conn.Redis

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dayStatusRepo := daystatus.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	incomeRepo := income.NewRepository(gormDB)
	invoiceRepo := invoice.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	summaryRepo := monthlysummary.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Day status core ---
	monthCache := daystatus.NewMonthCache(rdb, cfg.Attendance.SummaryCacheTTL, logger)
	reconciler := daystatus.NewReconciler(dayStatusRepo, outboxRepo, logger)
	settings := attendance.Settings{
		Location:  cfg.Attendance.Location,
		LateAfter: cfg.Attendance.LateAfter,
	}

	// --- Services ---
	authService := auth.NewService(authRepo, auth.TokenConfig{
		Secret:    cfg.JWT.Secret,
		AccessTTL: cfg.JWT.AccessExpiration,
	}, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, counterRepo, reconciler, monthCache, settings, logger)
	reportService := attendance.NewReportService(attendanceRepo, monthCache, cfg.Attendance.Location, logger)
	dayStatusService := daystatus.NewService(db, dayStatusRepo, reconciler, monthCache, cfg.Attendance.Location, logger)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb, monthCache, logger)
	incomeService := income.NewService(incomeRepo, logger)
	invoiceService := invoice.NewService(invoiceRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, reconciler, monthCache, logger)
	summaryService := monthlysummary.NewService(summaryRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	attendanceHandler := attendance.NewHandler(attendanceService, reportService)
	dayStatusHandler := daystatus.NewHandler(dayStatusService)
	employeeHandler := employee.NewHandler(employeeService, logger)
	incomeHandler := income.NewHandler(incomeService)
	invoiceHandler := invoice.NewHandler(invoiceService)
	leaveHandler := leave.NewHandler(leaveService)
	rbacHandler := rbac.NewHandler(rbacService)
	summaryHandler := monthlysummary.NewHandler(summaryService)

	// --- Routes Registration ---
	router.Use(middleware.ContextLogger(logger))

	public := router.Group("/api/v1")
	protected := router.Group("/api/v1")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.Idempotency(rdb),
	)
	{
		auth.RegisterRoutes(public, protected, authHandler, rbacService)
		attendance.RegisterRoutes(protected, attendanceHandler, rbacService)
		daystatus.RegisterRoutes(protected, dayStatusHandler, rbacService)
		employee.RegisterRoutes(protected, employeeHandler, rbacService)
		income.RegisterRoutes(protected, incomeHandler, rbacService)
		invoice.RegisterRoutes(protected, invoiceHandler, rbacService)
		leave.RegisterRoutes(protected, leaveHandler, rbacService)
		monthlysummary.RegisterRoutes(protected, summaryHandler, rbacService)
		rbac.RegisterRoutes(protected, rbacHandler)
	}

	return nil
}
