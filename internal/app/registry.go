package app

import (
	"database/sql"

	"go-elms/internal/audit"
	"go-elms/internal/auth"
	"go-elms/internal/authz"
	"go-elms/internal/leave"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/middleware"
	"go-elms/internal/report"
	"go-elms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Permission model ---
	authzService, err := authz.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	auditRecorder := audit.NewRecorder(auditRepo)
	userService := user.NewService(userRepo)
	authService := auth.NewService(userRepo, outboxRepo)
	leaveService := leave.NewService(db, leaveRepo, auditRecorder, outboxRepo)
	reportService := report.NewService(reportRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandler(leaveService, authzService)
	auditHandler := audit.NewHandler(auditRepo)
	reportHandler := report.NewHandler(reportService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, authzService)
		leave.RegisterRoutes(api, leaveHandler, authzService, rdb)
		audit.RegisterRoutes(api, auditHandler, authzService)
		report.RegisterRoutes(api, reportHandler, authzService)
	}

	return nil
}
