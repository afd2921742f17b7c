package app

import (
	"database/sql"

	"github.com/faresbyte/tawseel-task-system/internal/assignment"
	"github.com/faresbyte/tawseel-task-system/internal/auth"
	"github.com/faresbyte/tawseel-task-system/internal/config"
	"github.com/faresbyte/tawseel-task-system/internal/messaging/kafka"
	"github.com/faresbyte/tawseel-task-system/internal/rbac"
	"github.com/faresbyte/tawseel-task-system/internal/report"
	"github.com/faresbyte/tawseel-task-system/internal/role"
	"github.com/faresbyte/tawseel-task-system/internal/routine"
	"github.com/faresbyte/tawseel-task-system/internal/task"
	"github.com/faresbyte/tawseel-task-system/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) error {
	// --- Repositories ---
	roleRepo := role.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	routineRepo := routine.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo, cfg.Auth)
	roleService := role.NewService(db, roleRepo)
	userService := user.NewService(db, userRepo)
	taskService := task.NewService(db, taskRepo)
	routineService := routine.NewService(db, routineRepo)
	assignmentService := assignment.NewService(db, assignmentRepo, routineRepo, outboxRepo, cfg.Org.Location())
	reportService := report.NewService(assignmentRepo, userRepo, rdb, cfg.Report.CacheTTL)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	roleHandler := role.NewHandler(roleService)
	userHandler := user.NewHandler(userService)
	taskHandler := task.NewHandler(taskService)
	routineHandler := routine.NewHandler(routineService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	jwtSecret := cfg.Auth.JWTSecret
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, jwtSecret)
		role.RegisterRoutes(api, roleHandler, jwtSecret, enforcer)
		user.RegisterRoutes(api, userHandler, jwtSecret, enforcer)
		task.RegisterRoutes(api, taskHandler, jwtSecret, enforcer)
		routine.RegisterRoutes(api, routineHandler, jwtSecret, enforcer)
		assignment.RegisterRoutes(api, assignmentHandler, jwtSecret, enforcer, rdb)
		report.RegisterRoutes(api, reportHandler, jwtSecret, enforcer)
	}

	return nil
}
