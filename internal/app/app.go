package app

import (
	"github.com/faresbyte/tawseel-task-system/internal/config"
	"github.com/faresbyte/tawseel-task-system/internal/middleware"
	"github.com/faresbyte/tawseel-task-system/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure, services and routes into the router.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		cfg.Database.MaxRetries,
	)
	if err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := migrate(gormDB, db); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
	if err != nil {
		return err
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
	)

	return registerModules(router, db, gormDB, rdb, cfg)
}
