package assignment

import (
	"github.com/faresbyte/tawseel-task-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	jwtSecret string,
	enforcer middleware.Enforcer,
	rdb *redis.Client,
) {
	assignments := r.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware(jwtSecret), middleware.ExtractUserID())
	{
		// Employee surface
		assignments.GET("/today", middleware.Authorize(enforcer, "assignment", "read_own"), handler.GetToday)
		assignments.POST("/:id/done", middleware.Authorize(enforcer, "assignment", "complete"), handler.MarkDone)
		assignments.POST("/:id/reject", middleware.Authorize(enforcer, "assignment", "reject"), handler.Reject)

		// Admin surface
		assignments.GET("", middleware.Authorize(enforcer, "assignment", "audit"), handler.GetAll)
		assignments.POST("", middleware.Authorize(enforcer, "assignment", "assign"), middleware.Idempotency(rdb), handler.AssignBatch)
		assignments.POST("/:id/deficiency", middleware.Authorize(enforcer, "assignment", "audit"), handler.MarkDeficient)
		assignments.DELETE("/:id", middleware.Authorize(enforcer, "assignment", "delete"), handler.Delete)
	}
}
