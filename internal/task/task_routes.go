package task

import (
	"github.com/faresbyte/tawseel-task-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	jwtSecret string,
	enforcer middleware.Enforcer,
) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware(jwtSecret), middleware.ExtractUserID())
	{
		tasks.GET("", middleware.Authorize(enforcer, "task", "manage"), handler.GetAll)
		tasks.GET("/:id", middleware.Authorize(enforcer, "task", "manage"), handler.GetById)
		tasks.POST("", middleware.Authorize(enforcer, "task", "manage"), handler.Create)
		tasks.PUT("/:id", middleware.Authorize(enforcer, "task", "manage"), handler.Update)
		tasks.POST("/:id/subtasks", middleware.Authorize(enforcer, "task", "manage"), handler.AddSubtask)
		tasks.DELETE("/:id/subtasks/:subtaskId", middleware.Authorize(enforcer, "task", "manage"), handler.RemoveSubtask)
		tasks.DELETE("/:id", middleware.Authorize(enforcer, "task", "manage"), handler.Delete)
	}
}
