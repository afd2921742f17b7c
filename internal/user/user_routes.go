package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtSecret))
	{
		users.GET("", middleware.Authorize(enforcer, "user", "manage"), handler.GetAll)
		users.GET("/:id", middleware.Authorize(enforcer, "user", "manage"), handler.GetById)
		users.POST("", middleware.Authorize(enforcer, "user", "manage"), handler.Create)
		users.PUT("/:id", middleware.Authorize(enforcer, "user", "manage"), handler.Update)
		users.PATCH("/:id/disabled", middleware.Authorize(enforcer, "user", "manage"), handler.SetDisabled)
		users.DELETE("/:id", middleware.Authorize(enforcer, "user", "manage"), handler.Delete)
	}
}
