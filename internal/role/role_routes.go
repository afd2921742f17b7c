package role

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
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware(jwtSecret))
	{
		roles.GET("", middleware.Authorize(enforcer, "role", "manage"), handler.GetAll)
		roles.GET("/:id", middleware.Authorize(enforcer, "role", "manage"), handler.GetById)
		roles.POST("", middleware.Authorize(enforcer, "role", "manage"), handler.Create)
		roles.PUT("/:id", middleware.Authorize(enforcer, "role", "manage"), handler.Update)
		roles.DELETE("/:id", middleware.Authorize(enforcer, "role", "manage"), handler.Delete)
	}
}
