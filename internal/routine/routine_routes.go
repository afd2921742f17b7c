package routine

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
	routines := r.Group("/routines")
	routines.Use(middleware.AuthMiddleware(jwtSecret), middleware.ExtractUserID())
	{
		routines.GET("", middleware.Authorize(enforcer, "routine", "manage"), handler.GetAll)
		routines.GET("/:id", middleware.Authorize(enforcer, "routine", "manage"), handler.GetById)
		routines.POST("", middleware.Authorize(enforcer, "routine", "manage"), handler.CreateBatch)
		routines.PATCH("/:id/active", middleware.Authorize(enforcer, "routine", "manage"), handler.SetActive)
		routines.DELETE("/:id", middleware.Authorize(enforcer, "routine", "manage"), handler.Delete)
	}
}
