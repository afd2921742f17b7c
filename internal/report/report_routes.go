package report

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
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(jwtSecret))
	{
		reports.GET("/overview", middleware.Authorize(enforcer, "report", "read"), handler.GetOverview)
		reports.GET("/export", middleware.Authorize(enforcer, "report", "read"), handler.Export)
	}
}
