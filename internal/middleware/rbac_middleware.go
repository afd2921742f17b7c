package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Enforcer is a local interface so the middleware does not depend on
// casbin directly. The rbac package satisfies it.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// Authorize checks the authenticated user's type against the static
// policy for the given resource and action.
func Authorize(e Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := c.GetString("user_type")
		if userType == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		allowed, err := e.Enforce(userType, resource, action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
