package middleware

import (
	"net/http"

	"go-elms/internal/authz"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route on one (resource, action) pair. The role comes
// from the validated token claims; unknown role strings are rejected here
// instead of falling through a string comparison somewhere below.
func Authorize(service authz.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
			c.Abort()
			return
		}

		role, err := authz.ParseRole(roleStr.(string))
		if err != nil {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Role not recognized", nil)
			c.Abort()
			return
		}

		allowed, err := service.Authorize(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
