package audit

import (
	"go-elms/internal/authz"
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authzService authz.Service,
) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", middleware.Authorize(authzService, authz.ResourceAudit, authz.ActionRead), handler.GetAll)
	}
}
