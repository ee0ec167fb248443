package report

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
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		export := middleware.Authorize(authzService, authz.ResourceReport, authz.ActionExport)

		reports.GET("/leaves", export, handler.Export)
		reports.GET("/summary", export, handler.Summary)
	}
}
