package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		manage := middleware.Authorize(authzService, authz.ResourceUser, authz.ActionManage)

		users.GET("", manage, handler.GetAll)
		users.GET("/:id", manage, handler.GetById)
		users.POST("", manage, handler.Create)
		users.PUT("/:id", manage, handler.Update)
		users.PATCH("/:id/status", manage, handler.ToggleStatus)
		users.DELETE("/:id", manage, handler.Delete)

		users.PUT("/me/password", handler.ChangePassword)
	}
}
