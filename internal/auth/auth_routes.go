package auth

import (
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/auth")
	{
		// Credential endpoints are brute-force targets.
		limited := middleware.RateLimitByIP(5, 10)

		group.POST("/login", limited, handler.Login)
		group.POST("/refresh", handler.Refresh)
		group.POST("/forgot-password", limited, handler.ForgotPassword)
		group.POST("/reset-password", limited, handler.ResetPassword)

		group.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
