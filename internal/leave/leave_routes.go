package leave

import (
	"go-elms/internal/authz"
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authzService authz.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		canCreate := middleware.Authorize(authzService, authz.ResourceLeave, authz.ActionCreate)
		canEdit := middleware.Authorize(authzService, authz.ResourceLeave, authz.ActionEdit)
		canCancel := middleware.Authorize(authzService, authz.ResourceLeave, authz.ActionCancel)
		canDecide := middleware.Authorize(authzService, authz.ResourceLeave, authz.ActionDecide)
		canReadOwn := middleware.Authorize(authzService, authz.ResourceLeave, authz.ActionReadOwn)

		createChain := []gin.HandlerFunc{canCreate}
		if rdb != nil {
			createChain = append(createChain, middleware.Idempotency(rdb))
		}

		leaves.POST("", append(createChain, handler.Create)...)
		leaves.GET("", canReadOwn, handler.GetAll)
		leaves.GET("/:id", canReadOwn, handler.GetById)
		leaves.PUT("/:id", canEdit, handler.Edit)
		leaves.POST("/:id/cancel", canCancel, handler.Cancel)
		leaves.POST("/:id/decision", canDecide, handler.Decide)
	}
}
