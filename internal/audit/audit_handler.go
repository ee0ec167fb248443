package audit

import (
	"net/http"
	"strconv"

	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{repo: repo, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	entries, total, err := h.repo.FindAll(c.Request.Context(), c.Query("actor_id"), pageSize, (page-1)*pageSize)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("audit list failed", zap.Int("status", httpErr.Status), zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}
