package report

import (
	"fmt"
	"net/http"
	"time"

	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func filterFromQuery(c *gin.Context) Filter {
	return Filter{
		EmployeeID: c.Query("employee_id"),
		Status:     c.Query("status"),
		Month:      c.Query("month"),
	}
}

// Export streams the filtered history as json (default), csv or pdf.
func (h *Handler) Export(c *gin.Context) {
	f := filterFromQuery(c)
	stamp := time.Now().Format("2006-01-02")

	switch c.DefaultQuery("format", "json") {
	case "csv":
		data, err := h.service.RenderCSV(c.Request.Context(), f)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=leave_report_%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv", data)

	case "pdf":
		data, err := h.service.RenderPDF(c.Request.Context(), f)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=leave_report_%s.pdf", stamp))
		c.Data(http.StatusOK, "application/pdf", data)

	default:
		rows, err := h.service.Project(c.Request.Context(), f)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, rows, nil)
	}
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary, nil)
}
