package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-catalog-api/internal/service"
	resp "go-catalog-api/internal/transport/http/response"
)

type AuditHandler struct {
	audit *service.AuditService
	log   *zap.Logger
}

func NewAuditHandler(audit *service.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, log: log}
}

type auditLogsQ struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

func (h *AuditHandler) List(c *gin.Context) {
	var q auditLogsQ
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	if q.Page < 1 || q.Limit < 1 || q.Limit > 100 {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid pagination parameters: page must be >= 1, limit must be 1-100"))
		return
	}
	page, err := h.audit.Logs(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		writeDomainErr(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(page))
}
