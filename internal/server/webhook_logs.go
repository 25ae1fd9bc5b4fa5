package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/turmapay/turmapay/internal/audit/domain"
)

func (s *Server) ListWebhookLogs(c *gin.Context) {
	var filter auditdomain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items, pageInfo, err := s.auditSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"webhook_logs": items,
		"page_info":    pageInfo,
	})
}
