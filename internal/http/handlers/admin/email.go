package admin

import (
	"errors"

	"github.com/swiftcart/internal/http/response"
	"github.com/swiftcart/internal/service"

	"github.com/gin-gonic/gin"
)

// SendTestEmailRequest SMTP 测试邮件请求
type SendTestEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendTestEmail 发送 SMTP 配置测试邮件
func (h *Handler) SendTestEmail(c *gin.Context) {
	var req SendTestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.EmailService.SendCustomEmail(req.To, req.Subject, req.Body); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled):
			respondError(c, response.CodeBadRequest, "email service disabled", nil)
		case errors.Is(err, service.ErrEmailServiceNotConfigured):
			respondError(c, response.CodeBadRequest, "email service not configured", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "email address invalid", nil)
		default:
			respondError(c, response.CodeInternal, "email send failed", err)
		}
		return
	}
	response.Success(c, gin.H{"sent": true})
}
