package admin

import (
	"github.com/swiftcart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDailySales 获取销售日报，date 为空时统计今天。
func (h *Handler) GetDailySales(c *gin.Context) {
	report, err := h.SalesService.GetSalesByDate(c.Query("date"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "sales report failed", err)
		return
	}
	response.Success(c, report)
}
