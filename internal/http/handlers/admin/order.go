package admin

import (
	"errors"

	"github.com/swiftcart/internal/http/response"
	"github.com/swiftcart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetOrderByNo 按订单号查询订单
func (h *Handler) GetOrderByNo(c *gin.Context) {
	order, err := h.OrderService.GetOrderByNo(c.Param("order_no"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.Success(c, order)
}
