package admin

import (
	"errors"
	"strconv"

	"github.com/swiftcart/internal/cache"
	"github.com/swiftcart/internal/http/response"
	"github.com/swiftcart/internal/logger"
	"github.com/swiftcart/internal/models"
	"github.com/swiftcart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name          string       `json:"name" binding:"required"`
	Description   string       `json:"description"`
	Price         models.Money `json:"price" binding:"required"`
	StockQuantity int          `json:"stock_quantity"`
}

// AdjustStockRequest 库存调整请求
type AdjustStockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.CreateProduct(service.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			respondError(c, response.CodeBadRequest, "product invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "product create failed", err)
		return
	}
	response.Success(c, product)
}

// IncrementStock 补货
func (h *Handler) IncrementStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "product id invalid", err)
		return
	}
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.StockService.Increment(uint(id), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "quantity invalid", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		default:
			respondError(c, response.CodeInternal, "stock increment failed", err)
		}
		return
	}
	invalidateProductCache(c, product.ID)
	respondStockAdjusted(c, h, product)
}

// DecrementStock 扣减库存
func (h *Handler) DecrementStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "product id invalid", err)
		return
	}
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.StockService.Decrement(uint(id), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "quantity invalid", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		default:
			respondError(c, response.CodeInternal, "stock decrement failed", err)
		}
		return
	}
	invalidateProductCache(c, product.ID)
	respondStockAdjusted(c, h, product)
}

// respondStockAdjusted 返回调整后的商品及告警状态
func respondStockAdjusted(c *gin.Context, h *Handler, product *models.Product) {
	response.Success(c, gin.H{
		"product":   product,
		"low_stock": h.StockService.IsLowStock(product),
		"threshold": h.StockService.Threshold(),
	})
}

// invalidateProductCache 库存调整后清理商品详情缓存
func invalidateProductCache(c *gin.Context, productID uint) {
	if err := cache.Del(c.Request.Context(), cache.ProductDetailKey(productID)); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "product_id", productID, "error", err)
	}
}
