package public

import (
	"errors"
	"strconv"
	"time"

	"github.com/swiftcart/internal/cache"
	"github.com/swiftcart/internal/http/response"
	"github.com/swiftcart/internal/logger"
	"github.com/swiftcart/internal/models"
	"github.com/swiftcart/internal/repository"
	"github.com/swiftcart/internal/service"

	"github.com/gin-gonic/gin"
)

// productCacheTTL 商品详情缓存时长。库存展示允许短暂滞后，下单路径始终直查数据库。
const productCacheTTL = 60 * time.Second

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	products, total, err := h.ProductService.ListProducts(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	response.SuccessWithPage(c, gin.H{"items": products}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProduct 获取商品详情（短 TTL 缓存）
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "product id invalid", err)
		return
	}

	var cached models.Product
	hit, err := cache.GetJSON(c.Request.Context(), cache.ProductDetailKey(uint(id)), &cached)
	if err != nil {
		logger.Warnw("product_cache_read_failed", "product_id", id, "error", err)
	}
	if hit {
		response.Success(c, &cached)
		return
	}

	product, err := h.ProductService.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	if err := cache.SetJSON(c.Request.Context(), cache.ProductDetailKey(product.ID), product, productCacheTTL); err != nil {
		logger.Warnw("product_cache_write_failed", "product_id", product.ID, "error", err)
	}
	response.Success(c, product)
}
