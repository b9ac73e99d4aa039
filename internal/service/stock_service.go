package service

import (
	"errors"

	"github.com/swiftcart/internal/logger"
	"github.com/swiftcart/internal/models"
	"github.com/swiftcart/internal/queue"
	"github.com/swiftcart/internal/repository"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// LowStockNotifier 低库存告警投递接口，由队列客户端实现。
type LowStockNotifier interface {
	EnqueueLowStockNotify(payload queue.LowStockNotifyPayload, opts ...asynq.Option) error
}

// StockService 库存服务
type StockService struct {
	productRepo repository.ProductRepository
	notifier    LowStockNotifier
	threshold   int
}

// NewStockService 创建库存服务
func NewStockService(productRepo repository.ProductRepository, notifier LowStockNotifier, threshold int) *StockService {
	if threshold < 0 {
		threshold = 0
	}
	return &StockService{
		productRepo: productRepo,
		notifier:    notifier,
		threshold:   threshold,
	}
}

// Threshold 低库存阈值
func (s *StockService) Threshold() int {
	return s.threshold
}

// HasStock 判断库存是否满足需求数量
func (s *StockService) HasStock(product *models.Product, quantity int) bool {
	if product == nil || quantity <= 0 {
		return false
	}
	return product.StockQuantity >= quantity
}

// IsLowStock 判断库存是否处于告警线及以下
func (s *StockService) IsLowStock(product *models.Product) bool {
	return product != nil && product.StockQuantity <= s.threshold
}

// Decrement 扣减库存，扣减后处于告警线及以下时发出低库存告警。
// 扣减量超出现有库存时库存落到 0，不产生负数。
func (s *StockService) Decrement(productID uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	after, err := s.productRepo.DecrementStock(productID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	s.NotifyIfLowStock(after)
	return after, nil
}

// Increment 增加库存（补货）
func (s *StockService) Increment(productID uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.IncrementStock(productID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// NotifyIfLowStock 库存处于告警线及以下时投递低库存告警。
// 每次扣减后都检查，投递失败只记日志，不影响主流程。
func (s *StockService) NotifyIfLowStock(product *models.Product) {
	if product == nil || s.notifier == nil {
		return
	}
	if product.StockQuantity > s.threshold {
		return
	}
	payload := queue.LowStockNotifyPayload{
		ProductID:     product.ID,
		ProductName:   product.Name,
		StockQuantity: product.StockQuantity,
		Threshold:     s.threshold,
	}
	if err := s.notifier.EnqueueLowStockNotify(payload, asynq.MaxRetry(5)); err != nil {
		logger.Warnw("low_stock_notify_enqueue_failed",
			"product_id", product.ID,
			"stock_quantity", product.StockQuantity,
			"error", err,
		)
	}
}
