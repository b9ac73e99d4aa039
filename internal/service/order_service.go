package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/swiftcart/internal/models"
	"github.com/swiftcart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	stockService *StockService
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	stockService *StockService,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		stockService: stockService,
	}
}

// CreateOrderFromCart 从购物车结算生成订单。
// 整个过程在单个数据库事务内完成：创建订单与订单项（冻结下单时价格）、
// 逐项扣减库存、清空购物车。任何一步失败全部回滚，不留半成品状态。
// 库存扣减最低到 0：并发结算导致超卖时订单照常成立，库存归零。
func (s *OrderService) CreateOrderFromCart(userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}

	var orderID uint
	var decremented []*models.Product
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		cart, err := cartRepo.LockWithItems(userID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return ErrEmptyCart
		}

		total := decimal.Zero
		now := time.Now()
		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, cartItem := range cart.Items {
			product, err := productRepo.GetByID(cartItem.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}
			subtotal := product.Price.Decimal.Mul(quantityDecimal(cartItem.Quantity))
			total = total.Add(subtotal)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  cartItem.Quantity,
				Price:     product.Price,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}

		order := &models.Order{
			OrderNo:   generateOrderNo(),
			UserID:    userID,
			Total:     models.NewMoneyFromDecimal(total),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		orderID = order.ID

		decremented = decremented[:0]
		for _, cartItem := range cart.Items {
			after, err := productRepo.DecrementStock(cartItem.ProductID, cartItem.Quantity)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			if err != nil {
				return err
			}
			decremented = append(decremented, after)
		}

		return cartRepo.ClearItems(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	// 低库存告警在事务提交后投递，避免回滚后发出误报。
	if s.stockService != nil {
		for _, product := range decremented {
			s.stockService.NotifyIfLowStock(product)
		}
	}

	return s.orderRepo.GetByID(orderID)
}

// GetOrderByUser 获取用户订单详情
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByNo 按订单号获取订单（管理端用，不校验归属）
func (s *OrderService) GetOrderByNo(orderNo string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 分页查询用户订单
func (s *OrderService) ListOrdersByUser(userID uint, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidUser
	}
	return s.orderRepo.ListByUser(userID, filter)
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SC%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
