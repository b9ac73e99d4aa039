package service

import (
	"time"

	"github.com/swiftcart/internal/models"
	"github.com/swiftcart/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ItemID    uint            `json:"item_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	Subtotal  models.Money    `json:"subtotal"`
	Product   *models.Product `json:"product"`
}

// CartDetail 购物车详情（用于响应）
type CartDetail struct {
	CartID        uint             `json:"cart_id"`
	UserID        uint             `json:"user_id"`
	Items         []CartItemDetail `json:"items"`
	TotalQuantity int              `json:"total_quantity"`
	Total         models.Money     `json:"total"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart 获取用户购物车详情，首次访问时惰性创建空购物车。
func (s *CartService) GetCart(userID uint) (*CartDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	loaded, err := s.cartRepo.GetWithItems(userID)
	if err != nil {
		return nil, err
	}
	if loaded != nil {
		cart = loaded
	}
	return buildCartDetail(cart), nil
}

// AddItem 添加商品到购物车；同商品重复加购合并数量。
// 库存校验针对合并后的总数量，不足时购物车保持原状。
func (s *CartService) AddItem(input AddCartItemInput) (*CartDetail, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidUser
	}
	if input.ProductID == 0 || input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.cartRepo.GetOrCreateByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	existing, err := s.cartRepo.GetItemByProduct(cart.ID, input.ProductID)
	if err != nil {
		return nil, err
	}

	resulting := input.Quantity
	if existing != nil {
		resulting += existing.Quantity
	}
	if product.StockQuantity < resulting {
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, resulting); err != nil {
			return nil, err
		}
	} else {
		now := time.Now()
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}
	return s.GetCart(input.UserID)
}

// UpdateItemQuantity 覆盖购物车项数量，按目标数量校验库存。
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*CartDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.StockQuantity < quantity {
		return nil, ErrInsufficientStock
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) (*CartDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidUser
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.ClearItems(cart.ID)
}

// buildCartDetail 汇总购物车项并按当前价格计算合计
func buildCartDetail(cart *models.Cart) *CartDetail {
	detail := &CartDetail{
		CartID: cart.ID,
		UserID: cart.UserID,
		Items:  make([]CartItemDetail, 0, len(cart.Items)),
		Total:  models.NewMoneyFromDecimal(decimal.Zero),
	}
	total := decimal.Zero
	for _, item := range cart.Items {
		unitPrice := models.NewMoneyFromDecimal(decimal.Zero)
		if item.Product != nil {
			unitPrice = item.Product.Price
		}
		subtotal := unitPrice.Decimal.Mul(quantityDecimal(item.Quantity))
		total = total.Add(subtotal)
		detail.TotalQuantity += item.Quantity
		detail.Items = append(detail.Items, CartItemDetail{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  models.NewMoneyFromDecimal(subtotal),
			Product:   item.Product,
		})
	}
	detail.Total = models.NewMoneyFromDecimal(total)
	return detail
}

// quantityDecimal 数量转 decimal，金额计算统一走 decimal 避免浮点误差。
func quantityDecimal(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
