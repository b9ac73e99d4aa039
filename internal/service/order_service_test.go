package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/swiftcart/internal/models"
	"github.com/swiftcart/internal/repository"

	"gorm.io/gorm"
)

func newTestOrderService(db *gorm.DB, stockService *StockService) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		stockService,
	)
}

func TestCreateOrderFromCart(t *testing.T) {
	db := setupServiceTest(t)
	cartSvc := newTestCartService(db)
	orderSvc := newTestOrderService(db, nil)
	first := createServiceTestProduct(t, db, "Widget", "10.00", 100)
	second := createServiceTestProduct(t, db, "Gadget", "20.00", 50)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, ProductID: first.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, ProductID: second.ID, Quantity: 3}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	order, err := orderSvc.CreateOrderFromCart(1)
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}
	if order.Total.String() != "80.00" {
		t.Fatalf("expected total 80.00, got %s", order.Total.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	if !strings.HasPrefix(order.OrderNo, "SC") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}

	// 库存已扣减
	var firstAfter, secondAfter models.Product
	if err := db.First(&firstAfter, first.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if err := db.First(&secondAfter, second.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if firstAfter.StockQuantity != 98 || secondAfter.StockQuantity != 47 {
		t.Fatalf("unexpected stock after checkout: %d, %d", firstAfter.StockQuantity, secondAfter.StockQuantity)
	}

	// 购物车已清空
	detail, err := cartSvc.GetCart(1)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("expected cart cleared after checkout, got %+v", detail.Items)
	}
}

func TestCreateOrderFreezesPrices(t *testing.T) {
	db := setupServiceTest(t)
	cartSvc := newTestCartService(db)
	orderSvc := newTestOrderService(db, nil)
	product := createServiceTestProduct(t, db, "Widget", "10.00", 100)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.CreateOrderFromCart(1)
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}

	// 下单后涨价不影响已创建订单的金额
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", "99.99").Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	reloaded, err := orderSvc.GetOrderByUser(order.ID, 1)
	if err != nil {
		t.Fatalf("GetOrderByUser error: %v", err)
	}
	if reloaded.Items[0].Price.String() != "10.00" {
		t.Fatalf("expected frozen price 10.00, got %s", reloaded.Items[0].Price.String())
	}
	if reloaded.Total.String() != "10.00" {
		t.Fatalf("expected total 10.00, got %s", reloaded.Total.String())
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := setupServiceTest(t)
	orderSvc := newTestOrderService(db, nil)

	_, err := orderSvc.CreateOrderFromCart(1)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no orders, got %d", count)
	}
}

func TestCreateOrderStockFloorsAtZero(t *testing.T) {
	db := setupServiceTest(t)
	cartSvc := newTestCartService(db)
	orderSvc := newTestOrderService(db, nil)
	product := createServiceTestProduct(t, db, "Webcam HD", "79.99", 5)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 5}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	// 加购后其他途径扣减库存，结算数量超过剩余库存
	if _, err := repository.NewProductRepository(db).DecrementStock(product.ID, 3); err != nil {
		t.Fatalf("DecrementStock error: %v", err)
	}

	order, err := orderSvc.CreateOrderFromCart(1)
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}
	if order.Total.String() != "399.95" {
		t.Fatalf("expected total 399.95, got %s", order.Total.String())
	}

	var after models.Product
	if err := db.First(&after, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if after.StockQuantity != 0 {
		t.Fatalf("expected stock floored at 0, got %d", after.StockQuantity)
	}
}

func TestCreateOrderRollsBackOnFailure(t *testing.T) {
	db := setupServiceTest(t)
	cartSvc := newTestCartService(db)
	orderSvc := newTestOrderService(db, nil)
	first := createServiceTestProduct(t, db, "Widget", "10.00", 100)
	second := createServiceTestProduct(t, db, "Gadget", "20.00", 50)

	detail, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, ProductID: first.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	// 直接写入一条数量非法的购物车项，让扣减阶段在订单与首个扣减写入之后失败
	badItem := &models.CartItem{CartID: detail.CartID, ProductID: second.ID, Quantity: 0}
	if err := db.Create(badItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}

	if _, err := orderSvc.CreateOrderFromCart(1); err == nil {
		t.Fatalf("expected checkout failure")
	}

	// 全部回滚：无订单、库存未动、购物车保持原状
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders after rollback, got %d", orderCount)
	}
	var firstAfter models.Product
	if err := db.First(&firstAfter, first.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if firstAfter.StockQuantity != 100 {
		t.Fatalf("expected stock unchanged at 100, got %d", firstAfter.StockQuantity)
	}
	var itemCount int64
	if err := db.Model(&models.CartItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if itemCount != 2 {
		t.Fatalf("expected cart intact with 2 items, got %d", itemCount)
	}
}

func TestGetOrderByUserOwnership(t *testing.T) {
	db := setupServiceTest(t)
	cartSvc := newTestCartService(db)
	orderSvc := newTestOrderService(db, nil)
	product := createServiceTestProduct(t, db, "Widget", "10.00", 100)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.CreateOrderFromCart(1)
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}

	_, err = orderSvc.GetOrderByUser(order.ID, 2)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got %v", err)
	}
}

func TestGetOrderByNo(t *testing.T) {
	db := setupServiceTest(t)
	cartSvc := newTestCartService(db)
	orderSvc := newTestOrderService(db, nil)
	product := createServiceTestProduct(t, db, "Widget", "10.00", 100)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.CreateOrderFromCart(1)
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}

	found, err := orderSvc.GetOrderByNo(order.OrderNo)
	if err != nil {
		t.Fatalf("GetOrderByNo error: %v", err)
	}
	if found.ID != order.ID || len(found.Items) != 1 {
		t.Fatalf("unexpected order: %+v", found)
	}

	if _, err := orderSvc.GetOrderByNo("SC00000000000000000000"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := orderSvc.GetOrderByNo("  "); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for blank order no, got %v", err)
	}
}

func TestGenerateOrderNo(t *testing.T) {
	orderNo := generateOrderNo()
	if !strings.HasPrefix(orderNo, "SC") {
		t.Fatalf("expected SC prefix, got %s", orderNo)
	}
	if len(orderNo) != 2+14+6 {
		t.Fatalf("unexpected order no length: %s", orderNo)
	}
}
