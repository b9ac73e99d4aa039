package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/swiftcart/internal/models"
	"github.com/swiftcart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	models.DB = db
	return db
}

func newTestCartService(db *gorm.DB) *CartService {
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
}

func createServiceTestProduct(t *testing.T, db *gorm.DB, name string, price string, stock int) *models.Product {
	t.Helper()
	amount, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	product := &models.Product{
		Name:          name,
		Price:         models.NewMoneyFromDecimal(amount),
		StockQuantity: stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestGetCartLazyCreation(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)

	detail, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if detail.CartID == 0 || detail.UserID != 1 {
		t.Fatalf("unexpected cart detail: %+v", detail)
	}
	if len(detail.Items) != 0 || detail.TotalQuantity != 0 {
		t.Fatalf("expected empty cart, got %+v", detail)
	}
	if detail.Total.String() != "0.00" {
		t.Fatalf("expected total 0.00, got %s", detail.Total.String())
	}
}

func TestAddItemMergesQuantity(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)
	product := createServiceTestProduct(t, db, "Wireless Mouse", "29.99", 50)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	detail, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("AddItem second call error: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected single merged line, got %d", len(detail.Items))
	}
	if detail.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", detail.Items[0].Quantity)
	}
}

func TestAddItemChecksResultingQuantity(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)
	product := createServiceTestProduct(t, db, "USB-C Hub", "49.99", 3)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	// 已有 2 件，再加 2 件超过库存 3
	_, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// 库存不足时购物车保持原状
	detail, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Quantity != 2 {
		t.Fatalf("expected cart unchanged with quantity 2, got %+v", detail.Items)
	}
}

func TestAddItemProductNotFound(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)

	_, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: 9999, Quantity: 1})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddItemInvalidQuantity(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)
	product := createServiceTestProduct(t, db, "Desk Lamp", "39.99", 20)

	_, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 0})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)
	product := createServiceTestProduct(t, db, "Headphones", "199.99", 12)

	detail, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	itemID := detail.Items[0].ItemID

	updated, err := svc.UpdateItemQuantity(1, itemID, 5)
	if err != nil {
		t.Fatalf("UpdateItemQuantity error: %v", err)
	}
	if updated.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", updated.Items[0].Quantity)
	}

	_, err = svc.UpdateItemQuantity(1, itemID, 100)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestUpdateItemQuantityMissingItem(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)

	_, err := svc.UpdateItemQuantity(1, 9999, 1)
	if !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)
	product := createServiceTestProduct(t, db, "Phone Stand", "19.99", 7)

	detail, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	after, err := svc.RemoveItem(1, detail.Items[0].ItemID)
	if err != nil {
		t.Fatalf("RemoveItem error: %v", err)
	}
	if len(after.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", after.Items)
	}

	_, err = svc.RemoveItem(1, detail.Items[0].ItemID)
	if !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartTotal(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)
	first := createServiceTestProduct(t, db, "Widget", "10.00", 100)
	second := createServiceTestProduct(t, db, "Gadget", "20.00", 100)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: first.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	detail, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: second.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if detail.Total.String() != "80.00" {
		t.Fatalf("expected total 80.00, got %s", detail.Total.String())
	}
	if detail.TotalQuantity != 5 {
		t.Fatalf("expected total quantity 5, got %d", detail.TotalQuantity)
	}
}

func TestClearCart(t *testing.T) {
	db := setupServiceTest(t)
	svc := newTestCartService(db)
	product := createServiceTestProduct(t, db, "Monitor 27\"", "449.99", 2)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := svc.Clear(1); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	detail, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", detail.Items)
	}
}
