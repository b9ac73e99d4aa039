package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/swiftcart/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart models failed: %v", err)
	}
	return NewCartRepository(db), db
}

func TestGetOrCreateByUserLazyCreation(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	cart, err := repo.GetOrCreateByUser(42)
	if err != nil {
		t.Fatalf("GetOrCreateByUser error: %v", err)
	}
	if cart.ID == 0 || cart.UserID != 42 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	again, err := repo.GetOrCreateByUser(42)
	if err != nil {
		t.Fatalf("GetOrCreateByUser second call error: %v", err)
	}
	if again.ID != cart.ID {
		t.Fatalf("expected same cart %d, got %d", cart.ID, again.ID)
	}

	var count int64
	if err := db.Model(&models.Cart{}).Where("user_id = ?", 42).Count(&count).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one cart, got %d", count)
	}
}

func TestGetWithItemsPreloadsProducts(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createTestProduct(t, db, "Desk Lamp", "39.99", 20)

	cart, err := repo.GetOrCreateByUser(7)
	if err != nil {
		t.Fatalf("GetOrCreateByUser error: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("CreateItem error: %v", err)
	}

	loaded, err := repo.GetWithItems(7)
	if err != nil {
		t.Fatalf("GetWithItems error: %v", err)
	}
	if loaded == nil || len(loaded.Items) != 1 {
		t.Fatalf("unexpected cart items: %+v", loaded)
	}
	if loaded.Items[0].Product == nil || loaded.Items[0].Product.Name != "Desk Lamp" {
		t.Fatalf("expected preloaded product, got %+v", loaded.Items[0].Product)
	}
}

func TestGetWithItemsMissingCart(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	cart, err := repo.GetWithItems(999)
	if err != nil {
		t.Fatalf("GetWithItems error: %v", err)
	}
	if cart != nil {
		t.Fatalf("expected nil cart, got %+v", cart)
	}
}

func TestClearItems(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	first := createTestProduct(t, db, "USB-C Hub", "49.99", 3)
	second := createTestProduct(t, db, "Headphones", "199.99", 12)

	cart, err := repo.GetOrCreateByUser(5)
	if err != nil {
		t.Fatalf("GetOrCreateByUser error: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("CreateItem error: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: second.ID, Quantity: 2}); err != nil {
		t.Fatalf("CreateItem error: %v", err)
	}

	if err := repo.ClearItems(cart.ID); err != nil {
		t.Fatalf("ClearItems error: %v", err)
	}
	var count int64
	if err := db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cart, got %d items", count)
	}
}
