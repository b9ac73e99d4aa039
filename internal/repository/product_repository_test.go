package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/swiftcart/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product model failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price string, stock int) *models.Product {
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

func TestDecrementStock(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, db, "Laptop", "1299.99", 10)

	after, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("DecrementStock error: %v", err)
	}
	if after.StockQuantity != 7 {
		t.Fatalf("expected stock 7, got %d", after.StockQuantity)
	}
}

func TestDecrementStockFloorsAtZero(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, db, "Webcam HD", "79.99", 5)

	after, err := repo.DecrementStock(product.ID, 10)
	if err != nil {
		t.Fatalf("DecrementStock error: %v", err)
	}
	if after.StockQuantity != 0 {
		t.Fatalf("expected stock floored at 0, got %d", after.StockQuantity)
	}
}

func TestDecrementStockMissingProduct(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	_, err := repo.DecrementStock(9999, 1)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestIncrementStock(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, db, "Phone Stand", "19.99", 7)

	after, err := repo.IncrementStock(product.ID, 13)
	if err != nil {
		t.Fatalf("IncrementStock error: %v", err)
	}
	if after.StockQuantity != 20 {
		t.Fatalf("expected stock 20, got %d", after.StockQuantity)
	}
}

func TestListProductsFilterBySearch(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	createTestProduct(t, db, "Wireless Mouse", "29.99", 50)
	createTestProduct(t, db, "Mechanical Keyboard", "149.99", 25)
	createTestProduct(t, db, "Wireless Headphones", "199.99", 12)

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "Wireless"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("expected 2 products, got total=%d len=%d", total, len(products))
	}
}
