package main

import (
	"github.com/swiftcart/internal/config"
	"github.com/swiftcart/internal/logger"
	"github.com/swiftcart/internal/models"

	"github.com/shopspring/decimal"
)

type seedProduct struct {
	Name        string
	Description string
	Price       string
	Stock       int
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	products := []seedProduct{
		{"Laptop", "High-performance laptop for professionals", "1299.99", 15},
		{"Wireless Mouse", "Ergonomic wireless mouse with precision tracking", "29.99", 50},
		{"Mechanical Keyboard", "RGB mechanical keyboard with Cherry MX switches", "149.99", 25},
		{"USB-C Hub", "7-in-1 USB-C hub with HDMI and card reader", "49.99", 3},
		{"Webcam HD", "1080p HD webcam with auto-focus", "79.99", 8},
		{"Headphones", "Noise-cancelling over-ear headphones", "199.99", 12},
		{"Monitor 27\"", "4K UHD 27-inch monitor with HDR", "449.99", 2},
		{"Desk Lamp", "LED desk lamp with adjustable brightness", "39.99", 20},
		{"External SSD 1TB", "Portable SSD with fast read/write speeds", "119.99", 0},
		{"Phone Stand", "Adjustable phone stand for desk", "19.99", 7},
	}

	for _, item := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", item.Name)
			continue
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			stdLog.Printf("Invalid price for %s: %v", item.Name, err)
			continue
		}
		product := models.Product{
			Name:          item.Name,
			Description:   item.Description,
			Price:         models.NewMoneyFromDecimal(price),
			StockQuantity: item.Stock,
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s", item.Name)
	}

	stdLog.Printf("Seed completed")
}
