package provider

import (
	"github.com/swiftcart/internal/cache"
	"github.com/swiftcart/internal/config"
	"github.com/swiftcart/internal/logger"
	"github.com/swiftcart/internal/models"
	"github.com/swiftcart/internal/queue"
	"github.com/swiftcart/internal/repository"
	"github.com/swiftcart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository

	// Services
	EmailService   *service.EmailService
	StockService   *service.StockService
	ProductService *service.ProductService
	CartService    *service.CartService
	OrderService   *service.OrderService
	SalesService   *service.SalesService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.StockService = service.NewStockService(c.ProductRepo, c.QueueClient, c.Config.Cart.LowStockThreshold)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.StockService)
	c.SalesService = service.NewSalesService(c.OrderRepo, c.Config.Report.Timezone)
}
