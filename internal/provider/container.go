package provider

import (
	"github.com/pricepulse/internal/cache"
	"github.com/pricepulse/internal/config"
	"github.com/pricepulse/internal/logger"
	"github.com/pricepulse/internal/models"
	"github.com/pricepulse/internal/queue"
	"github.com/pricepulse/internal/repository"
	"github.com/pricepulse/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	ProductRepo      repository.ProductRepository
	UserProductRepo  repository.UserProductRepository
	PriceHistoryRepo repository.PriceHistoryRepository

	// Services
	AuthService        *service.AuthService
	ProductService     *service.ProductService
	UserProductService *service.UserProductService
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
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.UserProductRepo = repository.NewUserProductRepository(db)
	c.PriceHistoryRepo = repository.NewPriceHistoryRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.PriceHistoryRepo, c.QueueClient)
	c.UserProductService = service.NewUserProductService(c.UserProductRepo, c.ProductRepo, c.UserRepo)
}
