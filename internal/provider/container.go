package provider

import (
	"github.com/ventas-next/internal/authz"
	"github.com/ventas-next/internal/cache"
	"github.com/ventas-next/internal/config"
	"github.com/ventas-next/internal/logger"
	"github.com/ventas-next/internal/models"
	"github.com/ventas-next/internal/queue"
	"github.com/ventas-next/internal/repository"
	"github.com/ventas-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo           repository.AdminRepository
	UserRepo            repository.UserRepository
	EmailVerifyCodeRepo repository.EmailVerifyCodeRepository
	CountryRepo         repository.CountryRepository
	StateRepo           repository.StateRepository
	CityRepo            repository.CityRepository
	CategoryRepo        repository.CategoryRepository
	ProductRepo         repository.ProductRepository
	CartRepo            repository.CartRepository
	OrderRepo           repository.OrderRepository
	UserLoginLogRepo    repository.UserLoginLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	CountryService      *service.CountryService
	StateService        *service.StateService
	CityService         *service.CityService
	CategoryService     *service.CategoryService
	ProductService      *service.ProductService
	CartService         *service.CartService
	OrderService        *service.OrderService
	UserLoginLogService *service.UserLoginLogService
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
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.EmailVerifyCodeRepo = repository.NewEmailVerifyCodeRepository(db)
	c.CountryRepo = repository.NewCountryRepository(db)
	c.StateRepo = repository.NewStateRepository(db)
	c.CityRepo = repository.NewCityRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.CityRepo, c.EmailVerifyCodeRepo, c.EmailService, c.QueueClient)
	c.CountryService = service.NewCountryService(c.CountryRepo)
	c.StateService = service.NewStateService(c.StateRepo, c.CountryRepo)
	c.CityService = service.NewCityService(c.CityRepo, c.StateRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.QueueClient)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
}
