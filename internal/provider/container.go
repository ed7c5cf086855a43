package provider

import (
	"github.com/tienda-next/internal/cache"
	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/queue"
	"github.com/tienda-next/internal/repository"
	"github.com/tienda-next/internal/service"
)

// Container holds every repository and service, wired once at startup
// and shared by the HTTP handlers and the queue consumer.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CustomerRepo      repository.CustomerRepository
	ProductRepo       repository.ProductRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository
	InvoiceRepo       repository.InvoiceRepository
	PaymentRepo       repository.PaymentRepository
	PaymentMethodRepo repository.PaymentMethodRepository

	// Services
	CustomerAuthService  *service.CustomerAuthService
	ProductService       *service.ProductService
	CartService          *service.CartService
	OrderService         *service.OrderService
	InventoryService     *service.InventoryService
	ShippingService      *service.ShippingService
	PaymentMethodService *service.PaymentMethodService
	ChatbotService       *service.ChatbotService
}

// NewContainer builds the dependency graph.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.InvoiceRepo = repository.NewInvoiceRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.PaymentMethodRepo = repository.NewPaymentMethodRepository(db)
}

func (c *Container) initServices() {
	c.CustomerAuthService = service.NewCustomerAuthService(c.Config, c.CustomerRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.InventoryService = service.NewInventoryService(c.ProductRepo, c.CartRepo, c.OrderRepo)
	c.ShippingService = service.NewShippingService(c.OrderRepo)
	c.PaymentMethodService = service.NewPaymentMethodService(c.PaymentMethodRepo)
	c.ChatbotService = service.NewChatbotService(c.Config.Chatbot, c.ProductRepo)

	invoiceNumbers := service.NewInvoiceNumberGenerator(c.InvoiceRepo, c.Config.Invoice.Prefix)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.ProductRepo,
		c.InvoiceRepo,
		c.PaymentRepo,
		c.PaymentMethodRepo,
		c.CustomerRepo,
		invoiceNumbers,
		c.InventoryService,
		c.QueueClient,
		c.Config.Order.CancelWindowDays,
	)
}
