package service

import (
	"strings"
	"time"

	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/queue"
	"github.com/tienda-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// checkout retries on invoice number collisions before giving up.
const maxCheckoutAttempts = 3

// OrderLineInput is one purchased line of a checkout request. When
// UnitPrice is nil the current catalog price is frozen in.
type OrderLineInput struct {
	ProductID uint          `json:"product_id"`
	Quantity  int           `json:"quantity"`
	UnitPrice *models.Money `json:"unit_price"`
}

// CreateOrderInput carries everything checkout needs.
type CreateOrderInput struct {
	CustomerID        uint
	ShippingAddressID *uint
	CartID            *uint
	PaymentMethodID   *uint
	InvoiceNumberHint string
	Total             *models.Money
	Lines             []OrderLineInput
}

// OrderResult is the checkout response payload.
type OrderResult struct {
	Order     *models.Order   `json:"order"`
	InvoiceNo string          `json:"invoice_no"`
	Payment   *models.Payment `json:"payment"`
}

// CancelOrderResult is the cancellation response payload.
type CancelOrderResult struct {
	Message string `json:"message"`
	OrderID uint   `json:"id_orden"`
	Status  string `json:"estado"`
}

// OrderService owns the checkout transaction and the order lifecycle.
type OrderService struct {
	orderRepo         repository.OrderRepository
	productRepo       repository.ProductRepository
	invoiceRepo       repository.InvoiceRepository
	paymentRepo       repository.PaymentRepository
	paymentMethodRepo repository.PaymentMethodRepository
	customerRepo      repository.CustomerRepository
	invoiceNumbers    *InvoiceNumberGenerator
	inventory         *InventoryService
	queueClient       *queue.Client
	cancelWindowDays  int
}

// NewOrderService creates an order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	customerRepo repository.CustomerRepository,
	invoiceNumbers *InvoiceNumberGenerator,
	inventory *InventoryService,
	queueClient *queue.Client,
	cancelWindowDays int,
) *OrderService {
	if cancelWindowDays <= 0 {
		cancelWindowDays = constants.CancelWindowDays
	}
	return &OrderService{
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		invoiceRepo:       invoiceRepo,
		paymentRepo:       paymentRepo,
		paymentMethodRepo: paymentMethodRepo,
		customerRepo:      customerRepo,
		invoiceNumbers:    invoiceNumbers,
		inventory:         inventory,
		queueClient:       queueClient,
		cancelWindowDays:  cancelWindowDays,
	}
}

// CreateOrder runs the checkout transaction: order, items, invoice and
// payment are written together or not at all. Stock is not touched
// here; the finalize task adjusts it afterwards, keyed on the order's
// StockAdjustedAt stamp. Invoice number collisions retry the whole
// transaction.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*OrderResult, error) {
	if input.CustomerID == 0 {
		return nil, ErrInvalidOrderItem
	}
	if len(input.Lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range input.Lines {
		if line.ProductID == 0 || line.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
	}

	if input.ShippingAddressID != nil {
		address, err := s.customerRepo.GetAddressByIDAndCustomer(*input.ShippingAddressID, input.CustomerID)
		if err != nil {
			return nil, err
		}
		if address == nil {
			return nil, ErrAddressNotFound
		}
	}

	paymentMethod, err := s.resolvePaymentMethod(input.CustomerID, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	items, total, err := s.buildOrderItems(input)
	if err != nil {
		return nil, err
	}

	var result *OrderResult
	for attempt := 1; attempt <= maxCheckoutAttempts; attempt++ {
		result, err = s.createOrderOnce(input, items, total, paymentMethod)
		if err == nil {
			break
		}
		if !isDuplicateKeyError(err) {
			return nil, err
		}
		logger.Warnw("invoice_number_conflict_retry",
			"customer_id", input.CustomerID,
			"attempt", attempt,
		)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrInvoiceNoConflict
		}
		return nil, err
	}

	s.scheduleFinalize(result.Order)
	return result, nil
}

func (s *OrderService) buildOrderItems(input CreateOrderInput) ([]models.OrderItem, models.Money, error) {
	ids := make([]uint, 0, len(input.Lines))
	for _, line := range input.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, models.Money{}, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	items := make([]models.OrderItem, 0, len(input.Lines))
	computed := decimal.Zero
	for _, line := range input.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, models.Money{}, ErrProductNotFound
		}
		unitPrice := product.Price
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
		computed = computed.Add(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	total := models.NewMoneyFromDecimal(computed)
	if input.Total != nil && input.Total.GreaterThan(decimal.Zero) {
		total = *input.Total
	}
	return items, total, nil
}

func (s *OrderService) createOrderOnce(
	input CreateOrderInput,
	items []models.OrderItem,
	total models.Money,
	paymentMethod *models.PaymentMethod,
) (*OrderResult, error) {
	now := time.Now()
	order := &models.Order{
		CustomerID:        input.CustomerID,
		ShippingAddressID: input.ShippingAddressID,
		CartID:            input.CartID,
		Status:            constants.OrderStatusPaid,
		Total:             total,
	}
	invoice := &models.Invoice{
		Total:    total,
		IssuedAt: now,
	}
	payment := &models.Payment{
		Amount:          total,
		Status:          constants.PaymentStatusPaid,
		TransactionRef:  "",
		PaymentMethodID: &paymentMethod.ID,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		invoiceRepo := s.invoiceRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)

		orderItems := make([]models.OrderItem, len(items))
		copy(orderItems, items)
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		order.Items = orderItems

		invoiceNo, err := s.invoiceNumbers.WithRepo(invoiceRepo).Next(input.InvoiceNumberHint)
		if err != nil {
			return err
		}
		invoice.OrderID = order.ID
		invoice.InvoiceNo = invoiceNo
		invoiceItems := make([]models.InvoiceItem, 0, len(orderItems))
		for _, item := range orderItems {
			invoiceItems = append(invoiceItems, models.InvoiceItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
		if err := invoiceRepo.Create(invoice, invoiceItems); err != nil {
			return err
		}

		payment.OrderID = order.ID
		return paymentRepo.Create(payment)
	})
	if err != nil {
		// reset ids so a retry starts from a clean slate
		order.ID = 0
		invoice.ID = 0
		payment.ID = 0
		return nil, err
	}

	order.Invoice = invoice
	return &OrderResult{
		Order:     order,
		InvoiceNo: invoice.InvoiceNo,
		Payment:   payment,
	}, nil
}

// scheduleFinalize hands the stock adjustment to the worker, falling
// back to an inline run when the queue is disabled.
func (s *OrderService) scheduleFinalize(order *models.Order) {
	if order == nil {
		return
	}
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueCheckoutFinalize(order.ID)
		if err == nil {
			return
		}
		logger.Warnw("checkout_finalize_enqueue_failed",
			"order_id", order.ID,
			"error", err,
		)
	}
	if s.inventory != nil {
		if err := s.inventory.FinalizeCheckout(order.ID); err != nil {
			logger.Errorw("checkout_finalize_inline_failed",
				"order_id", order.ID,
				"error", err,
			)
		}
	}
}

func (s *OrderService) resolvePaymentMethod(customerID uint, paymentMethodID *uint) (*models.PaymentMethod, error) {
	if paymentMethodID != nil {
		method, err := s.paymentMethodRepo.GetByIDAndCustomer(*paymentMethodID, customerID)
		if err != nil {
			return nil, err
		}
		if method == nil {
			return nil, ErrPaymentMethodNotFound
		}
		return method, nil
	}
	method, err := s.paymentMethodRepo.GetPrincipalByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrNoPaymentMethod
	}
	return method, nil
}

// CancelOrder cancels a paid order inside the cancellation window,
// marks its latest payment canceled and puts the purchased quantities
// back into stock. Preconditions are checked in a fixed sequence so
// each rejection keeps its message.
func (s *OrderService) CancelOrder(orderID uint) (*CancelOrderResult, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	switch NormalizeOrderStatus(order.Status) {
	case constants.OrderStatusShipped:
		return nil, ErrOrderShipped
	case constants.OrderStatusCompleted:
		return nil, ErrOrderCompleted
	case constants.OrderStatusCanceled:
		return nil, ErrOrderCanceled
	case constants.OrderStatusPaid:
		// proceed
	default:
		return nil, ErrOrderNotPaid
	}

	if time.Since(order.CreatedAt) > time.Duration(s.cancelWindowDays)*24*time.Hour {
		return nil, ErrCancelWindowExpired
	}

	// Orders finalized through the queue only restore stock once the
	// adjustment actually ran; direct orders always restore.
	restoreStock := order.CartID == nil || order.StockAdjustedAt != nil

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		updates := map[string]interface{}{
			"canceled_at": now,
			"updated_at":  now,
		}
		if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusCanceled, updates); err != nil {
			return err
		}

		latest, err := paymentRepo.GetLatestByOrder(order.ID)
		if err != nil {
			return err
		}
		if latest != nil {
			if err := paymentRepo.UpdateStatus(latest.ID, constants.PaymentStatusCanceled); err != nil {
				return err
			}
		}

		if restoreStock {
			for _, item := range order.Items {
				if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CancelOrderResult{
		Message: "Orden cancelada y stock repuesto.",
		OrderID: order.ID,
		Status:  constants.OrderStatusCanceled,
	}, nil
}

// GetOrder returns an order with full detail.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderForCustomer returns an order scoped to its owner.
func (s *OrderService) GetOrderForCustomer(orderID, customerID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListCustomerOrders returns one page of a customer's orders.
func (s *OrderService) ListCustomerOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.CustomerID == 0 {
		return nil, 0, ErrInvalidOrderItem
	}
	filter.Status = normalizeFilterStatus(filter.Status)
	return s.orderRepo.ListByCustomer(filter)
}

// ListAdminOrders returns one page of orders for the console.
func (s *OrderService) ListAdminOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Status = normalizeFilterStatus(filter.Status)
	return s.orderRepo.ListAdmin(filter)
}

func normalizeFilterStatus(status string) string {
	if strings.TrimSpace(status) == "" {
		return ""
	}
	return NormalizeOrderStatus(status)
}

// isDuplicateKeyError matches sqlite and postgres unique violations.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "constraint failed: invoices.invoice_no")
}
