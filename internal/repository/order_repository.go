package repository

import (
	"errors"
	"time"

	"github.com/tienda-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndCustomer(id, customerID uint) (*models.Order, error)
	ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	ListForShipping(filter ShippingListFilter) ([]models.Order, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	MarkStockAdjusted(id uint, adjustedAt time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.Preload("Items").Preload("Items.Product").Preload("Invoice").Preload("Payments")
}

// Create inserts an order and its items.
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns an order with full detail, or nil when it does not exist.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndCustomer returns an order scoped to its owner.
func (r *GormOrderRepository) GetByIDAndCustomer(id, customerID uint) (*models.Order, error) {
	var order models.Order
	err := r.withDetails(r.db).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer returns one page of a customer's orders.
func (r *GormOrderRepository) ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("customer_id = ?", filter.CustomerID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return r.listPage(query, filter)
}

// ListAdmin returns one page of orders for the console.
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", filter.CreatedTo)
	}
	return r.listPage(query, filter)
}

func (r *GormOrderRepository) listPage(query *gorm.DB, filter OrderListFilter) ([]models.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	paged := applyPagination(query.Preload("Items").Order("id desc"), filter.Page, filter.PageSize)
	if err := paged.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListForShipping returns up to Take orders in a shipping queue, newest
// first. When filter.IDs is set the result is limited to those ids.
func (r *GormOrderRepository) ListForShipping(filter ShippingListFilter) ([]models.Order, error) {
	query := r.db.Model(&models.Order{}).Where("status = ?", filter.Status)
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.Take > 0 {
		query = query.Limit(filter.Take)
	}
	var orders []models.Order
	if err := query.Preload("Items").Order("id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets the order status plus any extra column updates.
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	values := map[string]interface{}{"status": status}
	for k, v := range updates {
		values[k] = v
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(values).Error
}

// MarkStockAdjusted stamps the order's stock adjustment exactly once.
// The returned row count is zero when the stamp was already set.
func (r *GormOrderRepository) MarkStockAdjusted(id uint, adjustedAt time.Time) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND stock_adjusted_at IS NULL", id).
		Update("stock_adjusted_at", adjustedAt)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
