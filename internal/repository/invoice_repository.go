package repository

import (
	"errors"

	"github.com/tienda-next/internal/models"

	"gorm.io/gorm"
)

// InvoiceRepository is the invoice data access interface.
type InvoiceRepository interface {
	Create(invoice *models.Invoice, items []models.InvoiceItem) error
	GetByOrderID(orderID uint) (*models.Invoice, error)
	ExistsByNumber(invoiceNo string) (bool, error)
	ListNumbersByPrefix(prefix string) ([]string, error)
	WithTx(tx *gorm.DB) InvoiceRepository
}

// GormInvoiceRepository is the GORM implementation.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates an invoice repository.
func NewInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormInvoiceRepository) WithTx(tx *gorm.DB) InvoiceRepository {
	if tx == nil {
		return r
	}
	return &GormInvoiceRepository{db: tx}
}

// Create inserts an invoice and its items.
func (r *GormInvoiceRepository) Create(invoice *models.Invoice, items []models.InvoiceItem) error {
	if err := r.db.Create(invoice).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByOrderID returns the invoice of an order, or nil when none exists.
func (r *GormInvoiceRepository) GetByOrderID(orderID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("Items").Where("order_id = ?", orderID).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ExistsByNumber reports whether an invoice number is already taken.
func (r *GormInvoiceRepository) ExistsByNumber(invoiceNo string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Invoice{}).Where("invoice_no = ?", invoiceNo).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListNumbersByPrefix returns every invoice number starting with prefix.
func (r *GormInvoiceRepository) ListNumbersByPrefix(prefix string) ([]string, error) {
	var numbers []string
	err := r.db.Model(&models.Invoice{}).
		Where("invoice_no LIKE ?", prefix+"%").
		Pluck("invoice_no", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}
