package repository

import (
	"errors"

	"github.com/tienda-next/internal/models"

	"gorm.io/gorm"
)

// PaymentMethodRepository is the stored payment method access interface.
type PaymentMethodRepository interface {
	ListByCustomer(customerID uint) ([]models.PaymentMethod, error)
	GetByIDAndCustomer(id, customerID uint) (*models.PaymentMethod, error)
	GetPrincipalByCustomer(customerID uint) (*models.PaymentMethod, error)
	Create(method *models.PaymentMethod) error
	Update(method *models.PaymentMethod) error
	Delete(id, customerID uint) error
	ClearPrimary(customerID uint) error
	WithTx(tx *gorm.DB) *GormPaymentMethodRepository
}

// GormPaymentMethodRepository is the GORM implementation.
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a payment method repository.
func NewPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentMethodRepository) WithTx(tx *gorm.DB) *GormPaymentMethodRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentMethodRepository{db: tx}
}

// ListByCustomer returns a customer's stored methods, principal first.
func (r *GormPaymentMethodRepository) ListByCustomer(customerID uint) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.db.Where("customer_id = ?", customerID).
		Order("is_primary desc, id asc").
		Find(&methods).Error
	if err != nil {
		return nil, err
	}
	return methods, nil
}

// GetByIDAndCustomer returns a method scoped to its owner, or nil.
func (r *GormPaymentMethodRepository) GetByIDAndCustomer(id, customerID uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := r.db.Where("id = ? AND customer_id = ?", id, customerID).First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// GetPrincipalByCustomer returns the method checkout falls back to when
// none is named: the primary one, else the oldest stored.
func (r *GormPaymentMethodRepository) GetPrincipalByCustomer(customerID uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := r.db.Where("customer_id = ?", customerID).
		Order("is_primary desc, id asc").
		First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// Create inserts a stored method.
func (r *GormPaymentMethodRepository) Create(method *models.PaymentMethod) error {
	return r.db.Create(method).Error
}

// Update saves all method fields.
func (r *GormPaymentMethodRepository) Update(method *models.PaymentMethod) error {
	return r.db.Save(method).Error
}

// Delete soft deletes a method scoped to its owner.
func (r *GormPaymentMethodRepository) Delete(id, customerID uint) error {
	return r.db.Where("id = ? AND customer_id = ?", id, customerID).Delete(&models.PaymentMethod{}).Error
}

// ClearPrimary unsets the primary flag on every method of a customer.
func (r *GormPaymentMethodRepository) ClearPrimary(customerID uint) error {
	return r.db.Model(&models.PaymentMethod{}).
		Where("customer_id = ?", customerID).
		Update("is_primary", false).Error
}
