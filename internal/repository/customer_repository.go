package repository

import (
	"errors"
	"strings"

	"github.com/tienda-next/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository is the account data access interface.
type CustomerRepository interface {
	GetByID(id uint) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	GetAddressByIDAndCustomer(id, customerID uint) (*models.Address, error)
	CreateAddress(address *models.Address) error
	WithTx(tx *gorm.DB) *GormCustomerRepository
}

// GormCustomerRepository is the GORM implementation.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository.
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// GetByID returns a customer, or nil when it does not exist.
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByEmail returns a customer by email, case insensitive, or nil.
func (r *GormCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	var customer models.Customer
	err := r.db.Where("email = ?", normalized).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create inserts a customer.
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update saves all customer fields.
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// GetAddressByIDAndCustomer returns an address scoped to its owner, or nil.
func (r *GormCustomerRepository) GetAddressByIDAndCustomer(id, customerID uint) (*models.Address, error) {
	var address models.Address
	err := r.db.Where("id = ? AND customer_id = ?", id, customerID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// CreateAddress inserts an address.
func (r *GormCustomerRepository) CreateAddress(address *models.Address) error {
	return r.db.Create(address).Error
}
