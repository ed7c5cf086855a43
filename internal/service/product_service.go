package service

import (
	"strings"

	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"
)

// ProductInput carries the writable fields of a catalog entry.
type ProductInput struct {
	ModelRef    string       `json:"model_ref"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Stock       int          `json:"stock"`
	Image       string       `json:"image"`
	IsActive    *bool        `json:"is_active"`
}

// ProductService manages the catalog.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a catalog service.
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List returns a catalog page.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	return s.productRepo.List(filter)
}

// Get returns one product by id.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetByModelRef returns one product by reference code.
func (s *ProductService) GetByModelRef(modelRef string) (*models.Product, error) {
	product, err := s.productRepo.GetByModelRef(modelRef, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create inserts a catalog entry.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	modelRef := strings.TrimSpace(input.ModelRef)
	name := strings.TrimSpace(input.Name)
	if modelRef == "" || name == "" {
		return nil, ErrInvalidProduct
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	product := &models.Product{
		ModelRef:    modelRef,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Image:       strings.TrimSpace(input.Image),
		IsActive:    isActive,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update overwrites a catalog entry's writable fields.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if ref := strings.TrimSpace(input.ModelRef); ref != "" {
		product.ModelRef = ref
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Image = strings.TrimSpace(input.Image)
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a catalog entry.
func (s *ProductService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}
