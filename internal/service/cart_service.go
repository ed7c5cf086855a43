package service

import (
	"strings"

	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"
)

// CartLineInput is one incoming line of a cart merge. A line may name
// the product by id or by its reference code.
type CartLineInput struct {
	ProductID uint   `json:"product_id"`
	ModelRef  string `json:"model_ref"`
	Quantity  int    `json:"quantity"`
}

// CartService reconciles customer carts against the live catalog.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetOpenCart returns the customer's open cart with every line price
// re-pinned to the current catalog. Lines whose product vanished or
// was deactivated are purged. Returns nil when no open cart exists.
func (s *CartService) GetOpenCart(customerID uint) (*models.Cart, error) {
	if customerID == 0 {
		return nil, ErrInvalidOrderItem
	}
	cart, err := s.cartRepo.GetOpenByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}
	if err := s.refreshCartLines(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetLineQuantity pins a single line to quantity, capped at the
// product's current stock. Zero or negative quantities remove the
// line. The price is always refreshed from the catalog.
func (s *CartService) SetLineQuantity(customerID, productID uint, quantity int) (*models.Cart, error) {
	if customerID == 0 || productID == 0 {
		return nil, ErrInvalidOrderItem
	}
	cart, err := s.cartRepo.GetOpenByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
			return nil, err
		}
		return s.GetOpenCart(customerID)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	capped := quantity
	if capped > product.Stock {
		capped = product.Stock
	}
	if capped <= 0 {
		if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
			return nil, err
		}
		return s.GetOpenCart(customerID)
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  capped,
		UnitPrice: product.Price,
	}
	if err := s.cartRepo.SaveItem(item); err != nil {
		return nil, err
	}
	return s.GetOpenCart(customerID)
}

// RemoveLine deletes a line from the open cart.
func (s *CartService) RemoveLine(customerID, productID uint) error {
	if customerID == 0 || productID == 0 {
		return ErrInvalidOrderItem
	}
	cart, err := s.cartRepo.GetOpenByCustomer(customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartNotFound
	}
	return s.cartRepo.DeleteItem(cart.ID, productID)
}

// UpsertCart merges incoming lines into the customer's open cart,
// creating the cart when none exists. Quantities for the same product
// are summed and capped at current stock; lines that end at zero or
// below are removed, and lines naming unknown products are skipped.
// The created flag reports whether a new cart was opened.
func (s *CartService) UpsertCart(customerID uint, lines []CartLineInput) (cart *models.Cart, created bool, err error) {
	if customerID == 0 {
		return nil, false, ErrInvalidOrderItem
	}
	cart, err = s.cartRepo.GetOpenByCustomer(customerID)
	if err != nil {
		return nil, false, err
	}
	if cart == nil {
		cart = &models.Cart{
			CustomerID: customerID,
			Status:     constants.CartStatusOpen,
		}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, false, err
		}
		created = true
	}

	existing := make(map[uint]int, len(cart.Items))
	for _, item := range cart.Items {
		existing[item.ProductID] = item.Quantity
	}

	for _, line := range lines {
		product, err := s.resolveProduct(line)
		if err != nil {
			return nil, false, err
		}
		if product == nil || !product.IsActive {
			continue
		}

		merged := existing[product.ID] + line.Quantity
		if merged > product.Stock {
			merged = product.Stock
		}
		if merged <= 0 {
			if err := s.cartRepo.DeleteItem(cart.ID, product.ID); err != nil {
				return nil, false, err
			}
			delete(existing, product.ID)
			continue
		}

		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  merged,
			UnitPrice: product.Price,
		}
		if err := s.cartRepo.SaveItem(item); err != nil {
			return nil, false, err
		}
		existing[product.ID] = merged
	}

	// Prices are refreshed even when the request carried no lines.
	cart, err = s.GetOpenCart(customerID)
	if err != nil {
		return nil, false, err
	}
	return cart, created, nil
}

func (s *CartService) resolveProduct(line CartLineInput) (*models.Product, error) {
	if line.ProductID != 0 {
		return s.productRepo.GetByID(line.ProductID)
	}
	if strings.TrimSpace(line.ModelRef) != "" {
		return s.productRepo.GetByModelRef(line.ModelRef, false)
	}
	return nil, nil
}

// refreshCartLines re-pins every line to the live catalog price and
// purges lines whose product is gone or inactive.
func (s *CartService) refreshCartLines(cart *models.Cart) error {
	kept := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			product = p
		}
		if product == nil || !product.IsActive {
			if err := s.cartRepo.DeleteItem(cart.ID, item.ProductID); err != nil {
				return err
			}
			continue
		}
		if !item.UnitPrice.Equal(product.Price.Decimal) {
			item.UnitPrice = product.Price
			if err := s.cartRepo.SaveItem(&item); err != nil {
				return err
			}
		}
		item.Product = product
		kept = append(kept, item)
	}
	cart.Items = kept
	return nil
}
