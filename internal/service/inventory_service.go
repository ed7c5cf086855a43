package service

import (
	"time"

	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"gorm.io/gorm"
)

// StockAdjustment is one product/quantity pair of a bulk stock call.
type StockAdjustment struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// InventoryService adjusts catalog stock and settles carts after
// checkout.
type InventoryService struct {
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
}

// NewInventoryService creates an inventory service.
func NewInventoryService(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
) *InventoryService {
	return &InventoryService{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
	}
}

// DecrementStock subtracts the given quantities, flooring each product
// at zero. Unknown products are skipped without error.
func (s *InventoryService) DecrementStock(adjustments []StockAdjustment) error {
	for _, adj := range adjustments {
		if adj.ProductID == 0 || adj.Quantity <= 0 {
			continue
		}
		rows, err := s.productRepo.DecrementStock(adj.ProductID, adj.Quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			logger.Debugw("stock_decrement_skipped_missing_product", "product_id", adj.ProductID)
		}
	}
	return nil
}

// RestoreStock adds the given quantities back without any cap. Unknown
// products are skipped without error.
func (s *InventoryService) RestoreStock(adjustments []StockAdjustment) error {
	for _, adj := range adjustments {
		if adj.ProductID == 0 || adj.Quantity <= 0 {
			continue
		}
		rows, err := s.productRepo.RestoreStock(adj.ProductID, adj.Quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			logger.Debugw("stock_restore_skipped_missing_product", "product_id", adj.ProductID)
		}
	}
	return nil
}

// CloseCart marks a cart closed. Closing an already closed cart is a
// no-op; a missing cart is an error.
func (s *InventoryService) CloseCart(cartID uint) error {
	if cartID == 0 {
		return ErrCartNotFound
	}
	rows, err := s.cartRepo.Close(cartID)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartNotFound
	}
	return nil
}

// FinalizeCheckout performs the post-checkout stock adjustment for one
// order: decrement every purchased line and close the source cart.
// The order's StockAdjustedAt stamp guards the whole step, so repeated
// deliveries of the same task are harmless, and orders canceled in the
// meantime are left alone.
func (s *InventoryService) FinalizeCheckout(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if NormalizeOrderStatus(order.Status) == constants.OrderStatusCanceled {
		logger.Infow("checkout_finalize_skipped_canceled", "order_id", orderID)
		return nil
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		rows, err := orderRepo.MarkStockAdjusted(order.ID, time.Now())
		if err != nil {
			return err
		}
		if rows == 0 {
			// already finalized by an earlier delivery
			return nil
		}

		for _, item := range order.Items {
			if _, err := productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if order.CartID != nil {
			if _, err := cartRepo.Close(*order.CartID); err != nil {
				return err
			}
		}
		return nil
	})
}
