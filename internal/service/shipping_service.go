package service

import (
	"strings"
	"time"

	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"
)

// ShippingOrderView is one row of a console shipping queue.
type ShippingOrderView struct {
	ID             uint         `json:"id"`
	Mask           string       `json:"mask"`
	CustomerID     uint         `json:"customer_id"`
	Status         string       `json:"status"`
	Total          models.Money `json:"total"`
	TrackingNumber string       `json:"tracking_number,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// AttachTrackingInput carries a console tracking update. A nil Status
// leaves the order status untouched.
type AttachTrackingInput struct {
	OrderID        uint
	TrackingNumber string
	Status         *string
}

// ShippingService backs the console shipping queues and tracking
// updates.
type ShippingService struct {
	orderRepo repository.OrderRepository
}

// NewShippingService creates a shipping service.
func NewShippingService(orderRepo repository.OrderRepository) *ShippingService {
	return &ShippingService{orderRepo: orderRepo}
}

// ListPending returns up to take paid orders awaiting shipment, newest
// first. A search term is matched as an order mask.
func (s *ShippingService) ListPending(take int, search string) ([]ShippingOrderView, error) {
	return s.list(constants.OrderStatusPaid, take, search)
}

// ListShipped returns up to take shipped orders, newest first.
func (s *ShippingService) ListShipped(take int, search string) ([]ShippingOrderView, error) {
	return s.list(constants.OrderStatusShipped, take, search)
}

func (s *ShippingService) list(status string, take int, search string) ([]ShippingOrderView, error) {
	filter := repository.ShippingListFilter{
		Status: status,
		Take:   clampTake(take),
	}
	if term := strings.TrimSpace(search); term != "" {
		id, ok := TryExtractIDFromMask(term)
		if !ok {
			return []ShippingOrderView{}, nil
		}
		filter.IDs = []uint{id}
	}

	orders, err := s.orderRepo.ListForShipping(filter)
	if err != nil {
		return nil, err
	}
	views := make([]ShippingOrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, ShippingOrderView{
			ID:             order.ID,
			Mask:           MaskOrder(order.ID, order.CreatedAt),
			CustomerID:     order.CustomerID,
			Status:         NormalizeOrderStatus(order.Status),
			Total:          order.Total,
			TrackingNumber: order.TrackingNumber,
			CreatedAt:      order.CreatedAt,
		})
	}
	return views, nil
}

// AttachTracking records a tracking number and moves the order to
// shipped. Used by the initial console assignment.
func (s *ShippingService) AttachTracking(orderID uint, trackingNumber string) (*models.Order, error) {
	status := constants.OrderStatusShipped
	return s.applyTracking(AttachTrackingInput{
		OrderID:        orderID,
		TrackingNumber: trackingNumber,
		Status:         &status,
	})
}

// UpdateTracking corrects a tracking number. The status only changes
// when the caller supplies one.
func (s *ShippingService) UpdateTracking(input AttachTrackingInput) (*models.Order, error) {
	return s.applyTracking(input)
}

func (s *ShippingService) applyTracking(input AttachTrackingInput) (*models.Order, error) {
	tracking := strings.TrimSpace(input.TrackingNumber)
	if tracking == "" {
		return nil, ErrTrackingRequired
	}
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if NormalizeOrderStatus(order.Status) == constants.OrderStatusCanceled {
		return nil, ErrOrderCanceled
	}

	now := time.Now()
	status := NormalizeOrderStatus(order.Status)
	if input.Status != nil {
		target := NormalizeOrderStatus(*input.Status)
		if target != status && !CanTransition(status, target) {
			return nil, ErrInvalidStatusTransition
		}
		status = target
	}
	updates := map[string]interface{}{
		"tracking_number": tracking,
		"updated_at":      now,
	}
	if err := s.orderRepo.UpdateStatus(order.ID, status, updates); err != nil {
		return nil, err
	}

	order.Status = status
	order.TrackingNumber = tracking
	order.UpdatedAt = now
	return order, nil
}

func clampTake(take int) int {
	if take <= 0 {
		take = constants.ShippingListDefaultTake
	}
	if take < 1 {
		take = 1
	}
	if take > constants.ShippingListMaxTake {
		take = constants.ShippingListMaxTake
	}
	return take
}
