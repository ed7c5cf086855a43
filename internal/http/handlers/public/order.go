package public

import (
	"strconv"

	handlershared "github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	ShippingAddressID *uint                    `json:"shipping_address_id"`
	CartID            *uint                    `json:"cart_id"`
	PaymentMethodID   *uint                    `json:"payment_method_id"`
	InvoiceNumber     string                   `json:"invoice_number"`
	Total             *models.Money            `json:"total"`
	Items             []service.OrderLineInput `json:"items" binding:"required"`
}

// CreateOrder runs checkout for the authenticated customer.
func (h *Handler) CreateOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}

	result, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		CustomerID:        customerID,
		ShippingAddressID: req.ShippingAddressID,
		CartID:            req.CartID,
		PaymentMethodID:   req.PaymentMethodID,
		InvoiceNumberHint: req.InvoiceNumber,
		Total:             req.Total,
		Lines:             req.Items,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "no se pudo crear la orden")
		return
	}
	response.Success(c, result)
}

// GetOrder returns one of the caller's orders.
func (h *Handler) GetOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		response.BadRequest(c, service.ErrInvalidOrderItem.Error())
		return
	}
	order, err := h.OrderService.GetOrderForCustomer(uint(orderID), customerID)
	if err != nil {
		respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "no se pudo obtener la orden")
		return
	}
	response.Success(c, order)
}

// ListOrders returns the caller's orders, paged.
func (h *Handler) ListOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListCustomerOrders(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customerID,
		Status:     c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "no se pudo obtener las ordenes", err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// CancelOrder cancels one of the caller's paid orders and restores
// stock.
func (h *Handler) CancelOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		response.BadRequest(c, service.ErrInvalidOrderItem.Error())
		return
	}

	// ownership check before touching the lifecycle
	if _, err := h.OrderService.GetOrderForCustomer(uint(orderID), customerID); err != nil {
		respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "no se pudo cancelar la orden")
		return
	}

	result, err := h.OrderService.CancelOrder(uint(orderID))
	if err != nil {
		respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "no se pudo cancelar la orden")
		return
	}
	response.Success(c, result)
}
