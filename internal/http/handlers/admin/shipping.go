package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AttachTrackingRequest carries a tracking number for one order. On
// update, Status may override the order status.
type AttachTrackingRequest struct {
	TrackingNumber string  `json:"tracking_number" binding:"required"`
	Status         *string `json:"status"`
}

// ListPendingShipments lists paid orders waiting for a tracking
// number. Supports ?take= and ?search= (order mask or id).
func (h *Handler) ListPendingShipments(c *gin.Context) {
	views, err := h.ShippingService.ListPending(parseTake(c), strings.TrimSpace(c.Query("search")))
	if err != nil {
		respondError(c, response.CodeInternal, "no se pudo listar los envios pendientes", err)
		return
	}
	response.Success(c, views)
}

// ListShippedOrders lists orders already on their way.
func (h *Handler) ListShippedOrders(c *gin.Context) {
	views, err := h.ShippingService.ListShipped(parseTake(c), strings.TrimSpace(c.Query("search")))
	if err != nil {
		respondError(c, response.CodeInternal, "no se pudo listar los envios realizados", err)
		return
	}
	response.Success(c, views)
}

// AttachTracking records a tracking number and marks the order
// shipped.
func (h *Handler) AttachTracking(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req AttachTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, service.ErrTrackingRequired.Error())
		return
	}
	order, err := h.ShippingService.AttachTracking(orderID, req.TrackingNumber)
	if err != nil {
		respondTrackingError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateTracking replaces the tracking number of an order without
// changing its status unless one is supplied.
func (h *Handler) UpdateTracking(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req AttachTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, service.ErrTrackingRequired.Error())
		return
	}
	order, err := h.ShippingService.UpdateTracking(service.AttachTrackingInput{
		OrderID:        orderID,
		TrackingNumber: req.TrackingNumber,
		Status:         req.Status,
	})
	if err != nil {
		respondTrackingError(c, err)
		return
	}
	response.Success(c, order)
}

func respondTrackingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrTrackingRequired):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrOrderCanceled):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidStatusTransition):
		response.BadRequest(c, err.Error())
	default:
		respondError(c, response.CodeInternal, "no se pudo actualizar el envio", err)
	}
}

func parseTake(c *gin.Context) int {
	take, _ := strconv.Atoi(c.Query("take"))
	return take
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, service.ErrOrderNotFound.Error())
		return 0, false
	}
	return uint(id), true
}
