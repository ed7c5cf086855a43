package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/repository"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders returns a paged order listing across all customers.
// Supports ?status= (legacy aliases accepted), ?customer_id=, ?from=
// and ?to= (RFC 3339 dates).
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if id, ok := parseQueryUint(c, "customer_id"); ok {
		filter.CustomerID = id
	}
	if from, ok := parseQueryTime(c, "from"); ok {
		filter.CreatedFrom = &from
	}
	if to, ok := parseQueryTime(c, "to"); ok {
		filter.CreatedTo = &to
	}

	orders, total, err := h.OrderService.ListAdminOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "no se pudo listar las ordenes", err)
		return
	}
	response.SuccessWithPage(c, orders, shared.BuildPagination(page, pageSize, total))
}

// GetOrder returns one order with its items, invoice and payments.
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(orderID)
	if err != nil {
		respondOrderCancelError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder cancels an order on a customer's behalf, restoring
// stock under the same rules as the customer endpoint.
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	result, err := h.OrderService.CancelOrder(orderID)
	if err != nil {
		respondOrderCancelError(c, err)
		return
	}
	response.Success(c, result)
}

func respondOrderCancelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrOrderShipped),
		errors.Is(err, service.ErrOrderCompleted),
		errors.Is(err, service.ErrOrderNotPaid),
		errors.Is(err, service.ErrCancelWindowExpired):
		response.BadRequest(c, err.Error())
	default:
		respondError(c, response.CodeInternal, "no se pudo procesar la orden", err)
	}
}

func parseQueryUint(c *gin.Context, key string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Query(key)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseQueryTime(c *gin.Context, key string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
