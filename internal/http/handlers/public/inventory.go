package public

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// DecrementStock applies a batch stock decrement, clamped at zero per
// product. The checkout client calls this right after order creation.
func (h *Handler) DecrementStock(c *gin.Context) {
	var adjustments []service.StockAdjustment
	if err := c.ShouldBindJSON(&adjustments); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}
	if err := h.InventoryService.DecrementStock(adjustments); err != nil {
		respondError(c, response.CodeInternal, "no se pudo ajustar el stock", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CloseCart marks a cart closed once its order exists.
func (h *Handler) CloseCart(c *gin.Context) {
	cartID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || cartID == 0 {
		response.BadRequest(c, service.ErrCartNotFound.Error())
		return
	}
	if err := h.InventoryService.CloseCart(uint(cartID)); err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			response.NotFound(c, service.ErrCartNotFound.Error())
			return
		}
		respondError(c, response.CodeInternal, "no se pudo cerrar el carrito", err)
		return
	}
	c.Status(http.StatusNoContent)
}
