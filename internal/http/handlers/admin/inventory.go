package admin

import (
	"errors"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// StockAdjustmentRequest carries manual stock movements. Unknown
// product ids are skipped without failing the batch.
type StockAdjustmentRequest struct {
	Items []service.StockAdjustment `json:"items" binding:"required"`
}

type CloseCartRequest struct {
	CartID uint `json:"cart_id" binding:"required"`
}

// DecrementStock subtracts the given quantities, flooring at zero.
func (h *Handler) DecrementStock(c *gin.Context) {
	var req StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}
	if err := h.InventoryService.DecrementStock(req.Items); err != nil {
		respondError(c, response.CodeInternal, "no se pudo descontar el stock", err)
		return
	}
	response.Success(c, nil)
}

// RestoreStock adds the given quantities back.
func (h *Handler) RestoreStock(c *gin.Context) {
	var req StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}
	if err := h.InventoryService.RestoreStock(req.Items); err != nil {
		respondError(c, response.CodeInternal, "no se pudo reponer el stock", err)
		return
	}
	response.Success(c, nil)
}

// CloseCart marks a cart closed so it no longer merges new lines.
func (h *Handler) CloseCart(c *gin.Context) {
	var req CloseCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}
	if err := h.InventoryService.CloseCart(req.CartID); err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		respondError(c, response.CodeInternal, "no se pudo cerrar el carrito", err)
		return
	}
	response.Success(c, nil)
}
