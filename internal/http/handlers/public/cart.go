package public

import (
	"net/http"
	"strconv"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpsertCartRequest is the merge payload of the cart endpoint.
type UpsertCartRequest struct {
	Items []service.CartLineInput `json:"items"`
}

// SetCartItemRequest pins one line to a quantity.
type SetCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the caller's open cart with prices re-pinned to the
// live catalog.
func (h *Handler) GetCart(c *gin.Context) {
	customerID, ok := resolveCustomerID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetOpenCart(customerID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "no se pudo obtener el carrito")
		return
	}
	if cart == nil {
		response.NotFound(c, service.ErrCartNotFound.Error())
		return
	}
	response.Success(c, cart)
}

// UpsertCart merges incoming lines into the open cart, creating it
// when absent. A freshly created cart responds 201.
func (h *Handler) UpsertCart(c *gin.Context) {
	customerID, ok := resolveCustomerID(c)
	if !ok {
		return
	}
	var req UpsertCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}

	cart, created, err := h.CartService.UpsertCart(customerID, req.Items)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "no se pudo actualizar el carrito")
		return
	}
	if created {
		c.JSON(http.StatusCreated, response.Response{
			StatusCode: response.CodeOK,
			Msg:        "success",
			Data:       cart,
		})
		return
	}
	response.Success(c, cart)
}

// SetCartItemQuantity pins one line's quantity, capped at stock. Zero
// removes the line.
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	customerID, ok := resolveCustomerID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, service.ErrInvalidOrderItem.Error())
		return
	}
	var req SetCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}

	cart, err := h.CartService.SetLineQuantity(customerID, uint(productID), req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "no se pudo actualizar el carrito")
		return
	}
	response.Success(c, cart)
}

// DeleteCartItem removes one line from the open cart.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	customerID, ok := resolveCustomerID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, service.ErrInvalidOrderItem.Error())
		return
	}
	if err := h.CartService.RemoveLine(customerID, uint(productID)); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "no se pudo eliminar el item")
		return
	}
	response.Success(c, nil)
}
