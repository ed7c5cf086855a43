package public

import (
	"strconv"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SavePaymentMethodRequest is the stored method payload. The card
// number and CVV are accepted here and never echoed back.
type SavePaymentMethodRequest struct {
	Type        string `json:"type" binding:"required"`
	CardNumber  string `json:"card_number"`
	CVV         string `json:"cvv"`
	ExpMonth    int    `json:"exp_month"`
	ExpYear     int    `json:"exp_year"`
	PaypalEmail string `json:"paypal_email"`
	IsPrimary   bool   `json:"is_primary"`
}

// ListPaymentMethods returns the caller's stored methods, masked.
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	methods, err := h.PaymentMethodService.List(customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "no se pudo obtener los metodos de pago", err)
		return
	}
	response.Success(c, methods)
}

// SavePaymentMethod stores a new card or PayPal account.
func (h *Handler) SavePaymentMethod(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req SavePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}

	view, err := h.PaymentMethodService.Save(service.SavePaymentMethodInput{
		CustomerID:  customerID,
		Type:        req.Type,
		CardNumber:  req.CardNumber,
		CVV:         req.CVV,
		ExpMonth:    req.ExpMonth,
		ExpYear:     req.ExpYear,
		PaypalEmail: req.PaypalEmail,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentMethodErrorRules, response.CodeInternal, "no se pudo guardar el metodo de pago")
		return
	}
	response.Success(c, view)
}

// UpdatePaymentMethod overwrites one stored method.
func (h *Handler) UpdatePaymentMethod(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, service.ErrPaymentMethodNotFound.Error())
		return
	}
	var req SavePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}

	view, err := h.PaymentMethodService.Update(uint(id), service.SavePaymentMethodInput{
		CustomerID:  customerID,
		Type:        req.Type,
		CardNumber:  req.CardNumber,
		CVV:         req.CVV,
		ExpMonth:    req.ExpMonth,
		ExpYear:     req.ExpYear,
		PaypalEmail: req.PaypalEmail,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentMethodErrorRules, response.CodeInternal, "no se pudo actualizar el metodo de pago")
		return
	}
	response.Success(c, view)
}

// DeletePaymentMethod removes one stored method.
func (h *Handler) DeletePaymentMethod(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, service.ErrPaymentMethodNotFound.Error())
		return
	}
	if err := h.PaymentMethodService.Delete(uint(id), customerID); err != nil {
		respondWithMappedError(c, err, paymentMethodErrorRules, response.CodeInternal, "no se pudo eliminar el metodo de pago")
		return
	}
	response.Success(c, nil)
}

// MakePaymentMethodPrimary promotes one stored method to principal.
func (h *Handler) MakePaymentMethodPrimary(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, service.ErrPaymentMethodNotFound.Error())
		return
	}
	if err := h.PaymentMethodService.MakePrimary(uint(id), customerID); err != nil {
		respondWithMappedError(c, err, paymentMethodErrorRules, response.CodeInternal, "no se pudo actualizar el metodo de pago")
		return
	}
	response.Success(c, nil)
}
