package public

import (
	"errors"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a service error to its API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: service.ErrInvalidOrderItem.Error()},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: service.ErrInvalidQuantity.Error()},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: service.ErrProductNotAvailable.Error()},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: service.ErrProductNotFound.Error()},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, msg: service.ErrCartNotFound.Error()},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: service.ErrInvalidOrderItem.Error()},
	{target: service.ErrEmptyOrder, code: response.CodeBadRequest, msg: service.ErrEmptyOrder.Error()},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: service.ErrProductNotFound.Error()},
	{target: service.ErrAddressNotFound, code: response.CodeBadRequest, msg: service.ErrAddressNotFound.Error()},
	{target: service.ErrPaymentMethodNotFound, code: response.CodeBadRequest, msg: service.ErrPaymentMethodNotFound.Error()},
	{target: service.ErrNoPaymentMethod, code: response.CodeBadRequest, msg: service.ErrNoPaymentMethod.Error()},
	{target: service.ErrInvoiceNoConflict, code: response.CodeInternal, msg: service.ErrInvoiceNoConflict.Error()},
}

// orderCancelErrorRules keeps the exact customer facing wording of
// every cancellation rejection.
var orderCancelErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: service.ErrOrderNotFound.Error()},
	{target: service.ErrOrderShipped, code: response.CodeBadRequest, msg: service.ErrOrderShipped.Error()},
	{target: service.ErrOrderCompleted, code: response.CodeBadRequest, msg: service.ErrOrderCompleted.Error()},
	{target: service.ErrOrderCanceled, code: response.CodeBadRequest, msg: service.ErrOrderCanceled.Error()},
	{target: service.ErrOrderNotPaid, code: response.CodeBadRequest, msg: service.ErrOrderNotPaid.Error()},
	{target: service.ErrCancelWindowExpired, code: response.CodeBadRequest, msg: service.ErrCancelWindowExpired.Error()},
}

var paymentMethodErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentMethodNotFound, code: response.CodeNotFound, msg: service.ErrPaymentMethodNotFound.Error()},
	{target: service.ErrInvalidCardNumber, code: response.CodeBadRequest, msg: service.ErrInvalidCardNumber.Error()},
	{target: service.ErrInvalidCVV, code: response.CodeBadRequest, msg: service.ErrInvalidCVV.Error()},
	{target: service.ErrInvalidExpiry, code: response.CodeBadRequest, msg: service.ErrInvalidExpiry.Error()},
	{target: service.ErrInvalidPaypalEmail, code: response.CodeBadRequest, msg: service.ErrInvalidPaypalEmail.Error()},
	{target: service.ErrInvalidMethodType, code: response.CodeBadRequest, msg: service.ErrInvalidMethodType.Error()},
}
