package service

import "errors"

// Sentinel errors returned by services. Handlers map these onto HTTP
// responses; the wording of the customer facing ones is part of the
// API contract and is kept verbatim.
var (
	ErrOrderNotFound       = errors.New("Orden no encontrada.")
	ErrOrderShipped        = errors.New("No puedes cancelar una orden enviada")
	ErrOrderCompleted      = errors.New("No puede cancelar una orden completada")
	ErrOrderCanceled       = errors.New("No puede enviar una orden cancelada")
	ErrOrderNotPaid        = errors.New("Solo puedes cancelar órdenes en estado Pagada.")
	ErrCancelWindowExpired = errors.New("No puedes cancelar una orden con mas de 30 dias.")

	ErrCartNotFound        = errors.New("Carrito no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrProductNotAvailable = errors.New("producto no disponible")
	ErrEmptyOrder          = errors.New("la orden no tiene items")
	ErrInvalidOrderItem    = errors.New("item de orden invalido")
	ErrInvalidProduct      = errors.New("producto invalido")
	ErrInvalidQuantity     = errors.New("cantidad invalida")
	ErrAddressNotFound     = errors.New("direccion no encontrada")

	ErrTrackingRequired        = errors.New("Tracking requerido.")
	ErrInvalidStatusTransition = errors.New("cambio de estado invalido")

	ErrPaymentMethodNotFound = errors.New("metodo de pago no encontrado")
	ErrNoPaymentMethod       = errors.New("No hay método de pago válido para el cliente.")
	ErrInvalidCardNumber     = errors.New("numero de tarjeta invalido")
	ErrInvalidCVV            = errors.New("cvv invalido")
	ErrInvalidExpiry         = errors.New("fecha de expiracion invalida")
	ErrInvalidPaypalEmail    = errors.New("email de paypal invalido")
	ErrInvalidMethodType     = errors.New("tipo de metodo de pago invalido")

	ErrEmailTaken         = errors.New("el email ya esta registrado")
	ErrInvalidCredentials = errors.New("credenciales invalidas")

	ErrChatbotDisabled   = errors.New("chatbot deshabilitado")
	ErrInvoiceNoConflict = errors.New("numero de factura en conflicto")
)
