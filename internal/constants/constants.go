package constants

// Order status constants. Rows written by older imports may still carry
// Spanish labels; service.NormalizeOrderStatus folds those into these values.
const (
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// Payment status constants
const (
	PaymentStatusPaid     = "paid"
	PaymentStatusCanceled = "canceled"
)

// Cart status constants
const (
	CartStatusOpen   = "open"
	CartStatusClosed = "closed"
)

// Stored payment method types
const (
	PaymentMethodTypeCard   = "tarjeta"
	PaymentMethodTypePaypal = "paypal"
)

// Invoice numbering
const (
	DefaultInvoicePrefix = "FAC-EEV-"
	InvoiceNumberDigits  = 5
)

// Order mask layout: ORD-<yyyy-MM-dd>#<zero padded id>
const (
	OrderMaskPrefix   = "ORD-"
	OrderMaskIDDigits = 8
)

// Shipping list paging bounds
const (
	ShippingListDefaultTake = 50
	ShippingListMaxTake     = 500
)

// CancelWindowDays is how long after creation a paid order may still be canceled.
const CancelWindowDays = 30

// Queue names and async task types
const (
	QueueDefault         = "default"
	TaskCheckoutFinalize = "checkout:finalize"
)

// Chat roles used by the conversation context store
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// JWT role claim values
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
