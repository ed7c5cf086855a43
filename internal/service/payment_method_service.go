package service

import (
	"strings"

	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"gorm.io/gorm"
)

// PaymentMethodView is the safe response shape of a stored method.
// Card numbers show as a mask and the CVV is never included.
type PaymentMethodView struct {
	ID           uint   `json:"id"`
	Type         string `json:"type"`
	MaskedNumber string `json:"masked_number,omitempty"`
	ExpMonth     int    `json:"exp_month,omitempty"`
	ExpYear      int    `json:"exp_year,omitempty"`
	PaypalEmail  string `json:"paypal_email,omitempty"`
	IsPrimary    bool   `json:"is_primary"`
}

// SavePaymentMethodInput carries a new stored method.
type SavePaymentMethodInput struct {
	CustomerID  uint
	Type        string
	CardNumber  string
	CVV         string
	ExpMonth    int
	ExpYear     int
	PaypalEmail string
	IsPrimary   bool
}

// PaymentMethodService manages stored cards and PayPal accounts.
type PaymentMethodService struct {
	methodRepo repository.PaymentMethodRepository
}

// NewPaymentMethodService creates a payment method service.
func NewPaymentMethodService(methodRepo repository.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{methodRepo: methodRepo}
}

// List returns a customer's stored methods, principal first.
func (s *PaymentMethodService) List(customerID uint) ([]PaymentMethodView, error) {
	methods, err := s.methodRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	views := make([]PaymentMethodView, 0, len(methods))
	for _, method := range methods {
		views = append(views, toPaymentMethodView(method))
	}
	return views, nil
}

// Save validates and stores a new method. Making a method primary
// demotes any previous primary within the same transaction.
func (s *PaymentMethodService) Save(input SavePaymentMethodInput) (*PaymentMethodView, error) {
	if input.CustomerID == 0 {
		return nil, ErrInvalidOrderItem
	}

	method := models.PaymentMethod{
		CustomerID: input.CustomerID,
		IsPrimary:  input.IsPrimary,
	}
	if err := applyPaymentMethodInput(&method, input); err != nil {
		return nil, err
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		methodRepo := s.methodRepo.WithTx(tx)
		if method.IsPrimary {
			if err := methodRepo.ClearPrimary(input.CustomerID); err != nil {
				return err
			}
		}
		return methodRepo.Create(&method)
	})
	if err != nil {
		return nil, err
	}

	view := toPaymentMethodView(method)
	return &view, nil
}

// Update overwrites a stored method's fields after the same per-type
// validation as Save.
func (s *PaymentMethodService) Update(id uint, input SavePaymentMethodInput) (*PaymentMethodView, error) {
	method, err := s.methodRepo.GetByIDAndCustomer(id, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrPaymentMethodNotFound
	}
	if err := applyPaymentMethodInput(method, input); err != nil {
		return nil, err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		methodRepo := s.methodRepo.WithTx(tx)
		if input.IsPrimary && !method.IsPrimary {
			if err := methodRepo.ClearPrimary(input.CustomerID); err != nil {
				return err
			}
			method.IsPrimary = true
		}
		return methodRepo.Update(method)
	})
	if err != nil {
		return nil, err
	}

	view := toPaymentMethodView(*method)
	return &view, nil
}

// Delete removes a stored method scoped to its owner.
func (s *PaymentMethodService) Delete(id, customerID uint) error {
	method, err := s.methodRepo.GetByIDAndCustomer(id, customerID)
	if err != nil {
		return err
	}
	if method == nil {
		return ErrPaymentMethodNotFound
	}
	return s.methodRepo.Delete(id, customerID)
}

// MakePrimary promotes one stored method to principal.
func (s *PaymentMethodService) MakePrimary(id, customerID uint) error {
	method, err := s.methodRepo.GetByIDAndCustomer(id, customerID)
	if err != nil {
		return err
	}
	if method == nil {
		return ErrPaymentMethodNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		methodRepo := s.methodRepo.WithTx(tx)
		if err := methodRepo.ClearPrimary(customerID); err != nil {
			return err
		}
		method.IsPrimary = true
		return methodRepo.Update(method)
	})
}

// applyPaymentMethodInput validates the input for its method type and
// copies the typed fields onto the record.
func applyPaymentMethodInput(method *models.PaymentMethod, input SavePaymentMethodInput) error {
	method.Type = strings.ToLower(strings.TrimSpace(input.Type))

	switch method.Type {
	case constants.PaymentMethodTypeCard:
		digits := digitsOnly(input.CardNumber)
		if len(digits) < 15 {
			return ErrInvalidCardNumber
		}
		cvv := strings.TrimSpace(input.CVV)
		if len(cvv) < 3 || len(cvv) > 4 || digitsOnly(cvv) != cvv {
			return ErrInvalidCVV
		}
		if input.ExpMonth < 1 || input.ExpMonth > 12 || input.ExpYear <= 0 {
			return ErrInvalidExpiry
		}
		method.CardNumber = digits
		method.CVV = cvv
		method.ExpMonth = input.ExpMonth
		method.ExpYear = input.ExpYear
		method.PaypalEmail = ""
	case constants.PaymentMethodTypePaypal:
		email := strings.TrimSpace(input.PaypalEmail)
		if email == "" || !strings.Contains(email, "@") {
			return ErrInvalidPaypalEmail
		}
		method.PaypalEmail = email
		method.CardNumber = ""
		method.CVV = ""
		method.ExpMonth = 0
		method.ExpYear = 0
	default:
		return ErrInvalidMethodType
	}
	return nil
}

func toPaymentMethodView(method models.PaymentMethod) PaymentMethodView {
	return PaymentMethodView{
		ID:           method.ID,
		Type:         method.Type,
		MaskedNumber: method.MaskedNumber(),
		ExpMonth:     method.ExpMonth,
		ExpYear:      method.ExpYear,
		PaypalEmail:  method.PaypalEmail,
		IsPrimary:    method.IsPrimary,
	}
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
