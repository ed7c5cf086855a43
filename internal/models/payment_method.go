package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// PaymentMethod is a stored card or PayPal account. CardNumber and CVV
// never leave the server; responses carry MaskedNumber only.
type PaymentMethod struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CustomerID  uint           `gorm:"index;not null" json:"customer_id"`
	Type        string         `gorm:"type:varchar(20);not null" json:"type"`
	CardNumber  string         `gorm:"type:varchar(30)" json:"-"`
	CVV         string         `gorm:"type:varchar(8)" json:"-"`
	ExpMonth    int            `json:"exp_month,omitempty"`
	ExpYear     int            `json:"exp_year,omitempty"`
	PaypalEmail string         `gorm:"type:varchar(200)" json:"paypal_email,omitempty"`
	IsPrimary   bool           `gorm:"index" json:"is_primary"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// MaskedNumber returns the display form of a stored card, keeping only
// the last four digits.
func (m PaymentMethod) MaskedNumber() string {
	digits := strings.TrimSpace(m.CardNumber)
	if len(digits) < 4 {
		return ""
	}
	return "•••• •••• •••• " + digits[len(digits)-4:]
}
