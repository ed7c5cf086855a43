package models

import "time"

// Payment records the settlement of an order. No external gateway is
// called; the row is created already in status paid with an empty
// transaction reference.
type Payment struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	OrderID         uint      `gorm:"index;not null" json:"order_id"`
	PaymentMethodID *uint     `gorm:"index" json:"payment_method_id,omitempty"`
	Amount          Money     `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`
	Status          string    `gorm:"type:varchar(20);not null;index" json:"status"`
	TransactionRef  string    `gorm:"type:varchar(100)" json:"transaction_ref,omitempty"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
