package models

import "time"

// Invoice is issued together with its order inside the checkout
// transaction, exactly one per order. InvoiceNo is unique; the
// generator retries on collision.
type Invoice struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	InvoiceNo string    `gorm:"uniqueIndex;not null" json:"invoice_no"`
	Total     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	IssuedAt  time.Time `gorm:"index" json:"issued_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem mirrors an order line on the invoice.
type InvoiceItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	InvoiceID uint  `gorm:"index;not null" json:"invoice_id"`
	ProductID uint  `gorm:"index;not null" json:"product_id"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	UnitPrice Money `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
