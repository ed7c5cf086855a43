package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a confirmed purchase. StockAdjustedAt records when the
// checkout finalizer decremented stock and closed the source cart, so
// the task can run at most once per order.
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	CustomerID        uint           `gorm:"index;not null" json:"customer_id"`
	ShippingAddressID *uint          `gorm:"index" json:"shipping_address_id,omitempty"`
	CartID            *uint          `gorm:"index" json:"cart_id,omitempty"`
	Status            string         `gorm:"index;not null" json:"status"`
	Total             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	TrackingNumber    string         `gorm:"type:varchar(100)" json:"tracking_number,omitempty"`
	StockAdjustedAt   *time.Time     `json:"stock_adjusted_at,omitempty"`
	CanceledAt        *time.Time     `gorm:"index" json:"canceled_at,omitempty"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Invoice  *Invoice    `gorm:"foreignKey:OrderID" json:"invoice,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased line, with the unit price frozen at
// checkout time.
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
