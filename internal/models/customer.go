package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a storefront account. Role distinguishes console admins
// from regular shoppers.
type Customer struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"`
	Name         string         `gorm:"type:varchar(120)" json:"name"`
	Role         string         `gorm:"type:varchar(20);not null;default:'customer';index" json:"role"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Addresses []Address `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// Address is a customer shipping address.
type Address struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Line1      string    `gorm:"type:varchar(200);not null" json:"line1"`
	Line2      string    `gorm:"type:varchar(200)" json:"line2,omitempty"`
	City       string    `gorm:"type:varchar(100)" json:"city"`
	State      string    `gorm:"type:varchar(100)" json:"state"`
	PostalCode string    `gorm:"type:varchar(20)" json:"postal_code"`
	Country    string    `gorm:"type:varchar(100)" json:"country"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}
