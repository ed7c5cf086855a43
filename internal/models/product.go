package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. ModelRef is the merchant facing reference
// code and is unique across the catalog.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ModelRef    string         `gorm:"uniqueIndex;not null" json:"model_ref"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Image       string         `gorm:"type:varchar(500)" json:"image,omitempty"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
