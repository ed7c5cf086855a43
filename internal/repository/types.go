package repository

import "time"

// ProductListFilter narrows catalog listings.
type ProductListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// OrderListFilter narrows order listings.
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ShippingListFilter narrows the console shipping queues. IDs holds
// order ids extracted from mask searches; when set it overrides Search.
type ShippingListFilter struct {
	Status string
	Take   int
	IDs    []uint
}
