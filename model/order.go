package model

import "time"

// OrderEntity represents the order table entity. UserID is nullable so orders
// survive their customer being deleted.
type OrderEntity struct {
	ID              uint64     `db:"id" json:"id"`
	UserID          *uint64    `db:"user_id" json:"user_id,omitempty"`
	DeliveryAddress string     `db:"delivery_address" json:"delivery_address"`
	Total           float64    `db:"total" json:"total"`
	Status          int        `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type OrderResponse struct {
	ID              uint64    `json:"_id"`
	UserID          *uint64   `json:"customer,omitempty"`
	DeliveryAddress string    `json:"deliveryAddress"`
	Total           float64   `json:"total"`
	Status          int       `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}
