package model

import (
	"time"

	"github.com/muhammadheryan/customer-hub/constant"
)

// UserEntity represents the user table entity
type UserEntity struct {
	ID            uint64            `db:"id" json:"id"`
	Name          string            `db:"name" json:"name"`
	Email         string            `db:"email" json:"email"`
	Roles         constant.RoleList `db:"roles" json:"roles"`
	PasswordHash  string            `db:"password_hash" json:"-"`
	TotalAmount   float64           `db:"total_amount" json:"total_amount"`
	OrderCount    int               `db:"order_count" json:"order_count"`
	LastOrderID   *uint64           `db:"last_order_id" json:"last_order_id,omitempty"`
	LastOrderDate *time.Time        `db:"last_order_date" json:"last_order_date,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time        `db:"updated_at" json:"updated_at,omitempty"`
}

func (u *UserEntity) IsAdmin() bool {
	return u != nil && u.Roles.Has(constant.RoleAdmin)
}

// UserFilter for looking up a single user
type UserFilter struct {
	ID    uint64
	Email string
}

// CustomerUpdate holds the whitelisted PATCH fields. Nil means keep current value.
type CustomerUpdate struct {
	Name  *string
	Email *string
	Roles *constant.RoleList
}

// OrderAggregates is the denormalized per-customer order summary
type OrderAggregates struct {
	TotalAmount   float64
	OrderCount    int
	LastOrderID   *uint64
	LastOrderDate *time.Time
}

// RegisterRequest for user registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// CustomerResponse is the projection returned by the customer endpoints
type CustomerResponse struct {
	ID            uint64            `json:"_id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Roles         constant.RoleList `json:"roles"`
	TotalAmount   float64           `json:"totalAmount"`
	OrderCount    int               `json:"orderCount"`
	LastOrderID   *uint64           `json:"lastOrder,omitempty"`
	LastOrderDate *time.Time        `json:"lastOrderDate,omitempty"`
}

type Pagination struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

type CustomerListResponse struct {
	Customers  []CustomerResponse `json:"customers"`
	Pagination Pagination         `json:"pagination"`
}
