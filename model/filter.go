package model

import "time"

// Sort directions accepted on the customer list endpoint
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// CustomerListFilter is the parsed customer list query. Every range bound is
// independently optional; nil means the bound is absent. SortColumn is already
// mapped to a real column name so repositories can interpolate it directly.
type CustomerListFilter struct {
	RegistrationFrom *time.Time
	RegistrationTo   *time.Time
	LastOrderFrom    *time.Time
	LastOrderTo      *time.Time
	TotalAmountFrom  *float64
	TotalAmountTo    *float64
	OrderCountFrom   *int
	OrderCountTo     *int

	// Search is empty when absent or when the raw term was too long
	Search string

	SortColumn string
	SortDesc   bool

	Page  int
	Limit int
}

// Skip computes the row offset for the current page
func (f *CustomerListFilter) Skip() int {
	return (f.Page - 1) * f.Limit
}
