package customer

import (
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/muhammadheryan/customer-hub/constant"
	"github.com/muhammadheryan/customer-hub/model"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
)

const (
	// MaxPageSize is an absolute ceiling, the caller cannot raise it
	MaxPageSize = 10

	// Search terms at or over this length are ignored entirely
	maxSearchLength = 100

	defaultSortColumn = "created_at"
)

// sortColumns maps public sort field names to real columns. Anything outside
// the allowlist falls back to the default sort.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"name":          "name",
	"totalAmount":   "total_amount",
	"orderCount":    "order_count",
	"lastOrderDate": "last_order_date",
}

// BuildListFilter parses the raw customer list query into a filter in one
// validated step. Every bound is independently optional; malformed values are
// rejected instead of silently dropped.
func BuildListFilter(query url.Values) (*model.CustomerListFilter, error) {
	filter := &model.CustomerListFilter{
		Page:       1,
		Limit:      MaxPageSize,
		SortColumn: defaultSortColumn,
		SortDesc:   true,
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
		}
		if page < 1 {
			page = 1
		}
		filter.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
		}
		if limit > 0 {
			filter.Limit = min(limit, MaxPageSize)
		}
	}

	if raw := query.Get("sortField"); raw != "" {
		if col, ok := sortColumns[raw]; ok {
			filter.SortColumn = col
		}
	}
	if raw := query.Get("sortOrder"); raw != "" {
		filter.SortDesc = raw == model.SortOrderDesc
	}

	var err error
	if filter.RegistrationFrom, err = parseDate(query.Get("registrationDateFrom"), false); err != nil {
		return nil, err
	}
	if filter.RegistrationTo, err = parseDate(query.Get("registrationDateTo"), true); err != nil {
		return nil, err
	}
	if filter.LastOrderFrom, err = parseDate(query.Get("lastOrderDateFrom"), false); err != nil {
		return nil, err
	}
	if filter.LastOrderTo, err = parseDate(query.Get("lastOrderDateTo"), true); err != nil {
		return nil, err
	}

	if filter.TotalAmountFrom, err = parseFloat(query.Get("totalAmountFrom")); err != nil {
		return nil, err
	}
	if filter.TotalAmountTo, err = parseFloat(query.Get("totalAmountTo")); err != nil {
		return nil, err
	}
	if filter.OrderCountFrom, err = parseInt(query.Get("orderCountFrom")); err != nil {
		return nil, err
	}
	if filter.OrderCountTo, err = parseInt(query.Get("orderCountTo")); err != nil {
		return nil, err
	}

	if search := query.Get("search"); search != "" && utf8.RuneCountInString(search) < maxSearchLength {
		filter.Search = search
	}

	return filter, nil
}

// parseDate accepts a plain date or an RFC3339 timestamp. Upper bounds are
// pushed to the end of their day so the whole day is included.
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
		}
		t = t.Local()
	}

	if endOfDay {
		t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, time.Local)
	}
	return &t, nil
}

func parseFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	return &f, nil
}

func parseInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	return &n, nil
}
