package constant

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether the value is a known role
func ValidRole(r Role) bool {
	return r == RoleCustomer || r == RoleAdmin
}

// RoleList is stored as a comma separated column in MySQL
type RoleList []Role

func (r RoleList) Has(role Role) bool {
	for _, v := range r {
		if v == role {
			return true
		}
	}
	return false
}

func (r RoleList) Value() (driver.Value, error) {
	parts := make([]string, 0, len(r))
	for _, v := range r {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ","), nil
}

func (r *RoleList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("unsupported roles column type %T", src)
	}

	if raw == "" {
		*r = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	roles := make(RoleList, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, Role(strings.TrimSpace(p)))
	}
	*r = roles
	return nil
}
