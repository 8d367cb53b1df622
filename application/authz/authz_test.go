package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadheryan/customer-hub/application/authz"
	"github.com/muhammadheryan/customer-hub/constant"
	"github.com/muhammadheryan/customer-hub/model"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
)

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()

	if want == constant.Successful {
		if err != nil {
			t.Fatalf("expected pass, got %v", err)
		}
		return
	}

	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

func TestRequireRoles(t *testing.T) {
	customer := &model.UserEntity{
		ID:    7,
		Roles: constant.RoleList{constant.RoleCustomer},
	}

	tests := []struct {
		name     string
		identity *model.UserEntity
		roles    []constant.Role
		want     constant.ErrorType
	}{
		{
			name:     "error: nil identity is unauthorized",
			identity: nil,
			roles:    []constant.Role{constant.RoleAdmin},
			want:     constant.ErrUnauthorize,
		},
		{
			name:     "error: customer requesting admin-only",
			identity: customer,
			roles:    []constant.Role{constant.RoleAdmin},
			want:     constant.ErrForbidden,
		},
		{
			name:     "success: requirement set intersects",
			identity: customer,
			roles:    []constant.Role{constant.RoleCustomer, constant.RoleAdmin},
			want:     constant.Successful,
		},
		{
			name: "success: admin passes admin-only",
			identity: &model.UserEntity{
				ID:    1,
				Roles: constant.RoleList{constant.RoleAdmin},
			},
			roles: []constant.Role{constant.RoleAdmin},
			want:  constant.Successful,
		},
		{
			name: "error: empty role set never intersects",
			identity: &model.UserEntity{
				ID: 2,
			},
			roles: []constant.Role{constant.RoleCustomer},
			want:  constant.ErrForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := authz.RequireRoles(tt.identity, tt.roles...)
			assertErrCode(t, err, tt.want)
		})
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	owner := &model.UserEntity{
		ID:    42,
		Roles: constant.RoleList{constant.RoleCustomer},
	}
	admin := &model.UserEntity{
		ID:    1,
		Roles: constant.RoleList{constant.RoleAdmin},
	}

	staticLoader := func(ownerID uint64, found bool, err error) authz.OwnerLoader {
		return func(ctx context.Context, id uint64) (uint64, bool, error) {
			return ownerID, found, err
		}
	}

	tests := []struct {
		name       string
		loader     authz.OwnerLoader
		identity   *model.UserEntity
		rawID      string
		want       constant.ErrorType
		loadCalled *bool
	}{
		{
			name:     "error: nil identity is unauthorized",
			loader:   staticLoader(42, true, nil),
			identity: nil,
			rawID:    "10",
			want:     constant.ErrUnauthorize,
		},
		{
			name:     "error: missing id param",
			loader:   staticLoader(42, true, nil),
			identity: owner,
			rawID:    "",
			want:     constant.ErrInvalidRequest,
		},
		{
			name:     "error: malformed id param",
			loader:   staticLoader(42, true, nil),
			identity: owner,
			rawID:    "not-a-number",
			want:     constant.ErrInvalidRequest,
		},
		{
			name:     "error: missing entity reported before ownership",
			loader:   staticLoader(0, false, nil),
			identity: owner,
			rawID:    "10",
			want:     constant.ErrNotFound,
		},
		{
			name:     "error: owner mismatch",
			loader:   staticLoader(99, true, nil),
			identity: owner,
			rawID:    "10",
			want:     constant.ErrForbidden,
		},
		{
			name:     "error: loader failure maps to internal",
			loader:   staticLoader(0, false, errors.New("db down")),
			identity: owner,
			rawID:    "10",
			want:     constant.ErrInternal,
		},
		{
			name:     "success: owner matches",
			loader:   staticLoader(42, true, nil),
			identity: owner,
			rawID:    "10",
			want:     constant.Successful,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := authz.RequireOwnerOrAdmin(context.Background(), tt.loader, tt.identity, tt.rawID)
			assertErrCode(t, err, tt.want)
		})
	}

	t.Run("success: admin bypass skips the entity load", func(t *testing.T) {
		loaded := false
		loader := func(ctx context.Context, id uint64) (uint64, bool, error) {
			loaded = true
			return 999, true, nil
		}

		if err := authz.RequireOwnerOrAdmin(context.Background(), loader, admin, "10"); err != nil {
			t.Fatalf("admin bypass failed: %v", err)
		}
		if loaded {
			t.Fatal("admin bypass should not load the entity")
		}
	})
}
