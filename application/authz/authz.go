package authz

import (
	"context"
	"strconv"

	"github.com/muhammadheryan/customer-hub/constant"
	"github.com/muhammadheryan/customer-hub/model"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
)

// OwnerLoader resolves the owner of a resource by id. found is false when the
// resource does not exist.
type OwnerLoader func(ctx context.Context, id uint64) (ownerID uint64, found bool, err error)

// RequireRoles passes when the identity holds at least one of the required
// roles. It is a pure decision, usable without any HTTP plumbing.
func RequireRoles(identity *model.UserEntity, roles ...constant.Role) error {
	if identity == nil {
		return cerr.SetCustomError(constant.ErrUnauthorize)
	}

	for _, role := range roles {
		if identity.Roles.Has(role) {
			return nil
		}
	}
	return cerr.SetCustomError(constant.ErrForbidden)
}

// RequireOwnerOrAdmin passes when the identity owns the resource named by
// rawID, or holds the admin role. Admins skip the entity load entirely;
// everyone else gets a fresh ownership check against the store, never a
// client-supplied claim.
func RequireOwnerOrAdmin(ctx context.Context, loader OwnerLoader, identity *model.UserEntity, rawID string) error {
	if identity == nil {
		return cerr.SetCustomError(constant.ErrUnauthorize)
	}

	if rawID == "" {
		return cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	if identity.Roles.Has(constant.RoleAdmin) {
		return nil
	}

	ownerID, found, err := loader(ctx, id)
	if err != nil {
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if !found {
		return cerr.SetCustomError(constant.ErrNotFound)
	}

	if ownerID != identity.ID {
		return cerr.SetCustomError(constant.ErrForbidden)
	}
	return nil
}
