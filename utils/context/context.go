package context

import (
	"context"

	"github.com/muhammadheryan/customer-hub/constant"
	"github.com/muhammadheryan/customer-hub/model"
)

// WithIdentity attaches the authenticated user to the request context
func WithIdentity(ctx context.Context, identity *model.UserEntity) context.Context {
	return context.WithValue(ctx, constant.IdentityKey, identity)
}

// GetIdentity returns the authenticated user, nil when no auth middleware ran
func GetIdentity(ctx context.Context) (*model.UserEntity, bool) {
	v := ctx.Value(constant.IdentityKey)
	if v == nil {
		return nil, false
	}
	identity, ok := v.(*model.UserEntity)
	return identity, ok
}
