package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/customer-hub/application/authz"
	"github.com/muhammadheryan/customer-hub/constant"
	utilsContext "github.com/muhammadheryan/customer-hub/utils/context"
)

// requireRoles wraps a handler with a role check against the context identity.
// The wrapping is visible at route registration, so each route's guard chain
// reads as an explicit pipeline.
func requireRoles(next http.HandlerFunc, roles ...constant.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := utilsContext.GetIdentity(r.Context())
		if err := authz.RequireRoles(identity, roles...); err != nil {
			writeError(w, err)
			return
		}
		next(w, r)
	}
}

// requireOwnerOrAdmin wraps a handler with an ownership check on the resource
// named by the idParam path variable.
func requireOwnerOrAdmin(loader authz.OwnerLoader, idParam string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := utilsContext.GetIdentity(r.Context())
		rawID := mux.Vars(r)[idParam]
		if err := authz.RequireOwnerOrAdmin(r.Context(), loader, identity, rawID); err != nil {
			writeError(w, err)
			return
		}
		next(w, r)
	}
}
