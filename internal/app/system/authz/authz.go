// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/caristo/adminhub/internal/app/system/auth"
)

// UserCtx returns the admin's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false, so callers can trust that
// ok=true means a valid, authenticated admin with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, adminID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	adminID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed ID in session: fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, adminID, true
}

// IsSuperAdmin reports whether the current request's admin is a superadmin.
func IsSuperAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "superadmin"
}

// IsAdmin reports whether the current request's user may manage
// marketplace content. Superadmins are admins for permission purposes.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == "admin" || role == "superadmin")
}

// CanManageAdmins reports whether the current admin may create, disable,
// or delete dashboard accounts. Only superadmins can.
func CanManageAdmins(r *http.Request) bool {
	return IsSuperAdmin(r)
}
