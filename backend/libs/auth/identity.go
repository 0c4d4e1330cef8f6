package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// Identity headers the gateway sets on forwarded requests. Services behind
// the gateway trust them; clients cannot set them because the gateway
// overwrites them.
const (
	HeaderStaffID = "X-Staff-ID"
	HeaderCafeID  = "X-Cafe-ID"
	HeaderRole    = "X-User-Role"
)

// ErrMissingIdentity is returned when identity headers are absent or malformed.
var ErrMissingIdentity = errors.New("auth: missing identity headers")

// Identity is the caller as seen by services behind the gateway.
type Identity struct {
	StaffID uuid.UUID
	CafeID  uuid.UUID
	Role    string
}

// SetIdentityHeaders replaces any identity headers on h with the claims.
func SetIdentityHeaders(h http.Header, claims *Claims) {
	h.Del(HeaderStaffID)
	h.Del(HeaderCafeID)
	h.Del(HeaderRole)
	if claims == nil {
		return
	}
	h.Set(HeaderStaffID, claims.Subject)
	h.Set(HeaderRole, claims.Role)
	if claims.CafeID != "" {
		h.Set(HeaderCafeID, claims.CafeID)
	}
}

// StaffFromHeaders reads a staff identity. Both ids must be valid UUIDs.
func StaffFromHeaders(h http.Header) (Identity, error) {
	staffID, err := uuid.Parse(h.Get(HeaderStaffID))
	if err != nil {
		return Identity{}, ErrMissingIdentity
	}
	cafeID, err := uuid.Parse(h.Get(HeaderCafeID))
	if err != nil {
		return Identity{}, ErrMissingIdentity
	}
	role := h.Get(HeaderRole)
	if role == "" {
		role = RoleStaff
	}
	return Identity{StaffID: staffID, CafeID: cafeID, Role: role}, nil
}
