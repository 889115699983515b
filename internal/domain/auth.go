package domain

import "time"

// RoleAdmin is the role required for every /admin route.
const RoleAdmin = "admin"

// TokenVerifier verifies a bearer token and returns the authenticated user ID.
// A valid token lacking the required role yields ErrForbidden.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// TokenIssuer signs access tokens for organizers.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}
