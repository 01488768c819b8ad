// Package auth derives the acting principal from the session layer and
// implements the login, registration and session rotation flows.
package auth

import "courtside/models"

// Principal is the acting user resolved from the current request's
// session state. A zero Principal means no authenticated user.
type Principal struct {
	User *models.User
}

// IsLoggedIn reports whether a user is attached to the request.
func (p Principal) IsLoggedIn() bool {
	return p.User != nil
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.User != nil && p.User.Role == models.RoleAdmin
}

// IsUser reports whether the principal holds the plain USER role.
func (p Principal) IsUser() bool {
	return p.User != nil && p.User.Role == models.RoleUser
}

// IsOwner reports whether the principal owns the resource with the
// given owner id. An empty owner id never matches.
func (p Principal) IsOwner(ownerID string) bool {
	return p.User != nil && ownerID != "" && p.User.ID == ownerID
}

// UserID returns the principal's id, or the empty string when absent.
func (p Principal) UserID() string {
	if p.User == nil {
		return ""
	}
	return p.User.ID
}
