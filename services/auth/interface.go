package auth

import (
	"context"

	"courtside/models"
)

// RegisterInput is a self-service account registration request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService implements account and session management. Sessions are
// opaque tokens carried in a cookie; only their hash is stored, and a
// fresh token is issued on every successful login so older sessions
// for the account are rotated out.
type AuthService interface {
	// Register creates a member account. The ADMIN role is never
	// assignable through registration.
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	// Login verifies the password and opens a session. A device push
	// token may be handed along to be registered in the same step.
	// The returned token goes into the session cookie.
	Login(ctx context.Context, email, password, fcmToken string) (*models.User, string, error)
	// RequestLoginCode issues a one-time login code for the account.
	// The code is returned for delivery; it expires after ten minutes.
	RequestLoginCode(ctx context.Context, email string) (string, error)
	// LoginWithCode consumes a one-time code and opens a session.
	LoginWithCode(ctx context.Context, email, code, fcmToken string) (*models.User, string, error)
	// Logout closes the actor's session and detaches its push tokens.
	Logout(ctx context.Context, actor Principal) error
	// ResolveSession maps a cookie token back to the account holding it.
	// A nil principal with nil error means the token matches no session.
	ResolveSession(ctx context.Context, token string) (Principal, error)
	// RegisterFCMToken attaches a device push token to the account and
	// subscribes it to the account's notification topics.
	RegisterFCMToken(ctx context.Context, actor Principal, token string) error
	// ListUsers returns all accounts, credential material stripped.
	// Admin only.
	ListUsers(ctx context.Context, actor Principal) ([]models.SanitizedUser, error)
}
