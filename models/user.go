package models

import (
	"fmt"
	"regexp"
	"time"
)

// User roles.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var emailRe = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

// LoginCode is one-time login-code material, time-boxed at issuance.
type LoginCode struct {
	Value     string    `bson:"value" json:"-"`
	ExpiresAt time.Time `bson:"expiresAt" json:"-"`
}

// User is a club member or administrator account.
type User struct {
	ID           string     `bson:"id" json:"_id"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email"`
	Role         string     `bson:"role" json:"role"`
	PasswordHash string     `bson:"passwordHash,omitempty" json:"-"`
	SessionHash  string     `bson:"sessionHash,omitempty" json:"-"`
	FCMTokens    []string   `bson:"fcmTokens,omitempty" json:"-"`
	LoginCode    *LoginCode `bson:"loginCode,omitempty" json:"-"`
}

// SanitizedUser is the projection returned to clients.
type SanitizedUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Sanitize strips credential material from the user document.
func (u *User) Sanitize() SanitizedUser {
	return SanitizedUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// AddFCMToken registers a push token, deduplicating existing entries.
func (u *User) AddFCMToken(token string) {
	if token == "" {
		return
	}
	for _, t := range u.FCMTokens {
		if t == token {
			return
		}
	}
	u.FCMTokens = append(u.FCMTokens, token)
}

// Validate checks the user document before persistence.
func (u *User) Validate() error {
	if u.Name == "" || len(u.Name) > 60 {
		return fmt.Errorf("user name must be 1-60 characters")
	}
	if !emailRe.MatchString(u.Email) {
		return fmt.Errorf("%s is not a valid email", u.Email)
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return fmt.Errorf("invalid user role %q", u.Role)
	}
	return nil
}
