package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courtside/config"
	"courtside/services/auth"
	"courtside/utils"
)

// Session cookie lifetime in seconds (30 days). The cookie outlives the
// Redis cache entry; expired cache entries fall back to Mongo.
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// AuthHandler serves registration, login and session endpoints.
type AuthHandler struct {
	Service auth.AuthService
}

// NewAuthHandler constructs the auth endpoint handler.
func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, token, sessionCookieMaxAge, "/", "", config.IsProduction(), true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", config.IsProduction(), true)
}

// Register creates a member account.
func (h *AuthHandler) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}

	user, err := h.Service.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOperation(c, OpCreated, user.Sanitize())
}

// Login opens a session for a password credential and sets the cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}

	user, token, err := h.Service.Login(c.Request.Context(), in.Email, in.Password, in.FCMToken)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, token)
	respondData(c, user.Sanitize())
}

// RequestLoginCode issues a one-time login code. The code reaches the
// member out of band; outside production it is echoed for development.
func (h *AuthHandler) RequestLoginCode(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}

	code, err := h.Service.RequestLoginCode(c.Request.Context(), in.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.GetLogger().Info("auth: login code issued", zap.String("email", in.Email))
	if config.IsProduction() {
		respondData(c, gin.H{"issued": true})
		return
	}
	respondData(c, gin.H{"issued": true, "code": code})
}

// LoginWithCode consumes a one-time code and opens a session.
func (h *AuthHandler) LoginWithCode(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Code     string `json:"code"`
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}

	user, token, err := h.Service.LoginWithCode(c.Request.Context(), in.Email, in.Code, in.FCMToken)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, token)
	respondData(c, user.Sanitize())
}

// Logout closes the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context(), CurrentPrincipal(c)); err != nil {
		respondError(c, err)
		return
	}
	clearSessionCookie(c)
	respondData(c, gin.H{"loggedOut": true})
}

// CurrentUser returns the account behind the session cookie.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	p := CurrentPrincipal(c)
	if !p.IsLoggedIn() {
		respondError(c, utils.NewAPIError(utils.ErrUnauthorized, nil))
		return
	}
	respondData(c, p.User.Sanitize())
}

// RegisterFCMToken attaches a device push token to the account.
func (h *AuthHandler) RegisterFCMToken(c *gin.Context) {
	var in struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}

	if err := h.Service.RegisterFCMToken(c.Request.Context(), CurrentPrincipal(c), in.Token); err != nil {
		respondError(c, err)
		return
	}
	respondOperation(c, OpUpdated, gin.H{"registered": true})
}
