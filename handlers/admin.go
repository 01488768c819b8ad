package handlers

import (
	"github.com/gin-gonic/gin"

	"courtside/services/auth"
)

// AdminHandler serves the admin account views.
type AdminHandler struct {
	Auth auth.AuthService
}

// NewAdminHandler constructs the admin endpoint handler.
func NewAdminHandler(authSvc auth.AuthService) *AdminHandler {
	return &AdminHandler{Auth: authSvc}
}

// ListUsers returns every account, credential material stripped.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Auth.ListUsers(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, users)
}
