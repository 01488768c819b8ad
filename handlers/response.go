// Package handlers exposes the HTTP surface of the booking API. Every
// response is wrapped in the envelope the PWA consumes: successes carry
// {success, endpoint, data} plus the operation for mutations, failures
// carry {success, endpoint, errors}.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courtside/services/auth"
	"courtside/utils"
)

// Mutation operations reported in success envelopes.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// principalKey is the context key the auth middleware stores the
// resolved principal under.
const principalKey = "principal"

// CurrentPrincipal extracts the acting principal set by the session
// middleware. A zero principal is returned for unauthenticated routes.
func CurrentPrincipal(c *gin.Context) auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}
	}
	p, ok := v.(auth.Principal)
	if !ok {
		return auth.Principal{}
	}
	return p
}

// SetPrincipal stores the resolved principal on the request context.
func SetPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(principalKey, p)
}

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"endpoint": c.FullPath(),
		"data":     data,
	})
}

func respondOperation(c *gin.Context, operation string, data any) {
	status := http.StatusOK
	if operation == OpCreated {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success":   true,
		"endpoint":  c.FullPath(),
		"operation": operation,
		"data":      data,
	})
}

// respondError maps a service failure onto the error envelope. Domain
// errors carry their own status and payload; anything else is logged
// and reported as an internal error without leaking details.
func respondError(c *gin.Context, err error) {
	var apiErr *utils.APIError
	if !errors.As(err, &apiErr) {
		utils.GetLogger().Error("handler: unexpected error",
			zap.String("endpoint", c.FullPath()), zap.Error(err))
		apiErr = utils.NewAPIError(utils.ErrInternalServer, nil)
	}

	entry := gin.H{"message": apiErr.Code}
	for k, v := range apiErr.Data {
		entry[k] = v
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"success":  false,
		"endpoint": c.FullPath(),
		"errors":   []gin.H{entry},
	})
}

func respondInvalidData(c *gin.Context, err error) {
	respondError(c, utils.NewAPIError(utils.ErrInvalidData, map[string]any{"details": err.Error()}))
}
