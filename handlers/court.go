package handlers

import (
	"github.com/gin-gonic/gin"

	"courtside/models"
	"courtside/services/court"
)

// CourtHandler serves the court catalog endpoints.
type CourtHandler struct {
	Service court.CourtService
}

// NewCourtHandler constructs the court endpoint handler.
func NewCourtHandler(svc court.CourtService) *CourtHandler {
	return &CourtHandler{Service: svc}
}

// List returns all courts.
func (h *CourtHandler) List(c *gin.Context) {
	out, err := h.Service.GetAll(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, out)
}

// Get returns one court by id.
func (h *CourtHandler) Get(c *gin.Context) {
	out, err := h.Service.GetByID(c.Request.Context(), CurrentPrincipal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, out)
}

// Create adds a court to the catalog. Admin only.
func (h *CourtHandler) Create(c *gin.Context) {
	var in models.Court
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}

	out, err := h.Service.Create(c.Request.Context(), CurrentPrincipal(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOperation(c, OpCreated, out)
}

// Update replaces a court document. Admin only.
func (h *CourtHandler) Update(c *gin.Context) {
	var in models.Court
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}
	in.ID = c.Param("id")

	out, err := h.Service.Update(c.Request.Context(), CurrentPrincipal(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOperation(c, OpUpdated, out)
}

// Delete removes a court from the catalog. Admin only.
func (h *CourtHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), CurrentPrincipal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOperation(c, OpDeleted, gin.H{"deleted": true})
}
