package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"courtside/services/reservation"
	"courtside/utils"
)

// ReservationHandler serves the member and admin reservation endpoints.
type ReservationHandler struct {
	Service reservation.ReservationService
}

// NewReservationHandler constructs the reservation endpoint handler.
func NewReservationHandler(svc reservation.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// parseListQuery reads the date and offset query parameters shared by
// the listing endpoints. Dates may repeat (?date=a&date=b selects a
// range); a present offset switches to the recent-changes view.
func parseListQuery(c *gin.Context) (reservation.ListQuery, error) {
	q := reservation.ListQuery{Dates: c.QueryArray("date")}

	if raw, ok := c.GetQuery("offset"); ok {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return q, utils.NewAPIError(utils.ErrInvalidQuery, nil)
		}
		q.Offset = &offset
	}
	return q, nil
}

// List returns the actor's reservations for the selected dates, or the
// recent-changes view when an offset is present.
func (h *ReservationHandler) List(c *gin.Context) {
	q, err := parseListQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	out, err := h.Service.ListOwn(c.Request.Context(), CurrentPrincipal(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, out)
}

// Get returns one reservation by id.
func (h *ReservationHandler) Get(c *gin.Context) {
	out, err := h.Service.GetByIDs(c.Request.Context(), CurrentPrincipal(c), []string{c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	if len(out) == 0 {
		respondError(c, utils.NewAPIError(utils.ErrResourceNotFound, map[string]any{"resource": "reservation"}))
		return
	}
	respondData(c, out[0])
}

// Create books a slot.
func (h *ReservationHandler) Create(c *gin.Context) {
	var in reservation.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}

	r, err := h.Service.Create(c.Request.Context(), CurrentPrincipal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOperation(c, OpCreated, r)
}

// Update applies a partial edit to one reservation.
func (h *ReservationHandler) Update(c *gin.Context) {
	var in reservation.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}

	r, err := h.Service.Update(c.Request.Context(), CurrentPrincipal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOperation(c, OpUpdated, r)
}

// Delete removes a batch of reservations; the batch succeeds or fails
// as a whole.
func (h *ReservationHandler) Delete(c *gin.Context) {
	var in struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalidData(c, err)
		return
	}
	if len(in.IDs) == 0 {
		respondError(c, utils.NewAPIError(utils.ErrInvalidData, map[string]any{"details": "no ids given"}))
		return
	}

	deleted, err := h.Service.DeleteMany(c.Request.Context(), CurrentPrincipal(c), in.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOperation(c, OpDeleted, gin.H{"deleted": deleted})
}

// ListAll returns unscoped reservations for the admin calendar.
func (h *ReservationHandler) ListAll(c *gin.Context) {
	q, err := parseListQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	out, err := h.Service.ListAll(c.Request.Context(), CurrentPrincipal(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, out)
}
