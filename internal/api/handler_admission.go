package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clinic-admissions-backend/internal/store"
)

type admitRequest struct {
	RoomID    int64     `json:"roomId" binding:"required"`
	PatientID uuid.UUID `json:"patientId" binding:"required"`
}

// AdmitPatient handles the POST /api/patient/admit request. Unknown ids,
// an already admitted patient and a full room all answer the same bare
// bad request.
func (h *Handler) AdmitPatient(c *gin.Context) {
	var req admitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.AdmitPatient(c.Request.Context(), req.PatientID, req.RoomID); err != nil {
		if errors.Is(err, store.ErrNotApplicable) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

type checkoutRequest struct {
	ID uuid.UUID `json:"id" binding:"required"`
}

// CheckoutPatient handles the POST /api/patient/checkout request. The
// body is a patient reference; any extra fields are ignored.
func (h *Handler) CheckoutPatient(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	freedRoomID, err := h.store.CheckoutPatient(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotApplicable) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.notifyBedAvailable(freedRoomID)
	c.Status(http.StatusNoContent)
}
