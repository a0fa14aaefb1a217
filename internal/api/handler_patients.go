package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-admissions-backend/internal/model"
	"clinic-admissions-backend/internal/store"
	"clinic-admissions-backend/internal/validate"
)

// RegisterPatient handles the POST /api/patient request.
func (h *Handler) RegisterPatient(c *gin.Context) {
	var draft model.Patient
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if reasons := validate.Patient(&draft); len(reasons) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": reasons})
		return
	}

	if err := h.store.RegisterPatient(c.Request.Context(), &draft); err != nil {
		if errors.Is(err, store.ErrNotApplicable) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/patient/%s", draft.ID))
	c.JSON(http.StatusCreated, draft)
}

// SearchPatients handles the GET /api/patient?Search= request. A missing
// or empty search term matches every patient.
func (h *Handler) SearchPatients(c *gin.Context) {
	patients, err := h.store.SearchPatients(c.Request.Context(), c.Query("Search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patients)
}
