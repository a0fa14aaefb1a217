package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRooms handles the GET /api/rooms request. Rooms are provisioned from
// seed configuration, so this is the only room surface the API exposes.
func (h *Handler) GetRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}
