package booking

import (
	"errors"
	"net/http"

	"github.com/aslanbek/stayhub/internal/media"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts reservation endpoints.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/bookings/:kind", handler.listBookings)
	group.POST("/bookings/:kind/delete", handler.deleteBookings)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) listBookings(c *gin.Context) {
	kind := Kind(c.Param("kind"))

	bookings, err := h.service.List(c.Request.Context(), kind)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown booking kind"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type deleteBookingsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *httpHandler) deleteBookings(c *gin.Context) {
	kind := Kind(c.Param("kind"))

	var req deleteBookingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.DeleteByIDs(c.Request.Context(), kind, req.IDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownKind):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown booking kind"})
		case errors.Is(err, media.ErrEmptyDeletion):
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids must not be empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete bookings"})
		}
		return
	}

	status := http.StatusOK
	if len(report.Deleted) == 0 && len(report.Orphaned) == 0 && len(report.Failed) == 0 {
		status = http.StatusNotFound
	}
	c.JSON(status, report)
}
