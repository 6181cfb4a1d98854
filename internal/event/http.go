package event

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/aslanbek/stayhub/internal/media"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts event endpoints.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/event/create", handler.createEvent)
	group.GET("/events", handler.listEvents)
	group.POST("/event/delete", handler.deleteEvents)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) createEvent(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}

	files, err := readFiles(form.File["files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := CreateInput{
		Name:        formValue(form, "name"),
		Date:        formValue(form, "date"),
		Time:        formValue(form, "time"),
		Description: formValue(form, "description"),
		Files:       files,
	}

	result, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		var validationErr *media.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "batch rejected", "errors": validationErr.Faults})
		case errors.Is(err, media.ErrAllUploadsFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "no file could be stored"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"event":       result.Event,
		"failedFiles": result.FailedFiles,
	})
}

func (h *httpHandler) listEvents(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

type deleteEventsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *httpHandler) deleteEvents(c *gin.Context) {
	var req deleteEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.DeleteByIDs(c.Request.Context(), req.IDs)
	if err != nil {
		if errors.Is(err, media.ErrEmptyDeletion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids must not be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete events"})
		return
	}

	status := http.StatusOK
	if len(report.Deleted) == 0 && len(report.Orphaned) == 0 && len(report.Failed) == 0 {
		status = http.StatusNotFound
	}
	c.JSON(status, report)
}

func readFiles(headers []*multipart.FileHeader) ([]media.BatchFile, error) {
	files := make([]media.BatchFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, errors.New("unreadable file in batch")
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.New("unreadable file in batch")
		}
		files = append(files, media.BatchFile{Name: header.Filename, Content: content})
	}
	return files, nil
}

func formValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}
