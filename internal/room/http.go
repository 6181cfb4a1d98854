package room

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/aslanbek/stayhub/internal/media"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts room listing endpoints.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/room/create", handler.createRoom)
	group.GET("/rooms", handler.listRooms)
	group.POST("/room/delete", handler.deleteRooms)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) createRoom(c *gin.Context) {
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
		RoomNumber:  formValue(form, "room_no"),
		RoomType:    formValue(form, "room_type"),
		Price:       formValue(form, "price"),
		Occupancy:   formValue(form, "occupancy"),
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
		case errors.Is(err, ErrRoomNumberExists):
			c.JSON(http.StatusConflict, gin.H{"error": "room number already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"room":        result.Room,
		"failedFiles": result.FailedFiles,
	})
}

func (h *httpHandler) listRooms(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

type deleteRoomsRequest struct {
	RoomNumbers []string `json:"room_numbers" binding:"required"`
}

func (h *httpHandler) deleteRooms(c *gin.Context) {
	var req deleteRoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.DeleteByNumbers(c.Request.Context(), req.RoomNumbers)
	if err != nil {
		if errors.Is(err, media.ErrEmptyDeletion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_numbers must not be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete rooms"})
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
