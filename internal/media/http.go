package media

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the media catalog endpoints.
func RegisterRoutes(group *gin.RouterGroup, classifier *Classifier, ingestor *Ingestor, store *Store, selections selectionClearer) {
	handler := &httpHandler{
		classifier: classifier,
		ingestor:   ingestor,
		store:      store,
		selections: selections,
	}
	group.GET("/get-media/:folder", handler.getMedia)
	group.POST("/upload-media/:folder", handler.uploadMedia)
	group.DELETE("/delete-media/:folder", handler.deleteMedia)
}

type httpHandler struct {
	classifier *Classifier
	ingestor   *Ingestor
	store      *Store
	selections selectionClearer
}

func (h *httpHandler) getMedia(c *gin.Context) {
	folder := c.Param("folder")

	zones, err := h.classifier.Classify(c.Request.Context(), folder)
	if err != nil {
		var classErr *ClassificationError
		switch {
		case errors.Is(err, ErrFolderUnknown):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown folder"})
		case errors.As(err, &classErr):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media store unavailable", "folder": classErr.Folder})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to classify media"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": zones})
}

func (h *httpHandler) uploadMedia(c *gin.Context) {
	folder := c.Param("folder")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}

	files, err := readBatchFiles(form.File["files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shared, tags := splitFormFields(form.Value)

	result, err := h.ingestor.Ingest(c.Request.Context(), folder, files, shared, tags)
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.Is(err, ErrFolderUnknown):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown folder"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "batch rejected", "errors": validationErr.Faults})
		case errors.Is(err, ErrAllUploadsFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "no file could be stored", "failedFiles": result.Failed})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload media"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"uploaded":    result.Uploaded,
		"failedFiles": result.Failed,
	})
}

type deleteMediaRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *httpHandler) deleteMedia(c *gin.Context) {
	folder := c.Param("folder")
	if _, ok := h.classifier.Scheme(folder); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown folder"})
		return
	}

	var req deleteMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleter := NewDeleter(DeleterOptions{
		Scope:       folder,
		Folder:      folder,
		Objects:     h.store,
		Selections:  h.selections,
		Invalidator: h.classifier,
	})

	report, err := deleter.Delete(c.Request.Context(), DeletionRequest{Scope: folder, IDs: req.IDs})
	if err != nil {
		if errors.Is(err, ErrEmptyDeletion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids must not be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete media"})
		return
	}

	status := http.StatusOK
	if len(report.Deleted) == 0 && len(report.Orphaned) == 0 && len(report.Failed) == 0 {
		status = http.StatusNotFound
	}
	c.JSON(status, report)
}

func readBatchFiles(headers []*multipart.FileHeader) ([]BatchFile, error) {
	files := make([]BatchFile, 0, len(headers))
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
		files = append(files, BatchFile{Name: header.Filename, Content: content})
	}
	return files, nil
}

func splitFormFields(values map[string][]string) (map[string]string, []string) {
	shared := make(map[string]string, len(values))
	var tags []string
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if key == "tags" {
			tags = splitTags(vals[0])
			continue
		}
		shared[key] = vals[0]
	}
	return shared, tags
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
