package selection

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionHeader = "X-Session-ID"

// RegisterRoutes mounts the selection endpoints backing the dashboard's
// per-collection checkboxes.
func RegisterRoutes(group *gin.RouterGroup, registry *Registry) {
	handler := &httpHandler{registry: registry}
	group.GET("/selection/:scope", handler.selected)
	group.POST("/selection/:scope/toggle", handler.toggle)
	group.POST("/selection/:scope/all", handler.selectAll)
	group.POST("/selection/:scope/clear", handler.clear)
}

type httpHandler struct {
	registry *Registry
}

func sessionID(c *gin.Context) string {
	if id := c.GetHeader(sessionHeader); id != "" {
		return id
	}
	return "default"
}

func (h *httpHandler) selected(c *gin.Context) {
	scope := c.Param("scope")
	c.JSON(http.StatusOK, gin.H{
		"scope":    scope,
		"selected": h.registry.Selected(sessionID(c), scope),
	})
}

type toggleRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *httpHandler) toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := c.Param("scope")
	selected := h.registry.Toggle(sessionID(c), scope, req.ID)
	c.JSON(http.StatusOK, gin.H{"scope": scope, "selected": selected})
}

type selectAllRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *httpHandler) selectAll(c *gin.Context) {
	var req selectAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := c.Param("scope")
	selected := h.registry.SelectAll(sessionID(c), scope, req.IDs)
	c.JSON(http.StatusOK, gin.H{"scope": scope, "selected": selected})
}

func (h *httpHandler) clear(c *gin.Context) {
	scope := c.Param("scope")
	h.registry.Clear(sessionID(c), scope)
	c.JSON(http.StatusOK, gin.H{"scope": scope, "selected": []string{}})
}
