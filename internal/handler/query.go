package handler

import (
	"errors"
	"net/http"

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/model"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QueryHandler handles extraction-related HTTP requests
type QueryHandler struct {
	queryService *service.QueryService
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryService *service.QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

// Register mounts the handler's routes on group
func (h *QueryHandler) Register(group *gin.RouterGroup) {
	group.POST("/extract", h.Extract)
	group.GET("/extractions/:id", h.GetExtraction)
	group.GET("/priorities", h.Priorities)
	group.GET("/transport-modes", h.TransportModes)
}

// Extract handles POST /api/v1/extract
func (h *QueryHandler) Extract(c *gin.Context) {
	var req model.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.queryService.Parse(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message must not be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Extraction failed: " + err.Error()})
		return
	}

	if response.SearchParams != nil {
		if err := response.SearchParams.Validate(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid search spec: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetExtraction handles GET /api/v1/extractions/:id
func (h *QueryHandler) GetExtraction(c *gin.Context) {
	// Extraction IDs are UUIDs; anything else cannot have been issued
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Extraction not found"})
		return
	}

	entry, err := h.queryService.GetExtraction(c.Request.Context(), id.String())
	if err != nil {
		if errors.Is(err, service.ErrStoreDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Extraction history is not enabled"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get extraction: " + err.Error()})
		return
	}

	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Extraction not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Priorities handles GET /api/v1/priorities
func (h *QueryHandler) Priorities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"priorities": model.Priorities})
}

// TransportModes handles GET /api/v1/transport-modes
func (h *QueryHandler) TransportModes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modes": model.TransportModes})
}
