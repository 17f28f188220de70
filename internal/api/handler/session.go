package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayumi/capgen/internal/domain"
	"github.com/ayumi/capgen/internal/logger"
	"github.com/ayumi/capgen/internal/service"
)

// SessionHandler handles session state endpoints.
type SessionHandler struct {
	generation *service.GenerationService
}

// NewSessionHandler creates a new session handler.
// Parameters:
//   - generation: generation controller instance.
// Returns:
//   - *SessionHandler: initialized handler.
func NewSessionHandler(generation *service.GenerationService) *SessionHandler {
	return &SessionHandler{
		generation: generation,
	}
}

// ClearRequest names the mode whose caption batch should be dropped.
type ClearRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// Snapshot handles GET /api/v1/session.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SessionHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.generation.Snapshot())
}

// Clear handles POST /api/v1/session/clear. The page calls it when the user
// changes an input after a generation, so stale captions never linger.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes status or JSON error).
func (h *SessionHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	var req ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(ctx, "Invalid session clear request: client_ip=%s, error=%v", c.ClientIP(), err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	if err := h.generation.InputChanged(ctx, domain.Mode(req.Mode)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown mode: " + req.Mode,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
