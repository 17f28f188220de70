package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayumi/capgen/internal/domain"
	"github.com/ayumi/capgen/internal/logger"
	"github.com/ayumi/capgen/internal/service"
)

// CaptionHandler handles caption generation endpoints.
type CaptionHandler struct {
	generation     *service.GenerationService
	maxUploadBytes int64
}

// NewCaptionHandler creates a new caption handler.
// Parameters:
//   - generation: generation controller instance.
//   - maxUploadBytes: upload size ceiling for image files.
// Returns:
//   - *CaptionHandler: initialized handler.
func NewCaptionHandler(generation *service.GenerationService, maxUploadBytes int64) *CaptionHandler {
	return &CaptionHandler{
		generation:     generation,
		maxUploadBytes: maxUploadBytes,
	}
}

// TextGenerateRequest represents the text generation API request.
type TextGenerateRequest struct {
	Text string `json:"text"`
}

// CaptionBatchResponse represents a completed generation batch.
type CaptionBatchResponse struct {
	Mode     domain.Mode      `json:"mode"`
	Captions []domain.Caption `json:"captions"`
}

// CopyResponse confirms a caption was marked as copied.
type CopyResponse struct {
	Caption     domain.Caption `json:"caption"`
	CopiedUntil string         `json:"copied_until"`
}

// GenerateFromText handles POST /api/v1/captions/text.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CaptionHandler) GenerateFromText(c *gin.Context) {
	ctx := c.Request.Context()

	var req TextGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(ctx, "Invalid text generation request: client_ip=%s, error=%v", c.ClientIP(), err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	captions, err := h.generation.GenerateFromText(ctx, req.Text)
	if err != nil {
		h.generationError(c, domain.ModeText, err)
		return
	}

	c.JSON(http.StatusOK, CaptionBatchResponse{
		Mode:     domain.ModeText,
		Captions: captions,
	})
}

// GenerateFromImage handles POST /api/v1/captions/image.
// The image travels as the multipart form file "image".
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CaptionHandler) GenerateFromImage(c *gin.Context) {
	ctx := c.Request.Context()

	file, err := c.FormFile("image")
	if err != nil {
		logger.CtxWarn(ctx, "Image generation request without a file: client_ip=%s, error=%v", c.ClientIP(), err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No image file in request",
		})
		return
	}

	if file.Size > h.maxUploadBytes {
		logger.CtxWarn(ctx, "Image upload over the size limit: client_ip=%s, size=%d, limit=%d",
			c.ClientIP(), file.Size, h.maxUploadBytes)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Image exceeds the %d MB upload limit", h.maxUploadBytes>>20),
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		logger.CtxWarn(ctx, "Failed to open uploaded image: client_ip=%s, error=%v", c.ClientIP(), err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read the uploaded image",
		})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to read uploaded image: client_ip=%s, error=%v", c.ClientIP(), err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read the uploaded image",
		})
		return
	}

	captions, err := h.generation.GenerateFromImage(ctx, data)
	if err != nil {
		h.generationError(c, domain.ModeImage, err)
		return
	}

	c.JSON(http.StatusOK, CaptionBatchResponse{
		Mode:     domain.ModeImage,
		Captions: captions,
	})
}

// Copy handles POST /api/v1/captions/:id/copy.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CaptionHandler) Copy(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Caption ID is required",
		})
		return
	}

	caption, copiedUntil, err := h.generation.MarkCopied(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCaptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Caption not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to mark caption as copied",
		})
		return
	}

	c.JSON(http.StatusOK, CopyResponse{
		Caption:     caption,
		CopiedUntil: copiedUntil.Format(time.RFC3339Nano),
	})
}

// generationError maps pipeline failures onto the API error contract.
// Detailed causes are logged where they happen; pipeline internals reach the
// client only as the generic per-mode failure message.
func (h *CaptionHandler) generationError(c *gin.Context, mode domain.Mode, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": emptyInputMessage(mode)})
	case errors.Is(err, service.ErrGenerationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A generation is already running"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": mode.Label() + " caption generation failed"})
	}
}

func emptyInputMessage(mode domain.Mode) string {
	if mode == domain.ModeImage {
		return "No image selected"
	}
	return "Text input is empty"
}
