package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/meridiangallery/backend/internal/services"
)

// UploadIssuer mints presigned upload URLs.
type UploadIssuer interface {
	IssueUploadURL(ctx context.Context, fileName, fileType string) (*services.UploadTicket, error)
}

type UploadHandler struct {
	issuer UploadIssuer
}

func NewUploadHandler(issuer UploadIssuer) *UploadHandler {
	return &UploadHandler{issuer: issuer}
}

// IssueUploadURL returns a short-lived presigned PUT URL so the browser
// writes the image straight to the bucket, plus the public URL the
// object will have afterwards.
// POST /upload-url
func (h *UploadHandler) IssueUploadURL(c *gin.Context) {
	var req uploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileName and fileType are required"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileName and fileType are required"})
		return
	}

	ticket, err := h.issuer.IssueUploadURL(c.Request.Context(), req.FileName, req.FileType)
	if err != nil {
		log.Error().Err(err).Str("fileName", req.FileName).Msg("Failed to presign upload URL")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, ticket)
}
