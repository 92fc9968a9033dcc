package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/meridiangallery/backend/internal/models"
	"github.com/meridiangallery/backend/internal/services"
)

// BioStore is the bio persistence surface the handler needs.
type BioStore interface {
	Get(ctx context.Context) (*models.Bio, error)
	Update(ctx context.Context, name, content, imageURL string) (*models.Bio, error)
}

type BioHandler struct {
	bio BioStore
}

func NewBioHandler(bio BioStore) *BioHandler {
	return &BioHandler{bio: bio}
}

// GetBio returns the artist profile
// GET /bio
func (h *BioHandler) GetBio(c *gin.Context) {
	bio, err := h.bio.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrBioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bio not found"})
			return
		}
		log.Error().Err(err).Msg("Failed to fetch bio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bio"})
		return
	}
	c.JSON(http.StatusOK, bio)
}

// UpdateBio rewrites the profile. All three fields are written together;
// a field the client leaves out becomes an empty string. Image uploads
// must go through the upload-url endpoint, never inline.
// PUT /bio
func (h *BioHandler) UpdateBio(c *gin.Context) {
	if strings.Contains(c.ContentType(), "multipart/form-data") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File uploads are not supported here. Request an upload URL instead."})
		return
	}

	var req updateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bio data"})
		return
	}

	bio, err := h.bio.Update(c.Request.Context(), req.Name, req.Content, req.ImageURL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update bio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bio"})
		return
	}
	c.JSON(http.StatusOK, bio)
}
