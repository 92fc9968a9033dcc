package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/meridiangallery/backend/internal/models"
	"github.com/meridiangallery/backend/internal/services"
)

// ArtworkStore is the artwork persistence surface the handler needs.
type ArtworkStore interface {
	List(ctx context.Context) ([]models.Artwork, error)
	Get(ctx context.Context, id string) (*models.Artwork, error)
	Create(ctx context.Context, artwork models.Artwork) error
	Update(ctx context.Context, id string, updates services.ArtworkUpdate) (*models.Artwork, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, items []services.ReorderItem) error
}

// ImageStore removes uploaded image objects; used for optional cleanup
// when an artwork is deleted.
type ImageStore interface {
	DeleteImage(ctx context.Context, key string) error
	KeyFromURL(imageURL string) (string, bool)
}

type ArtworkHandler struct {
	artworks ArtworkStore
	images   ImageStore
	// Deleting an artwork leaves its objects in the bucket unless this
	// is set; orphaning is the historical behavior.
	cleanupImages bool
}

func NewArtworkHandler(artworks ArtworkStore, images ImageStore, cleanupImages bool) *ArtworkHandler {
	return &ArtworkHandler{
		artworks:      artworks,
		images:        images,
		cleanupImages: cleanupImages,
	}
}

// ListArtworks returns every artwork in display order
// GET /artworks
func (h *ArtworkHandler) ListArtworks(c *gin.Context) {
	artworks, err := h.artworks.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list artworks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artworks"})
		return
	}
	c.JSON(http.StatusOK, artworks)
}

// GetHomepageArtworks returns the curated landing-page selection, or a
// full category when ?category= is supplied
// GET /artworks/homepage?category=<optional>
func (h *ArtworkHandler) GetHomepageArtworks(c *gin.Context) {
	artworks, err := h.artworks.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list artworks for homepage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch homepage artworks"})
		return
	}
	c.JSON(http.StatusOK, models.FilterForHomepage(artworks, c.Query("category")))
}

// GetArtwork returns a single artwork
// GET /artworks/:id
func (h *ArtworkHandler) GetArtwork(c *gin.Context) {
	artwork, err := h.artworks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrArtworkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
			return
		}
		log.Error().Err(err).Str("id", c.Param("id")).Msg("Failed to fetch artwork")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch artwork"})
		return
	}
	c.JSON(http.StatusOK, artwork)
}

// CreateArtwork stores a new artwork record. The id and creation
// timestamp are generated here when the client does not supply them;
// older clients that assembled the full record keep working.
// POST /artworks
func (h *ArtworkHandler) CreateArtwork(c *gin.Context) {
	var req createArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork data"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.DateCreated == "" {
		req.DateCreated = time.Now().UTC().Format(time.RFC3339)
	}

	artwork := models.Artwork{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURLs:   req.ImageURLs,
		DateCreated: req.DateCreated,
	}

	if err := h.artworks.Create(c.Request.Context(), artwork); err != nil {
		log.Error().Err(err).Str("id", artwork.ID).Msg("Failed to create artwork")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artwork"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Artwork created successfully",
		"artwork": artwork,
	})
}

// UpdateArtwork applies a sparse field update and returns the stored
// record. Absent fields stay untouched; an explicit empty string or
// false is still written.
// PUT /artworks/:id
func (h *ArtworkHandler) UpdateArtwork(c *gin.Context) {
	var updates services.ArtworkUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update data"})
		return
	}

	artwork, err := h.artworks.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUpdateFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrArtworkNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		default:
			log.Error().Err(err).Str("id", c.Param("id")).Msg("Failed to update artwork")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artwork"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Artwork updated successfully",
		"artwork": artwork,
	})
}

// DeleteArtwork removes an artwork record. Idempotent: deleting an
// unknown id still reports success.
// DELETE /artworks/:id
func (h *ArtworkHandler) DeleteArtwork(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var orphans []string
	if h.cleanupImages {
		if artwork, err := h.artworks.Get(ctx, id); err == nil {
			orphans = artwork.ImageURLs
		}
	}

	if err := h.artworks.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to delete artwork")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork"})
		return
	}

	// Best effort: a failed object delete leaves an orphan, same as when
	// cleanup is disabled.
	for _, imageURL := range orphans {
		key, ok := h.images.KeyFromURL(imageURL)
		if !ok {
			continue
		}
		if err := h.images.DeleteImage(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to delete image object")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted successfully"})
}

// ReorderArtworks updates sort positions for a batch of artworks. The
// per-item updates run concurrently with no atomicity across the batch.
// PUT /artworks/reorder
func (h *ArtworkHandler) ReorderArtworks(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Artworks == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.artworks.Reorder(c.Request.Context(), req.Artworks); err != nil {
		log.Error().Err(err).Msg("Failed to reorder artworks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artwork order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artwork order updated successfully"})
}
