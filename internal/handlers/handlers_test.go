package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/meridiangallery/backend/internal/models"
	"github.com/meridiangallery/backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubArtworkStore struct {
	artworks []models.Artwork
	created  []models.Artwork
	deleted  []string

	lastUpdateID string
	lastUpdate   services.ArtworkUpdate
	updateResult *models.Artwork
	updateErr    error

	reordered  []services.ReorderItem
	reorderErr error
	listErr    error
}

func (s *stubArtworkStore) List(ctx context.Context) ([]models.Artwork, error) {
	return s.artworks, s.listErr
}

func (s *stubArtworkStore) Get(ctx context.Context, id string) (*models.Artwork, error) {
	for i := range s.artworks {
		if s.artworks[i].ID == id {
			return &s.artworks[i], nil
		}
	}
	return nil, services.ErrArtworkNotFound
}

func (s *stubArtworkStore) Create(ctx context.Context, artwork models.Artwork) error {
	s.created = append(s.created, artwork)
	return nil
}

func (s *stubArtworkStore) Update(ctx context.Context, id string, updates services.ArtworkUpdate) (*models.Artwork, error) {
	s.lastUpdateID = id
	s.lastUpdate = updates
	return s.updateResult, s.updateErr
}

func (s *stubArtworkStore) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubArtworkStore) Reorder(ctx context.Context, items []services.ReorderItem) error {
	s.reordered = items
	return s.reorderErr
}

type stubImageStore struct {
	deleted []string
}

func (s *stubImageStore) DeleteImage(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubImageStore) KeyFromURL(imageURL string) (string, bool) {
	const prefix = "https://bucket.s3.region.amazonaws.com/"
	if len(imageURL) > len(prefix) && imageURL[:len(prefix)] == prefix {
		return imageURL[len(prefix):], true
	}
	return "", false
}

type stubBioStore struct {
	bio       *models.Bio
	updated   *models.Bio
	updateErr error

	lastName, lastContent, lastImageURL string
}

func (s *stubBioStore) Get(ctx context.Context) (*models.Bio, error) {
	if s.bio == nil {
		return nil, services.ErrBioNotFound
	}
	return s.bio, nil
}

func (s *stubBioStore) Update(ctx context.Context, name, content, imageURL string) (*models.Bio, error) {
	s.lastName, s.lastContent, s.lastImageURL = name, content, imageURL
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.updated != nil {
		return s.updated, nil
	}
	return &models.Bio{ID: models.BioKey, Name: name, Content: content, ImageURL: imageURL}, nil
}

type stubUploadIssuer struct {
	ticket *services.UploadTicket
	err    error

	lastFileName, lastFileType string
}

func (s *stubUploadIssuer) IssueUploadURL(ctx context.Context, fileName, fileType string) (*services.UploadTicket, error) {
	s.lastFileName, s.lastFileType = fileName, fileType
	if s.err != nil {
		return nil, s.err
	}
	if s.ticket != nil {
		return s.ticket, nil
	}
	return nil, errors.New("no ticket configured")
}
