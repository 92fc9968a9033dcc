package handlers

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/meridiangallery/backend/internal/services"
)

type createArtworkRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"imageUrls"`
	DateCreated string   `json:"dateCreated"`
}

func (r createArtworkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.ImageURLs, validation.Required, validation.Length(1, 0)),
	)
}

type reorderRequest struct {
	Artworks []services.ReorderItem `json:"artworks"`
}

type updateBioRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

type uploadURLRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

func (r uploadURLRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FileName, validation.Required),
		validation.Field(&r.FileType, validation.Required),
	)
}
