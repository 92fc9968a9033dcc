package models

import (
	"sort"
	"strings"
	"time"
)

// Artwork is one gallery entry. ImageURLs is ordered; the first entry is
// the thumbnail. SortOrder and ShowOnHomepage are optional attributes and
// may be absent on records created before those features existed.
type Artwork struct {
	ID             string   `json:"id" dynamodbav:"id"`
	Title          string   `json:"title" dynamodbav:"title"`
	Description    string   `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Category       string   `json:"category,omitempty" dynamodbav:"category,omitempty"`
	ImageURLs      []string `json:"imageUrls" dynamodbav:"imageUrls"`
	DateCreated    string   `json:"dateCreated" dynamodbav:"dateCreated"`
	SortOrder      *int     `json:"sortOrder,omitempty" dynamodbav:"sortOrder,omitempty"`
	ShowOnHomepage *bool    `json:"showOnHomepage,omitempty" dynamodbav:"showOnHomepage,omitempty"`
}

// SortForDisplay orders artworks the way the gallery renders them:
// records with a sortOrder come first, ascending; the rest follow,
// newest first.
func SortForDisplay(artworks []Artwork) {
	sort.SliceStable(artworks, func(i, j int) bool {
		a, b := artworks[i], artworks[j]
		switch {
		case a.SortOrder != nil && b.SortOrder != nil:
			return *a.SortOrder < *b.SortOrder
		case a.SortOrder != nil:
			return true
		case b.SortOrder != nil:
			return false
		default:
			return parseDate(a.DateCreated).After(parseDate(b.DateCreated))
		}
	})
}

// FilterForHomepage selects the artworks eligible for the public landing
// view. Without a category only records explicitly flagged for the
// homepage are returned; with a category every record of that category is
// returned regardless of the flag, so category browsing bypasses
// curation.
func FilterForHomepage(artworks []Artwork, category string) []Artwork {
	filtered := make([]Artwork, 0, len(artworks))
	for _, a := range artworks {
		if category == "" {
			if a.ShowOnHomepage != nil && *a.ShowOnHomepage {
				filtered = append(filtered, a)
			}
			continue
		}
		if strings.EqualFold(a.Category, category) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func parseDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
