package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"github.com/meridiangallery/backend/internal/config"
	"github.com/meridiangallery/backend/internal/models"
)

// ArtworkUpdate is a sparse field set for a partial update. A nil field is
// left untouched in the stored record; a non-nil field is written even
// when it points at an empty string, zero, or false.
type ArtworkUpdate struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Category       *string   `json:"category"`
	ImageURLs      *[]string `json:"imageUrls"`
	SortOrder      *int      `json:"sortOrder"`
	ShowOnHomepage *bool     `json:"showOnHomepage"`
}

// ReorderItem assigns a new sort position to one artwork.
type ReorderItem struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sortOrder"`
}

type ArtworkService struct {
	db    DynamoAPI
	table string
}

func NewArtworkService(db DynamoAPI, cfg *config.Config) *ArtworkService {
	return &ArtworkService{db: db, table: cfg.ArtworksTable}
}

// List returns all artworks in display order: sortOrder ascending first,
// then records without a sortOrder, newest first. Sorting happens here so
// every caller sees the same order.
func (s *ArtworkService) List(ctx context.Context) ([]models.Artwork, error) {
	artworks := []models.Artwork{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.db.Scan(ctx, &dynamodb.ScanInput{
			TableName:         &s.table,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan artworks: %w", err)
		}

		page := []models.Artwork{}
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to decode artworks: %w", err)
		}
		artworks = append(artworks, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	models.SortForDisplay(artworks)
	return artworks, nil
}

// Get fetches a single artwork by id.
func (s *ArtworkService) Get(ctx context.Context, id string) (*models.Artwork, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.table,
		Key:       artworkKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrArtworkNotFound
	}

	var artwork models.Artwork
	if err := attributevalue.UnmarshalMap(out.Item, &artwork); err != nil {
		return nil, fmt.Errorf("failed to decode artwork %s: %w", id, err)
	}
	return &artwork, nil
}

// Create writes a complete artwork record. Ids are never reused; there is
// no duplicate check beyond what the table enforces.
func (s *ArtworkService) Create(ctx context.Context, artwork models.Artwork) error {
	item, err := attributevalue.MarshalMap(artwork)
	if err != nil {
		return fmt.Errorf("failed to encode artwork: %w", err)
	}
	if _, err := s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to create artwork: %w", err)
	}
	return nil
}

// Update applies a sparse patch to one artwork and returns the full
// post-update record. Only supplied fields are touched. An unknown id is
// reported as ErrArtworkNotFound without writing anything: the update is
// conditioned on the record existing, so it never upserts.
func (s *ArtworkService) Update(ctx context.Context, id string, updates ArtworkUpdate) (*models.Artwork, error) {
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	clauses := []string{}

	set := func(attr string, v interface{}) error {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", attr, err)
		}
		names["#"+attr] = attr
		values[":"+attr] = av
		clauses = append(clauses, "#"+attr+" = :"+attr)
		return nil
	}

	if updates.Title != nil {
		if err := set("title", *updates.Title); err != nil {
			return nil, err
		}
	}
	if updates.Description != nil {
		if err := set("description", *updates.Description); err != nil {
			return nil, err
		}
	}
	if updates.Category != nil {
		if err := set("category", *updates.Category); err != nil {
			return nil, err
		}
	}
	if updates.ImageURLs != nil {
		if err := set("imageUrls", *updates.ImageURLs); err != nil {
			return nil, err
		}
	}
	if updates.SortOrder != nil {
		if err := set("sortOrder", *updates.SortOrder); err != nil {
			return nil, err
		}
	}
	if updates.ShowOnHomepage != nil {
		if err := set("showOnHomepage", *updates.ShowOnHomepage); err != nil {
			return nil, err
		}
	}

	if len(clauses) == 0 {
		return nil, ErrNoUpdateFields
	}

	out, err := s.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &s.table,
		Key:                       artworkKey(id),
		UpdateExpression:          aws.String("SET " + strings.Join(clauses, ", ")),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to update artwork %s: %w", id, err)
	}

	var artwork models.Artwork
	if err := attributevalue.UnmarshalMap(out.Attributes, &artwork); err != nil {
		return nil, fmt.Errorf("failed to decode updated artwork %s: %w", id, err)
	}
	return &artwork, nil
}

// Delete removes an artwork record. Deleting an unknown id is not an
// error, so the operation is idempotent from the caller's perspective.
func (s *ArtworkService) Delete(ctx context.Context, id string) error {
	if _, err := s.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.table,
		Key:       artworkKey(id),
	}); err != nil {
		return fmt.Errorf("failed to delete artwork %s: %w", id, err)
	}
	return nil
}

// Reorder applies one sortOrder update per item, all dispatched
// concurrently. There is no atomicity across the batch: when any item
// fails the rest may already have committed, and the caller gets a single
// aggregate error with no per-item detail.
func (s *ArtworkService) Reorder(ctx context.Context, items []ReorderItem) error {
	var wg sync.WaitGroup
	errs := make(chan error, len(items))

	for _, item := range items {
		wg.Add(1)
		go func(item ReorderItem) {
			defer wg.Done()
			order := item.SortOrder
			if _, err := s.Update(ctx, item.ID, ArtworkUpdate{SortOrder: &order}); err != nil {
				log.Error().Err(err).Str("id", item.ID).Msg("Reorder update failed")
				errs <- err
			}
		}(item)
	}

	wg.Wait()
	close(errs)

	failed := 0
	var first error
	for err := range errs {
		if first == nil {
			first = err
		}
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("reorder failed for %d of %d artworks: %w", failed, len(items), first)
	}
	return nil
}

func artworkKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
