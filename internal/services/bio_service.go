package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/meridiangallery/backend/internal/config"
	"github.com/meridiangallery/backend/internal/models"
)

type BioService struct {
	db    DynamoAPI
	table string
}

func NewBioService(db DynamoAPI, cfg *config.Config) *BioService {
	return &BioService{db: db, table: cfg.BioTable}
}

// Get fetches the singleton bio record.
func (s *BioService) Get(ctx context.Context) (*models.Bio, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.table,
		Key:       bioKey(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bio: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrBioNotFound
	}

	var bio models.Bio
	if err := attributevalue.UnmarshalMap(out.Item, &bio); err != nil {
		return nil, fmt.Errorf("failed to decode bio: %w", err)
	}
	return &bio, nil
}

// Update rewrites all three mutable bio fields together. There is no
// partial bio update: callers always send the full set, empty strings
// included. Returns the record as stored.
func (s *BioService) Update(ctx context.Context, name, content, imageURL string) (*models.Bio, error) {
	out, err := s.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        &s.table,
		Key:              bioKey(),
		UpdateExpression: aws.String("SET #name = :name, #content = :content, #imageUrl = :imageUrl"),
		ExpressionAttributeNames: map[string]string{
			"#name":     "name",
			"#content":  "content",
			"#imageUrl": "imageUrl",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":     &types.AttributeValueMemberS{Value: name},
			":content":  &types.AttributeValueMemberS{Value: content},
			":imageUrl": &types.AttributeValueMemberS{Value: imageURL},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update bio: %w", err)
	}

	var bio models.Bio
	if err := attributevalue.UnmarshalMap(out.Attributes, &bio); err != nil {
		return nil, fmt.Errorf("failed to decode updated bio: %w", err)
	}
	return &bio, nil
}

func bioKey() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: models.BioKey},
	}
}
