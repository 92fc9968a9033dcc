package models

// BioKey is the fixed partition key of the singleton bio record.
const BioKey = "bio"

// Bio is the artist profile shown on the about page. Exactly one record
// exists; it is provisioned out-of-band and only ever updated, never
// created or deleted by the application.
type Bio struct {
	ID       string `json:"id" dynamodbav:"id"`
	Name     string `json:"name" dynamodbav:"name"`
	Content  string `json:"content" dynamodbav:"content"`
	ImageURL string `json:"imageUrl" dynamodbav:"imageUrl"`
}
