package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiangallery/backend/internal/config"
)

func TestObjectKeyKeepsFileNameSuffix(t *testing.T) {
	key := objectKey("studio-shot.jpg")

	assert.True(t, strings.HasSuffix(key, "-studio-shot.jpg"))

	prefix := strings.TrimSuffix(key, "-studio-shot.jpg")
	_, err := uuid.Parse(prefix)
	assert.NoError(t, err, "key prefix should be a UUID")
}

func TestObjectKeysNeverCollide(t *testing.T) {
	a := objectKey("same.png")
	b := objectKey("same.png")
	assert.NotEqual(t, a, b)
}

func TestPublicURL(t *testing.T) {
	url := publicURL("gallery-images", "eu-west-1", "abc-photo.jpg")
	assert.Equal(t, "https://gallery-images.s3.eu-west-1.amazonaws.com/abc-photo.jpg", url)
}

func TestKeyFromURL(t *testing.T) {
	svc := &S3Service{cfg: &config.Config{
		ImagesBucket: "gallery-images",
		AWSRegion:    "eu-west-1",
	}}

	key, ok := svc.KeyFromURL("https://gallery-images.s3.eu-west-1.amazonaws.com/abc-photo.jpg")
	require.True(t, ok)
	assert.Equal(t, "abc-photo.jpg", key)

	_, ok = svc.KeyFromURL("https://another-bucket.s3.eu-west-1.amazonaws.com/abc.jpg")
	assert.False(t, ok)

	_, ok = svc.KeyFromURL("://not a url")
	assert.False(t, ok)
}
