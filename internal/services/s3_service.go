package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/logging"
	"github.com/google/uuid"

	"github.com/meridiangallery/backend/internal/config"
)

// UploadTicket is everything a client needs to upload one image: a
// short-lived write URL, the public URL the object will have once
// written, and the object key itself.
type UploadTicket struct {
	PresignedURL string `json:"presignedUrl"`
	ImageURL     string `json:"imageUrl"`
	ImageKey     string `json:"imageKey"`
}

type S3Service struct {
	client    *s3.Client
	presigner *s3.PresignClient
	cfg       *config.Config
}

func NewS3Service(cfg *config.Config) (*S3Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
		awsconfig.WithLogger(logging.NewStandardLogger(os.Stderr)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Service{
		client:    client,
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
	}, nil
}

// IssueUploadURL mints a presigned PUT URL for a client-side image
// upload. The object key gets a fresh UUID prefix so identical file names
// never collide while the original name stays readable. The write URL is
// scoped to the declared content type and expires after the configured
// TTL; the read URL is only valid once the client completes the PUT.
func (s *S3Service) IssueUploadURL(ctx context.Context, fileName, fileType string) (*UploadTicket, error) {
	key := objectKey(fileName)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.cfg.ImagesBucket,
		Key:         &key,
		ContentType: &fileType,
	}, s3.WithPresignExpires(s.cfg.UploadURLTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}

	return &UploadTicket{
		PresignedURL: req.URL,
		ImageURL:     publicURL(s.cfg.ImagesBucket, s.cfg.AWSRegion, key),
		ImageKey:     key,
	}, nil
}

// DeleteImage removes one object from the images bucket.
func (s *S3Service) DeleteImage(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.cfg.ImagesBucket,
		Key:    aws.String(key),
	})
	return err
}

// KeyFromURL recovers the object key from a public image URL issued by
// this service. Returns false for URLs that do not point at the
// configured bucket.
func (s *S3Service) KeyFromURL(imageURL string) (string, bool) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", false
	}
	host := fmt.Sprintf("%s.s3.%s.amazonaws.com", s.cfg.ImagesBucket, s.cfg.AWSRegion)
	if u.Host != host {
		return "", false
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", false
	}
	return key, true
}

func objectKey(fileName string) string {
	return uuid.NewString() + "-" + fileName
}

func publicURL(bucket, region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
