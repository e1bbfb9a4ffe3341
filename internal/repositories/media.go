package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rohits-web03/vybr8r/internal/config"
)

// MediaStore presigns profile image uploads against an R2 bucket.
type MediaStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewMediaStore builds the R2 client using static credentials and the account endpoint.
func NewMediaStore(cfg config.R2Config) *MediaStore {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = endpoint + "/" + cfg.BucketName
	}

	return &MediaStore{
		client:        client,
		bucket:        cfg.BucketName,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// PresignPut creates a presigned URL for uploading an object.
func (m *MediaStore) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	presigner := s3.NewPresignClient(m.client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PublicURL is where the object is served from once uploaded.
func (m *MediaStore) PublicURL(key string) string {
	return m.publicBaseURL + "/" + key
}
