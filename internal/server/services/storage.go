// Package services contains server-side business logic: metadata reads and
// writes, and issuing capability URLs for the object store.
package services

import (
	"context"
	"fmt"

	sc "github.com/dmitrijs2005/cloudvault/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// StorageService issues short-lived presigned URLs for blob PUT/GET. It is
// the only component holding long-lived storage credentials; clients only
// ever see the time-limited URLs.
type StorageService struct {
	config *sc.Config
}

// NewStorageService constructs a StorageService from server config.
func NewStorageService(config *sc.Config) *StorageService {
	return &StorageService{config: config}
}

func (s *StorageService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// IssueUploadCapability returns a presigned PUT URL for the given blob id,
// valid for the configured capability TTL. The blob id is chosen by the
// client before any ciphertext is transferred; until a metadata record
// references it, the object is unreachable.
func (s *StorageService) IssueUploadCapability(ctx context.Context, blobID, contentType string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", fmt.Errorf("building presign client: %w", err)
	}

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(blobID),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.config.CapabilityTTL))
	if err != nil {
		return "", fmt.Errorf("presigning put: %w", err)
	}

	return req.URL, nil
}

// IssueDownloadCapability returns a presigned GET URL for the given blob id.
func (s *StorageService) IssueDownloadCapability(ctx context.Context, blobID string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", fmt.Errorf("building presign client: %w", err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(blobID),
	}, s3.WithPresignExpires(s.config.CapabilityTTL))
	if err != nil {
		return "", fmt.Errorf("presigning get: %w", err)
	}

	return req.URL, nil
}
