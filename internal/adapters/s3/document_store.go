package s3

// Package s3 implements the document store against an S3-compatible
// bucket. Every call builds its client from the caller's federated
// credential, so the bucket policy attached to the assumed role — not
// this process's own identity — decides what each request may touch.

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	domainstorage "github.com/tripgate/portal-api/internal/domain/storage"
	"github.com/tripgate/portal-api/internal/ports"
)

// DocumentStore lists, writes, deletes, and presigns bucket objects.
type DocumentStore struct {
	bucket   string
	region   string
	endpoint string
}

var _ ports.DocumentStore = (*DocumentStore)(nil)

// Config holds configuration for the document store.
type Config struct {
	Bucket   string
	Region   string
	Endpoint string // optional override for local stacks
}

// NewDocumentStore creates a document store for one bucket.
func NewDocumentStore(cfg Config) (*DocumentStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	if cfg.Region == "" {
		return nil, errors.New("region is required")
	}
	return &DocumentStore{
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
	}, nil
}

// client builds an S3 client authenticated as the federated credential.
func (s *DocumentStore) client(cred domainstorage.FederatedCredential) *awss3.Client {
	opts := awss3.Options{
		Region: s.region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cred.AccessKey, cred.SecretKey, cred.SessionToken,
		),
	}
	if s.endpoint != "" {
		opts.BaseEndpoint = aws.String(s.endpoint)
		opts.UsePathStyle = true
	}
	return awss3.New(opts)
}

func (s *DocumentStore) List(ctx context.Context, cred domainstorage.FederatedCredential, prefix string) ([]domainstorage.Object, error) {
	client := s.client(cred)

	var objects []domainstorage.Object
	paginator := awss3.NewListObjectsV2Paginator(client, &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			o := domainstorage.Object{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
		}
	}

	return objects, nil
}

func (s *DocumentStore) Put(ctx context.Context, cred domainstorage.FederatedCredential, key string, body []byte, contentType string) error {
	_, err := s.client(cred).PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *DocumentStore) Delete(ctx context.Context, cred domainstorage.FederatedCredential, key string) error {
	_, err := s.client(cred).DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *DocumentStore) PresignGet(ctx context.Context, cred domainstorage.FederatedCredential, key string, ttl time.Duration) (string, error) {
	presigner := awss3.NewPresignClient(s.client(cred))
	req, err := presigner.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
