package filestore

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"gestoria/internal/api"
	"gestoria/internal/filex"
	sc "gestoria/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Store writes uploads to an S3 bucket. Keys repeat the local layout
// (<user>/<tipo>/<filename>) so the processor resolves documents the same
// way under either driver.
type S3Store struct {
	cfg *sc.Config
}

func NewS3Store(cfg *sc.Config) *S3Store {
	return &S3Store{cfg: cfg}
}

func (s *S3Store) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.S3RootUser,     // MINIO_ROOT_USER
			s.cfg.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.S3BaseEndpoint)
	}), nil
}

func (s *S3Store) Save(ctx context.Context, user string, kind api.DocumentKind, filename string, data []byte) (string, error) {
	client, err := s.getClient()
	if err != nil {
		return "", err
	}

	bucket := s.cfg.S3Bucket
	key := path.Join(filex.SanitizeFolder(user), string(kind), filename)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}
