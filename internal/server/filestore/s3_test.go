package filestore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"gestoria/internal/api"
	sc "gestoria/internal/server/config"
)

func newS3StoreForTest() *S3Store {
	return NewS3Store(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "gestoria",
	})
}

func stubAWSSeams(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origPut := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		putObject = origPut
	})
}

func TestS3Store_Save_Success(t *testing.T) {
	store := newS3StoreForTest()
	stubAWSSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		if len(optFns) == 0 {
			t.Fatalf("expected config options")
		}
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		if lo.Credentials == nil {
			t.Fatalf("credentials provider not applied")
		}
		return aws.Config{}, nil
	}

	var capturedBaseEndpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil {
			t.Fatalf("BaseEndpoint not set")
		}
		capturedBaseEndpoint = *opts.BaseEndpoint
		return &s3.Client{}
	}

	var gotBucket, gotKey string
	var gotBody []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		b, err := io.ReadAll(in.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		gotBody = b
		return &s3.PutObjectOutput{}, nil
	}

	path, err := store.Save(context.Background(), "demo@demo.com", api.KindFactura, "enero.pdf", []byte("%PDF-1.7"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if capturedBaseEndpoint != "http://127.0.0.1:9000" {
		t.Fatalf("unexpected base endpoint: %q", capturedBaseEndpoint)
	}
	if gotBucket != "gestoria" {
		t.Fatalf("unexpected bucket: %q", gotBucket)
	}
	if gotKey != "demo@demo.com/factura/enero.pdf" {
		t.Fatalf("unexpected key: %q", gotKey)
	}
	if string(gotBody) != "%PDF-1.7" {
		t.Fatalf("unexpected body: %q", gotBody)
	}
	if path != "s3://gestoria/demo@demo.com/factura/enero.pdf" {
		t.Fatalf("unexpected storage path: %q", path)
	}
}

func TestS3Store_Save_LoadConfigError(t *testing.T) {
	store := newS3StoreForTest()
	stubAWSSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}

	_, err := store.Save(context.Background(), "demo", api.KindFactura, "f.pdf", []byte("x"))
	if err == nil {
		t.Fatalf("expected error from config load")
	}
}

func TestS3Store_Save_PutObjectError(t *testing.T) {
	store := newS3StoreForTest()
	stubAWSSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("bucket gone")
	}

	_, err := store.Save(context.Background(), "demo", api.KindFactura, "f.pdf", []byte("x"))
	if err == nil {
		t.Fatalf("expected error from put object")
	}
}
