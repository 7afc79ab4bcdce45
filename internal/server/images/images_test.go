package images

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Region:       "us-east-1",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Bucket:       "recipes",
		BaseEndpoint: "http://127.0.0.1:9000",
	}
}

func stubSDK(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000" {
			t.Fatalf("BaseEndpoint not applied")
		}
		if !opts.UsePathStyle {
			t.Fatalf("path style not enabled")
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
}

func TestPresignUpload_Success(t *testing.T) {
	stubSDK(t)

	var gotExpiry time.Duration
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		gotExpiry = po.Expires
		return &v4.PresignedHTTPRequest{URL: "http://signed/" + *in.Bucket + "/" + *in.Key}, nil
	}

	p := NewPresigner(testConfig())
	p.now = func() time.Time { return time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC) }
	p.newID = func() string { return "abc" }

	up, err := p.PresignUpload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "recipes/2024/3/7/abc", up.Key)
	assert.Equal(t, "http://signed/recipes/recipes/2024/3/7/abc", up.UploadURL)
	assert.Equal(t, "http://127.0.0.1:9000/recipes/recipes/2024/3/7/abc", up.ImageURL)
	assert.Equal(t, UploadExpiry, gotExpiry)
}

func TestPresignUpload_LoadConfigError(t *testing.T) {
	stubSDK(t)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := NewPresigner(testConfig()).PresignUpload(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load-fail")
}

func TestPresignUpload_PresignError(t *testing.T) {
	stubSDK(t)
	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign-fail")
	}

	_, err := NewPresigner(testConfig()).PresignUpload(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign-fail")
}

func TestPlaceholderURL(t *testing.T) {
	assert.Equal(t, "https://picsum.photos/seed/Lemon+Tart/600/400", PlaceholderURL("  Lemon   Tart "))
	assert.Equal(t, "https://picsum.photos/seed//600/400", PlaceholderURL(""))
}

func TestPublicURL_TrimsSlash(t *testing.T) {
	assert.Equal(t, "http://s3/b/k", PublicURL("http://s3/", "b", "k"))
}
