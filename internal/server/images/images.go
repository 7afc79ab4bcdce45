// Package images hands out presigned S3 upload URLs for recipe pictures and
// builds the placeholder image URL used when a recipe has none.
package images

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const UploadExpiry = 15 * time.Minute

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
)

type Config struct {
	Region       string
	AccessKey    string
	SecretKey    string
	Bucket       string
	BaseEndpoint string
}

// Upload describes where a client should PUT an image and where it will be
// readable afterwards.
type Upload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadURL"`
	ImageURL  string `json:"imageURL"`
}

type Presigner struct {
	cfg   Config
	now   func() time.Time
	newID func() string
}

func NewPresigner(cfg Config) *Presigner {
	return &Presigner{cfg: cfg, now: time.Now, newID: uuid.NewString}
}

// StorageKey lays keys out by upload date.
func StorageKey(d time.Time, id string) string {
	return fmt.Sprintf("recipes/%d/%d/%d/%s", d.Year(), d.Month(), d.Day(), id)
}

// PublicURL is the path-style object URL on the configured endpoint.
func PublicURL(endpoint, bucket, key string) string {
	return strings.TrimRight(endpoint, "/") + "/" + bucket + "/" + key
}

// PlaceholderURL returns a stable stock image seeded by the recipe title.
func PlaceholderURL(title string) string {
	words := strings.Fields(title)
	for i, w := range words {
		words[i] = url.PathEscape(w)
	}
	return "https://picsum.photos/seed/" + strings.Join(words, "+") + "/600/400"
}

func (p *Presigner) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.cfg.AccessKey,
			p.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (p *Presigner) PresignUpload(ctx context.Context) (Upload, error) {
	presignClient, err := p.getPresignClient(ctx)
	if err != nil {
		return Upload{}, fmt.Errorf("error creating presign client: %w", err)
	}

	bucket := p.cfg.Bucket
	key := StorageKey(p.now(), p.newID())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(UploadExpiry))
	if err != nil {
		return Upload{}, fmt.Errorf("error presigning upload: %w", err)
	}

	return Upload{
		Key:       key,
		UploadURL: req.URL,
		ImageURL:  PublicURL(p.cfg.BaseEndpoint, bucket, key),
	}, nil
}
