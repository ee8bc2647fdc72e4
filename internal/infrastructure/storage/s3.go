package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// S3Config configures an S3-compatible bucket (AWS, R2, MinIO).
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL prefixes object keys in returned URLs. Defaults to
	// Endpoint/Bucket.
	PublicBaseURL string
	KeyPrefix     string
	PublicRead    bool
}

// S3Options tune what UploadImage accepts and produces.
type S3Options struct {
	MaxUploadBytes int64
	MaxDimension   int
	Quality        int
}

// S3Store implements ports.MediaStore. Images are normalized to JPEG and
// stored under a random key.
type S3Store struct {
	uploader   s3manageriface.UploaderAPI
	bucket     string
	prefix     string
	baseURL    string
	publicRead bool
	opts       S3Options
	log        zerolog.Logger
}

var _ ports.MediaStore = (*S3Store)(nil)

// NewS3Store opens an AWS session for cfg.
func NewS3Store(cfg S3Config, opts S3Options, log zerolog.Logger) (*S3Store, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	awsCfg := &aws.Config{
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return newS3Store(s3manager.NewUploader(sess), cfg.Bucket, cfg.KeyPrefix, baseURL, cfg.PublicRead, opts, log), nil
}

func newS3Store(uploader s3manageriface.UploaderAPI, bucket, prefix, baseURL string, publicRead bool, opts S3Options, log zerolog.Logger) *S3Store {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}
	return &S3Store{
		uploader:   uploader,
		bucket:     bucket,
		prefix:     strings.Trim(prefix, "/"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		publicRead: publicRead,
		opts:       opts,
		log:        log,
	}
}

func (s *S3Store) UploadImage(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", domerrors.NewValidationError("image", "empty image")
	}
	if int64(len(image)) > s.opts.MaxUploadBytes {
		return "", domerrors.NewValidationError("image", fmt.Sprintf("image larger than %d bytes", s.opts.MaxUploadBytes))
	}
	body, err := NormalizeAvatar(image, s.opts.MaxDimension, s.opts.Quality)
	if err != nil {
		return "", err
	}
	key := uuid.NewString() + ".jpg"
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	input := &s3manager.UploadInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("image/jpeg"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}
	if s.publicRead {
		input.ACL = aws.String("public-read")
	}
	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to bucket %s: %w", s.bucket, err)
	}
	s.log.Debug().Str("key", key).Int("bytes", len(body)).Msg("avatar uploaded")
	return s.baseURL + "/" + key, nil
}
