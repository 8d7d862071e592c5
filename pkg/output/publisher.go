package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// UploadTimeout bounds a single S3 upload
const UploadTimeout = 30 * time.Second

// Publisher stores encoded PNG frames and returns where they ended up
type Publisher interface {
	Publish(ctx context.Context, key string, data []byte) (string, error)
}

// FrameKey names a frame of a render: <scene>/frame_0001.png
func FrameKey(sceneName string, frame int) string {
	return path.Join(sceneName, fmt.Sprintf("frame_%04d.png", frame))
}

// FilePublisher writes frames under Dir
type FilePublisher struct {
	Dir string
}

// NewFilePublisher creates a publisher writing under dir
func NewFilePublisher(dir string) *FilePublisher {
	return &FilePublisher{Dir: dir}
}

// Publish writes data to Dir/key, creating directories as needed
func (p *FilePublisher) Publish(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(p.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	return target, nil
}

// S3Config holds the S3-compatible storage settings
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Prepended to every key
}

// Enabled reports whether enough settings are present to upload
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// S3Publisher uploads frames to an S3-compatible bucket
type S3Publisher struct {
	client s3iface.S3API
	config S3Config
	logger core.Logger
}

// NewS3Publisher creates a session for the configured endpoint
func NewS3Publisher(cfg S3Config, logger core.Logger) (*S3Publisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("S3 publisher needs S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY")
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return newS3Publisher(s3.New(sess), cfg, logger), nil
}

func newS3Publisher(client s3iface.S3API, cfg S3Config, logger core.Logger) *S3Publisher {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &S3Publisher{client: client, config: cfg, logger: logger}
}

// Publish uploads data as a PNG object and returns its s3:// location
func (p *S3Publisher) Publish(ctx context.Context, key string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	objectKey := key
	if p.config.Prefix != "" {
		objectKey = path.Join(p.config.Prefix, key)
	}

	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}

	p.logger.Printf("Uploaded %s to S3 (%d bytes)\n", objectKey, size)
	return fmt.Sprintf("s3://%s/%s", p.config.Bucket, objectKey), nil
}
