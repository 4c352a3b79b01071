package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Archiver keeps a copy of every exported file in a bucket.
type S3Archiver struct {
	up     uploader
	bucket string
	prefix string
}

// NewS3Archiver loads credentials from the default AWS chain.
func NewS3Archiver(ctx context.Context, bucket, prefix string) (*S3Archiver, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Archiver{up: manager.NewUploader(client), bucket: bucket, prefix: prefix}, nil
}

func (a *S3Archiver) Archive(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := a.up.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(path.Join(a.prefix, key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// ArchiveKey places exports under owner/project with a sortable timestamp.
func ArchiveKey(ownerID, projectID, fileName string, at time.Time) string {
	return path.Join(ownerID, projectID, at.UTC().Format("20060102T150405Z")+"-"+fileName)
}
