package exporter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type S3Client interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type Uploader struct {
	Client S3Client
	Bucket string
}

func NewUploader(cli S3Client, bucket string) *Uploader {
	return &Uploader{Client: cli, Bucket: bucket}
}

type UploadResult struct {
	Path      string
	Bucket    string
	Key       string
	SizeBytes int64
}

// Upload stores a rendered export under reports/<name>-<uuid>.<format>.
func (u *Uploader) Upload(ctx context.Context, name, format, contentType string, data []byte) (UploadResult, error) {
	key := fmt.Sprintf("reports/%s-%s.%s", name, uuid.NewString(), format)

	log.Printf("[EXPORT][S3][START] bucket=%q key=%q size=%d", u.Bucket, key, len(data))
	info, err := u.Client.PutObject(ctx, u.Bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.Printf("[EXPORT][S3][ERR] put: %v", err)
		return UploadResult{}, fmt.Errorf("s3 put: %w", err)
	}
	log.Printf("[EXPORT][S3][OK] key=%q size=%d etag=%q", key, info.Size, info.ETag)

	return UploadResult{
		Path:      fmt.Sprintf("s3://%s/%s", u.Bucket, key),
		Bucket:    u.Bucket,
		Key:       key,
		SizeBytes: info.Size,
	}, nil
}
