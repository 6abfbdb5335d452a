package api

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"

	"resumify/internal/storage"
)

// ObjectStore 抽象对象存储能力，便于在测试中打桩。
// *storage.Client 是生产实现。
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
	ListObjects(ctx context.Context, prefix string, limit int) ([]storage.ObjectMeta, error)
}

var _ ObjectStore = (*storage.Client)(nil)
