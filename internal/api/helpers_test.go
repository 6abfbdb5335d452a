package api

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"

	"resumify/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeStorage struct {
	uploaded map[string][]byte
	deleted  []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: map[string][]byte{}}
}

func (s *fakeStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, _ := io.ReadAll(reader)
	s.uploaded[objectName] = b
	return &minio.UploadInfo{Key: objectName}, nil
}

func (s *fakeStorage) GeneratePresignedURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://example.invalid/" + objectKey, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	delete(s.uploaded, objectKey)
	return nil
}

func (s *fakeStorage) ListObjects(_ context.Context, prefix string, limit int) ([]storage.ObjectMeta, error) {
	var out []storage.ObjectMeta
	for key, data := range s.uploaded {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, storage.ObjectMeta{Key: key, Size: int64(len(data))})
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
