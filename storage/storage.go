// Package storage keeps uploaded media in an object store and turns object
// keys into public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IbroIT/SU-back-back-sub001/config"
)

// ObjectStore stores binary assets by key.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New builds the store selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.StorageDriver {
	case "minio", "s3":
		return NewMinioStore(ctx, MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MediaPublicURL,
		})
	case "local", "":
		return NewLocalStore(cfg.MediaRoot, cfg.MediaPublicURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// NewKey returns folder/YYYY/MM/<uuid><ext> for an uploaded file name.
func NewKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 {
		ext = ""
	}
	now := time.Now().UTC()
	return path.Join(folder, now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}
