package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/storage"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// MaxImageSize limits uploaded entity images.
const MaxImageSize = 10 << 20

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// MediaService attaches uploaded images to entities. The stored object is
// owned by the entity: replacing or clearing the file removes the old object.
type MediaService struct {
	db    *gorm.DB
	store storage.ObjectStore
}

func NewMediaService(db *gorm.DB, store storage.ObjectStore) *MediaService {
	return &MediaService{db: db, store: store}
}

// URL turns an object key into a public URL.
func (s *MediaService) URL(key string) string {
	return s.store.URL(key)
}

// Replace uploads fh and points owner at it. owner must be a loaded model.
func (s *MediaService) Replace(ctx context.Context, owner models.MediaOwner, fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := imageTypes[ext]
	if !ok {
		return FieldErrors{"file": "unsupported image type " + ext}
	}
	if fh.Size > MaxImageSize {
		return FieldErrors{"file": fmt.Sprintf("must be at most %d MB", MaxImageSize>>20)}
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	key := storage.NewKey(owner.MediaFolder(), fh.Filename)
	if err := s.store.Put(ctx, key, f, fh.Size, contentType); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}

	old := owner.MediaField().File
	if err := s.db.WithContext(ctx).Model(owner).Update(owner.MediaColumn(), key).Error; err != nil {
		s.remove(ctx, key)
		return err
	}
	owner.MediaField().File = key
	if old != "" && old != key {
		s.remove(ctx, old)
	}
	return nil
}

// Clear detaches the uploaded file. The external URL is left as is.
func (s *MediaService) Clear(ctx context.Context, owner models.MediaOwner) error {
	old := owner.MediaField().File
	if old == "" {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(owner).Update(owner.MediaColumn(), "").Error; err != nil {
		return err
	}
	owner.MediaField().File = ""
	s.remove(ctx, old)
	return nil
}

// remove deletes an object the database no longer points to. Errors are logged.
func (s *MediaService) remove(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		utils.Logger().Warn("failed to delete stored object", zap.String("key", key), zap.Error(err))
	}
}
