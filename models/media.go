package models

import "strings"

// MediaRef points to an image either uploaded to the object store (File holds
// the object key) or hosted elsewhere (URL). Embed with an embeddedPrefix.
type MediaRef struct {
	File string `gorm:"column:file;type:VARCHAR(512);not null;default:''" json:"file"`
	URL  string `gorm:"column:url;type:VARCHAR(1024);not null;default:''" json:"url"`
}

// EffectiveURL picks the uploaded file over the external URL. fileURL turns an
// object key into a public URL. Nil means there is nothing to show.
func (m MediaRef) EffectiveURL(fileURL func(key string) string) *string {
	if key := strings.TrimSpace(m.File); key != "" && fileURL != nil {
		u := fileURL(key)
		return &u
	}
	if u := strings.TrimSpace(m.URL); u != "" {
		return &u
	}
	return nil
}

// HasFile reports whether an uploaded object is attached.
func (m MediaRef) HasFile() bool {
	return strings.TrimSpace(m.File) != ""
}

// MediaOwner is implemented by entities that own one uploaded image.
type MediaOwner interface {
	// MediaField returns the embedded reference so it can be edited in place.
	MediaField() *MediaRef
	// MediaColumn is the database column holding the object key.
	MediaColumn() string
	// MediaFolder is the object-store prefix for this entity type.
	MediaFolder() string
}
