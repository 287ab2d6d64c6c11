// internal/infrastructure/storage/images.go
package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/your-org/vinyl-store/internal/config"
)

// ImageResolver derives public URLs for catalog images stored in the
// external object-storage bucket. The bucket itself is not managed here;
// only the URL layout is known.
type ImageResolver struct {
	baseURL string
	bucket  string
}

// NewImageResolver creates a new image resolver
func NewImageResolver(cfg *config.Config) *ImageResolver {
	return &ImageResolver{
		baseURL: strings.TrimRight(cfg.Storage.BaseURL, "/"),
		bucket:  cfg.Storage.Bucket,
	}
}

// PublicURL returns the public URL for an image name (without extension)
func (r *ImageResolver) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s.webp", r.baseURL, r.bucket, name)
}

// ImageNameFromPath extracts the bucket object name from a local image path,
// e.g. "/images/covers/abbey-road.webp" -> "abbey-road"
func ImageNameFromPath(imagePath string) string {
	return strings.TrimSuffix(path.Base(imagePath), ".webp")
}
